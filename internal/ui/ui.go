package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/services"
	"github.com/desertthunder/tagmix/internal/shared"
	"github.com/desertthunder/tagmix/internal/tasks"
)

const historyLimit = 50

// HistoryLister returns recent submissions, newest first.
type HistoryLister interface {
	List(limit int) ([]*models.Submission, error)
}

// ModelOpts contains the dependencies of the TUI. History, Recorder, Logger, OpenURL and Copy are optional.
type ModelOpts struct {
	Creator  services.Creator
	Recorder tasks.Recorder
	History  HistoryLister
	Defaults models.FormInput
	Logger   *log.Logger
	OpenURL  func(string) error
	Copy     func(string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	panel       *panel
	controller  *tasks.FormController
	history     HistoryLister
	inputs      []textinput.Model
	focus       int
	submitting  bool
	spinner     spinner.Model
	historyList list.Model
	showHistory bool
	notice      string
	openURL     func(string) error
	copy        func(string) error
	width       int
	height      int
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	p := newPanel(opts.Defaults)
	controller := tasks.NewFormController(tasks.ControllerOpts{
		View:     p,
		Creator:  opts.Creator,
		Recorder: opts.Recorder,
		Logger:   opts.Logger,
	})

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "TuesdayTracks"
	name.CharLimit = 150
	name.SetValue(opts.Defaults.PlaylistName)
	name.Focus()

	hashtag := textinput.New()
	hashtag.Prompt = "#"
	hashtag.Placeholder = "TuesdayTracks"
	hashtag.CharLimit = 100
	hashtag.SetValue(strings.TrimPrefix(opts.Defaults.Hashtag, "#"))

	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.label))

	return &Model{
		ctx:        ctx,
		panel:      p,
		controller: controller,
		history:    opts.History,
		inputs:     []textinput.Model{name, hashtag},
		spinner:    s,
		openURL:    opts.OpenURL,
		copy:       opts.Copy,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	m.syncValues()
	return textinput.Blink
}

// State returns the controller's current view state.
func (m *Model) State() models.ViewState {
	return m.controller.State()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showHistory {
			m.historyList.SetSize(msg.Width-4, msg.Height-4)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQ) {
			return m, tea.Quit
		}
		if m.panel.dismissAlert() {
			return m, nil
		}
		if m.showHistory {
			return m.handleHistoryKeys(msg)
		}

		switch m.controller.State() {
		case models.Idle:
			return m.handleFormKeys(msg)
		case models.Success:
			return m.handleResultKeys(msg)
		case models.Error:
			return m.handleErrorKeys(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSubmitDone:
		m.submitting = false
		if m.controller.State() == models.Idle {
			return m, m.inputs[m.focus].Focus()
		}
	case MsgHistoryLoaded:
		data := msg.data.(struct {
			submissions []*models.Submission
			err         error
		})
		if data.err != nil {
			m.notice = fmt.Sprintf("history unavailable: %v", data.err)
			return m, nil
		}
		items := make([]list.Item, len(data.submissions))
		for i, s := range data.submissions {
			items[i] = submissionItem{submission: s}
		}
		m.historyList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.historyList.Title = "Recent Submissions"
		m.historyList.SetSize(max(m.width-4, 20), max(m.height-4, 10))
		m.showHistory = true
	case MsgNotice:
		m.notice = msg.data.(string)
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.submit):
		if m.submitting || !m.panel.snapshot().submitEnabled {
			return m, nil
		}
		m.syncValues()
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.submit())
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case key.Matches(msg, m.keys.history):
		return m, m.loadHistory()
	}

	return m.updateInputs(msg)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	link := m.panel.snapshot().result.PlaylistURL

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reset):
		if err := m.controller.OnReset(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.notice = ""
		m.loadValues()
		return m, m.setFocus(0)
	case key.Matches(msg, m.keys.open):
		return m, m.linkAction(link, m.openURL, "opened in browser")
	case key.Matches(msg, m.keys.copy):
		return m, m.linkAction(link, m.copy, "link copied to clipboard")
	case key.Matches(msg, m.keys.history):
		return m, m.loadHistory()
	}
	return m, nil
}

func (m *Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.close):
		if err := m.controller.OnCloseError(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.loadValues()
		return m, m.setFocus(m.focus)
	}
	return m, nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) && m.historyList.FilterState() == list.Unfiltered {
		m.showHistory = false
		return m, nil
	}

	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		var cmd tea.Cmd
		m.historyList, cmd = m.historyList.Update(msg)
		return m, cmd
	}
	if m.controller.State() != models.Idle {
		return m, nil
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	m.syncValues()
	return m, tea.Batch(cmds...)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// syncValues copies the text inputs into the panel.
func (m *Model) syncValues() {
	m.panel.setValues(models.FormInput{
		PlaylistName: m.inputs[0].Value(),
		Hashtag:      m.inputs[1].Value(),
	})
}

// loadValues copies the panel back into the text inputs after the controller changed them.
func (m *Model) loadValues() {
	v := m.panel.Values()
	m.inputs[0].SetValue(v.PlaylistName)
	m.inputs[1].SetValue(v.Hashtag)
}

func (m *Model) submit() tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg(m.controller.OnSubmit(m.ctx))
	}
}

func (m *Model) loadHistory() tea.Cmd {
	if m.history == nil {
		m.notice = "history unavailable: no database configured"
		return nil
	}
	return func() tea.Msg {
		submissions, err := m.history.List(historyLimit)
		return historyLoadedMsg(submissions, err)
	}
}

func (m *Model) linkAction(link string, fn func(string) error, done string) tea.Cmd {
	return func() tea.Msg {
		if link == "" {
			return noticeMsg("no playlist link in the response")
		}
		if err := fn(link); err != nil {
			return noticeMsg(err.Error())
		}
		return noticeMsg(done)
	}
}

// View renders the panel the controller selected.
func (m *Model) View() string {
	if m.showHistory {
		return fmt.Sprintf("%s\n%s", m.historyList.View(), m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.forceQ}))
	}

	snap := m.panel.snapshot()
	var body string
	switch snap.state {
	case models.Idle:
		body = m.renderForm(snap)
	case models.Loading:
		body = m.renderLoading(snap)
	case models.Success:
		body = m.renderResult(snap)
	case models.Error:
		body = m.renderError(snap)
	}

	if snap.alert != "" {
		body = fmt.Sprintf("%s\n\n%s\n%s", body, styles.alert.Render("⚠ "+snap.alert), styles.help.Render("press any key"))
	}
	if m.notice != "" {
		body = fmt.Sprintf("%s\n\n%s", body, styles.warn.Render(m.notice))
	}

	return body + "\n"
}

func (m *Model) renderForm(snap snapshot) string {
	title := styles.title.Render("Create a playlist from a hashtag")

	button := styles.button.Render("Create Playlist")
	if !snap.submitEnabled || m.submitting {
		button = styles.muted.Render("Create Playlist")
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.submit, m.keys.history, m.keys.forceQ}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n%s\n\n%s\n\n%s",
		title,
		styles.label.Render("Playlist name"), m.inputs[0].View(),
		styles.label.Render("Hashtag"), m.inputs[1].View(),
		button,
		m.help.ShortHelpView(helpKeys),
	)
}

func (m *Model) renderLoading(snap snapshot) string {
	title := styles.title.Render("Creating playlist")
	return fmt.Sprintf("%s\n%s Collecting #%s into %q...", title, m.spinner.View(), models.NormalizeHashtag(snap.values.Hashtag), strings.TrimSpace(snap.values.PlaylistName))
}

func (m *Model) renderResult(snap snapshot) string {
	title := styles.ok.Render("✓ Playlist created!")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nAdded: %s\nSkipped: %s\nLink: %s",
		snap.result.PlaylistName,
		snap.result.AddedCount.String(),
		snap.result.SkippedCount.String(),
		snap.result.PlaylistURL,
	)

	helpKeys := []key.Binding{m.keys.open, m.keys.copy, m.keys.reset, m.keys.history, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderError(snap snapshot) string {
	title := styles.err.Render("✗ Something went wrong")
	helpKeys := []key.Binding{m.keys.close, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, snap.errMsg, m.help.ShortHelpView(helpKeys))
}
