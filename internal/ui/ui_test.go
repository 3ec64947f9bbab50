package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tagmix/internal/models"
	tu "github.com/desertthunder/tagmix/internal/testing"
)

type stubHistory struct {
	submissions []*models.Submission
	err         error
}

func (s *stubHistory) List(limit int) ([]*models.Submission, error) {
	return s.submissions, s.err
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain executes cmd (expanding batches) and feeds every resulting message back into m.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case Msg:
		_, next := m.Update(msg)
		drain(t, m, next)
	default:
		// spinner ticks and cursor blinks are not needed to settle a submission
	}
}

func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	drain(t, m, cmd)
}

func newTestModel(creator *tu.MockCreator, opts ...func(*ModelOpts)) *Model {
	o := ModelOpts{
		Creator:  creator,
		Defaults: models.FormInput{PlaylistName: "My Mix", Hashtag: "#chill"},
		OpenURL:  func(string) error { return nil },
		Copy:     func(string) error { return nil },
	}
	for _, fn := range opts {
		fn(&o)
	}
	m := NewModel(context.Background(), o)
	for i := range m.inputs {
		m.inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}
	m.Init()
	return m
}

func TestModel(t *testing.T) {
	t.Run("starts idle with defaults", func(t *testing.T) {
		m := newTestModel(&tu.MockCreator{})

		if m.State() != models.Idle {
			t.Errorf("expected idle, got %s", m.State())
		}
		view := m.View()
		if !strings.Contains(view, "Playlist name") || !strings.Contains(view, "My Mix") {
			t.Errorf("expected form with defaults, got:\n%s", view)
		}
	})

	t.Run("enter submits and shows result", func(t *testing.T) {
		creator := &tu.MockCreator{Response: &models.CreatePlaylistResponse{
			Success:      true,
			PlaylistName: "My Mix",
			AddedCount:   12,
			SkippedCount: 3,
			PlaylistURL:  "https://example.com/p/1",
		}}
		m := newTestModel(creator)

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		if m.State() != models.Success {
			t.Fatalf("expected success, got %s", m.State())
		}
		calls := creator.Calls()
		if len(calls) != 1 || calls[0].Hashtag != "chill" {
			t.Errorf("expected one request with hashtag chill, got %+v", calls)
		}

		view := m.View()
		for _, want := range []string{"My Mix", "Added: 12", "Skipped: 3", "https://example.com/p/1"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected result view to contain %q, got:\n%s", want, view)
			}
		}
		if m.submitting {
			t.Error("expected submitting flag cleared")
		}
	})

	t.Run("empty field shows blocking alert", func(t *testing.T) {
		creator := &tu.MockCreator{}
		m := newTestModel(creator, func(o *ModelOpts) { o.Defaults = models.FormInput{PlaylistName: "My Mix"} })

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		if m.State() != models.Idle {
			t.Errorf("expected idle, got %s", m.State())
		}
		if len(creator.Calls()) != 0 {
			t.Error("expected no request")
		}
		if !strings.Contains(m.View(), "Please fill in all fields") {
			t.Errorf("expected alert in view, got:\n%s", m.View())
		}

		send(t, m, keyRunes("x"))
		if strings.Contains(m.View(), "Please fill in all fields") {
			t.Error("expected any key to dismiss the alert")
		}
		if m.inputs[0].Value() != "My Mix" {
			t.Errorf("expected dismissing key not to be typed, got %q", m.inputs[0].Value())
		}
	})

	t.Run("typed values are submitted", func(t *testing.T) {
		creator := &tu.MockCreator{Response: &models.CreatePlaylistResponse{Success: true}}
		m := newTestModel(creator, func(o *ModelOpts) { o.Defaults = models.FormInput{} })

		send(t, m, keyRunes("Road Trip"))
		send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		send(t, m, keyRunes("vanlife"))
		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		calls := creator.Calls()
		if len(calls) != 1 {
			t.Fatalf("expected one request, got %d", len(calls))
		}
		if calls[0].PlaylistName != "Road Trip" || calls[0].Hashtag != "vanlife" {
			t.Errorf("unexpected input %+v", calls[0])
		}
	})

	t.Run("error panel closes back to form with values", func(t *testing.T) {
		creator := &tu.MockCreator{Response: &models.CreatePlaylistResponse{Error: "hashtag not found"}}
		m := newTestModel(creator)

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		if m.State() != models.Error {
			t.Fatalf("expected error, got %s", m.State())
		}
		if !strings.Contains(m.View(), "hashtag not found") {
			t.Errorf("expected error message in view, got:\n%s", m.View())
		}

		send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

		if m.State() != models.Idle {
			t.Errorf("expected idle, got %s", m.State())
		}
		if m.inputs[0].Value() != "My Mix" || m.inputs[1].Value() != "chill" {
			t.Errorf("expected values preserved, got %q %q", m.inputs[0].Value(), m.inputs[1].Value())
		}
	})

	t.Run("reset clears fields", func(t *testing.T) {
		creator := &tu.MockCreator{Response: &models.CreatePlaylistResponse{Success: true, PlaylistURL: "https://example.com/p/1"}}
		m := newTestModel(creator)

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		send(t, m, keyRunes("r"))

		if m.State() != models.Idle {
			t.Errorf("expected idle, got %s", m.State())
		}
		if m.inputs[0].Value() != "" || m.inputs[1].Value() != "" {
			t.Errorf("expected cleared values, got %q %q", m.inputs[0].Value(), m.inputs[1].Value())
		}
	})

	t.Run("open and copy link", func(t *testing.T) {
		var opened, copied string
		creator := &tu.MockCreator{Response: &models.CreatePlaylistResponse{Success: true, PlaylistURL: "https://example.com/p/1"}}
		m := newTestModel(creator, func(o *ModelOpts) {
			o.OpenURL = func(u string) error { opened = u; return nil }
			o.Copy = func(u string) error { copied = u; return errors.New("no clipboard") }
		})

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		send(t, m, keyRunes("o"))
		if opened != "https://example.com/p/1" {
			t.Errorf("expected link opened, got %q", opened)
		}
		if !strings.Contains(m.View(), "opened in browser") {
			t.Errorf("expected notice, got:\n%s", m.View())
		}

		send(t, m, keyRunes("c"))
		if copied != "https://example.com/p/1" {
			t.Errorf("expected link copied, got %q", copied)
		}
		if !strings.Contains(m.View(), "no clipboard") {
			t.Errorf("expected copy failure notice, got:\n%s", m.View())
		}
	})

	t.Run("enter ignored while submitting", func(t *testing.T) {
		creator := &tu.MockCreator{}
		m := newTestModel(creator)
		m.submitting = true

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no command while a submission is running")
		}
	})

	t.Run("history", func(t *testing.T) {
		history := &stubHistory{submissions: []*models.Submission{
			{ID: "1", Sequence: 1, PlaylistName: "My Mix", Hashtag: "chill", State: models.Success, AddedCount: 12, SkippedCount: 3},
		}}
		m := newTestModel(&tu.MockCreator{}, func(o *ModelOpts) { o.History = history })

		send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
		if !m.showHistory {
			t.Fatal("expected history to be shown")
		}
		if len(m.historyList.Items()) != 1 {
			t.Errorf("expected one history item, got %d", len(m.historyList.Items()))
		}

		send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.showHistory {
			t.Error("expected esc to leave history")
		}
	})

	t.Run("history unavailable", func(t *testing.T) {
		m := newTestModel(&tu.MockCreator{})

		send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
		if m.showHistory {
			t.Error("expected history to stay hidden")
		}
		if !strings.Contains(m.View(), "history unavailable") {
			t.Errorf("expected notice, got:\n%s", m.View())
		}
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		m := newTestModel(&tu.MockCreator{})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestSubmissionItem(t *testing.T) {
	item := submissionItem{submission: &models.Submission{PlaylistName: "My Mix", Hashtag: "#chill", State: models.Error, ErrorMessage: "boom"}}

	if item.Title() != "My Mix • #chill" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if item.Description() != "failed: boom" {
		t.Errorf("unexpected description %q", item.Description())
	}
}
