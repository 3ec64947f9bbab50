package ui

import (
	"sync"

	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/tasks"
)

var _ tasks.View = (*panel)(nil)

// panel holds what the controller has asked to display.
type panel struct {
	mu            sync.Mutex
	values        models.FormInput
	state         models.ViewState
	submitEnabled bool
	alert         string
	result        models.CreatePlaylistResponse
	errMsg        string
}

func newPanel(defaults models.FormInput) *panel {
	return &panel{values: defaults, submitEnabled: true}
}

func (p *panel) Values() models.FormInput {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values
}

func (p *panel) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alert = msg
}

func (p *panel) SetState(state models.ViewState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

func (p *panel) SetSubmitEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitEnabled = enabled
}

func (p *panel) ShowResult(resp models.CreatePlaylistResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = resp
}

func (p *panel) ShowError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = msg
}

func (p *panel) ClearFields() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = models.FormInput{}
}

// setValues mirrors the text inputs so the controller reads what the user typed.
func (p *panel) setValues(v models.FormInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = v
}

func (p *panel) dismissAlert() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	had := p.alert != ""
	p.alert = ""
	return had
}

// snapshot is a consistent copy for rendering.
type snapshot struct {
	values        models.FormInput
	state         models.ViewState
	submitEnabled bool
	alert         string
	result        models.CreatePlaylistResponse
	errMsg        string
}

func (p *panel) snapshot() snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshot{
		values:        p.values,
		state:         p.state,
		submitEnabled: p.submitEnabled,
		alert:         p.alert,
		result:        p.result,
		errMsg:        p.errMsg,
	}
}
