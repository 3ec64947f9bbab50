// package tasks implements the form submission workflow.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/services"
	"github.com/desertthunder/tagmix/internal/shared"
)

// ValidationMessage is the alert shown when a required field is empty.
const ValidationMessage = "Please fill in all fields"

// View renders the form, loading, result and error panels.
type View interface {
	Values() models.FormInput                      // Values returns the raw (untrimmed) field values
	Alert(msg string)                              // Alert shows a blocking message without changing state
	SetState(state models.ViewState)               // SetState makes exactly one panel visible
	SetSubmitEnabled(enabled bool)                 // SetSubmitEnabled toggles the submit control
	ShowResult(resp models.CreatePlaylistResponse) // ShowResult fills the success panel
	ShowError(msg string)                          // ShowError fills the error panel
	ClearFields()                                  // ClearFields empties the form
}

// Recorder persists settled submissions.
type Recorder interface {
	Record(submission *models.Submission) error
}

// FormController orchestrates one request/response cycle per submission.
type FormController struct {
	view     View
	creator  services.Creator
	recorder Recorder
	logger   *log.Logger

	mu       sync.Mutex
	state    models.ViewState
	inFlight bool
}

// ControllerOpts contains the dependencies of a [FormController]. Recorder and Logger are optional.
type ControllerOpts struct {
	View     View
	Creator  services.Creator
	Recorder Recorder
	Logger   *log.Logger
}

// NewFormController creates a controller and puts the view in the Idle state with the submit control enabled.
func NewFormController(opts ControllerOpts) *FormController {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	c := &FormController{
		view:     opts.View,
		creator:  opts.Creator,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		state:    models.Idle,
	}

	c.view.SetState(models.Idle)
	c.view.SetSubmitEnabled(true)
	return c
}

// State returns the current view state.
func (c *FormController) State() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnSubmit handles a form submission.
//
// Returned errors have already been rendered by the view: [shared.ErrValidation] after the alert,
// [shared.ErrNetwork], [shared.ErrParse] or [shared.ErrRequestFailed] after the error panel.
// [shared.ErrSubmissionInFlight] and [shared.ErrInvalidTransition] leave the view untouched.
func (c *FormController) OnSubmit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return shared.ErrSubmissionInFlight
	}
	if c.state != models.Idle {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: submit from %s", shared.ErrInvalidTransition, state)
	}

	c.inFlight = true
	c.mu.Unlock()

	raw := c.view.Values()
	input := models.NewFormInput(raw.PlaylistName, raw.Hashtag)
	if err := input.Validate(); err != nil {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		c.view.Alert(ValidationMessage)
		return err
	}

	c.mu.Lock()
	c.state = models.Loading
	c.mu.Unlock()

	c.view.SetState(models.Loading)
	c.view.SetSubmitEnabled(false)
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		c.view.SetSubmitEnabled(true)
	}()

	id := shared.GenerateID()
	logger := shared.WithLogger(c.logger, "request_id", id)
	logger.Info("submitting", "playlist", input.PlaylistName, "hashtag", input.Hashtag)

	resp, err := c.creator.CreatePlaylist(services.WithRequestID(ctx, id), input)
	if err == nil && (resp == nil || !resp.Success) {
		msg := models.DefaultErrorMessage
		if resp != nil {
			msg = resp.ErrorMessage()
		}
		err = &RequestError{Message: msg}
	}

	if err != nil {
		msg := errorMessage(err)
		logger.Warn("submission failed", "err", err)
		c.view.ShowError(msg)
		c.transition(models.Error)
		c.record(models.NewSubmission(id, input, nil, msg))
		return err
	}

	logger.Info("playlist created", "added", resp.AddedCount, "skipped", resp.SkippedCount, "url", resp.PlaylistURL)
	c.view.ShowResult(*resp)
	c.transition(models.Success)
	c.record(models.NewSubmission(id, input, resp, ""))
	return nil
}

// OnReset clears the form and returns from Success to Idle.
func (c *FormController) OnReset() error {
	if err := c.expect(models.Success, "reset"); err != nil {
		return err
	}
	c.view.ClearFields()
	c.transition(models.Idle)
	return nil
}

// OnCloseError returns from Error to Idle, keeping the field values.
func (c *FormController) OnCloseError() error {
	if err := c.expect(models.Error, "close error"); err != nil {
		return err
	}
	c.transition(models.Idle)
	return nil
}

func (c *FormController) expect(want models.ViewState, action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != want {
		return fmt.Errorf("%w: %s from %s", shared.ErrInvalidTransition, action, c.state)
	}
	return nil
}

func (c *FormController) transition(state models.ViewState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.view.SetState(state)
}

func (c *FormController) record(s *models.Submission) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(s); err != nil {
		c.logger.Error("failed to record submission", "id", s.ID, "err", err)
	}
}

// RequestError is an application-level failure reported by the backend.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return shared.ErrRequestFailed }

// errorMessage picks the human-readable text for the error panel.
func errorMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}
