package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/repositories"
	"github.com/desertthunder/tagmix/internal/shared"
	"github.com/desertthunder/tagmix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// consoleView collects what the controller renders so the command can print it once the request settles.
type consoleView struct {
	input  models.FormInput
	state  models.ViewState
	alert  string
	result *models.CreatePlaylistResponse
	errMsg string
}

func (v *consoleView) Values() models.FormInput                      { return v.input }
func (v *consoleView) Alert(msg string)                              { v.alert = msg }
func (v *consoleView) SetState(state models.ViewState)               { v.state = state }
func (v *consoleView) SetSubmitEnabled(bool)                         {}
func (v *consoleView) ShowError(msg string)                          { v.errMsg = msg }
func (v *consoleView) ClearFields()                                  { v.input = models.FormInput{} }
func (v *consoleView) ShowResult(resp models.CreatePlaylistResponse) { v.result = &resp }

// response returns what the backend answered, or a failure body carrying the error panel text.
func (v *consoleView) response() models.CreatePlaylistResponse {
	if v.state == models.Success && v.result != nil {
		return *v.result
	}
	return models.CreatePlaylistResponse{Success: false, Error: v.errMsg}
}

// Submit runs one submission through the form controller.
func (r *Runner) Submit(ctx context.Context, cmd *cli.Command) error {
	input := models.FormInput{
		PlaylistName: r.config.Defaults.PlaylistName,
		Hashtag:      r.config.Defaults.Hashtag,
	}
	if cmd.IsSet("name") {
		input.PlaylistName = cmd.String("name")
	}
	if cmd.IsSet("hashtag") {
		input.Hashtag = cmd.String("hashtag")
	}
	if cmd.Bool("prompt") {
		answered, err := r.prompter.Ask(ctx, input)
		if err != nil {
			return err
		}
		input = answered
	}

	var recorder tasks.Recorder
	if !cmd.Bool("no-history") {
		db, err := r.openHistory()
		if err != nil {
			r.logger.Warn("submission history disabled", "error", err)
		} else {
			defer db.Close()
			recorder = repositories.NewSubmissionRepository(db)
		}
	}

	view := &consoleView{input: input}
	controller := tasks.NewFormController(tasks.ControllerOpts{
		View:     view,
		Creator:  r.creator,
		Recorder: recorder,
		Logger:   r.logger,
	})

	err := controller.OnSubmit(ctx)
	if view.alert != "" {
		return fmt.Errorf("%w: --name and --hashtag must not be empty: %w", shared.ErrMissingArgument, err)
	}

	if cmd.Bool("json") {
		if werr := r.writeJSON(view.response(), cmd.Bool("pretty")); werr != nil {
			return werr
		}
	} else if werr := r.printOutcome(view); werr != nil {
		return werr
	}

	if err != nil {
		return &reportedError{err: err}
	}

	if cmd.Bool("open") && view.result.PlaylistURL != "" {
		if err := r.openURL(view.result.PlaylistURL); err != nil {
			r.logger.Warn("failed to open playlist", "url", view.result.PlaylistURL, "error", err)
		}
	}
	return nil
}

func (r *Runner) printOutcome(view *consoleView) error {
	if view.state != models.Success {
		return r.writePlain("Error: %s\n", view.errMsg)
	}

	resp := view.result
	name := resp.PlaylistName
	if name == "" {
		name = view.input.PlaylistName
	}

	if err := r.writePlain("Playlist created: %s\n", name); err != nil {
		return err
	}
	if err := r.writePlain("Added: %s  Skipped: %s\n", resp.AddedCount, resp.SkippedCount); err != nil {
		return err
	}
	if resp.PlaylistURL != "" {
		return r.writePlain("Link: %s\n", resp.PlaylistURL)
	}
	return nil
}

func (r *Runner) openHistory() (*sql.DB, error) {
	db, err := shared.OpenMigrated(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	return db, nil
}
