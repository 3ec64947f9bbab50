package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/repositories"
	"github.com/desertthunder/tagmix/internal/shared"
	"github.com/desertthunder/tagmix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive playlist form.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.creator == nil {
		return fmt.Errorf("%w: playlist client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.SetLogLevel(fileLogger, r.config.Log.Level); err != nil {
		fileLogger.Warn("invalid log level, using info", "error", err)
	}
	r.SetLogger(fileLogger)

	opts := ui.ModelOpts{
		Creator: r.creator,
		Defaults: models.FormInput{
			PlaylistName: r.config.Defaults.PlaylistName,
			Hashtag:      r.config.Defaults.Hashtag,
		},
		Logger:  fileLogger,
		OpenURL: r.openURL,
	}

	if !cmd.Bool("no-history") {
		db, err := r.openHistory()
		if err != nil {
			fileLogger.Warn("submission history disabled", "error", err)
		} else {
			defer db.Close()
			repo := repositories.NewSubmissionRepository(db)
			opts.Recorder = repo
			opts.History = repo
		}
	}

	p := tea.NewProgram(ui.NewModel(ctx, opts), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
