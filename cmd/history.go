package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tagmix/internal/formatter"
	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/repositories"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recent submissions in the requested format.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSubmissionRepository(db)

	var submissions []*models.Submission
	if hashtag := cmd.String("hashtag"); hashtag != "" {
		submissions, err = repo.ListByHashtag(hashtag, int(cmd.Int("limit")))
	} else {
		submissions, err = repo.List(int(cmd.Int("limit")))
	}
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	r.logger.Debug("loaded submissions", "count", len(submissions))

	out, err := formatter.Render(cmd.String("format"), submissions)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// HistoryShow prints a single submission.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := repositories.NewSubmissionRepository(db).Get(cmd.String("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out, err := formatter.ExportToJSON([]*models.Submission{s})
		if err != nil {
			return err
		}
		if _, err := r.output.Write(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	lines := [][2]string{
		{"ID", s.ID},
		{"Playlist", s.PlaylistName},
		{"Hashtag", s.Hashtag},
		{"State", s.State.String()},
		{"Outcome", formatter.Outcome(s)},
	}
	if s.PlaylistURL != "" {
		lines = append(lines, [2]string{"Link", s.PlaylistURL})
	}
	lines = append(lines, [2]string{"Created", s.CreatedAt.Local().Format("2006-01-02 15:04:05")})

	for _, line := range lines {
		if err := r.writePlain("%-9s %s\n", line[0]+":", line[1]); err != nil {
			return err
		}
	}
	return nil
}
