package main

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/desertthunder/tagmix/internal/models"
	"github.com/desertthunder/tagmix/internal/shared"
)

// Prompter asks for the form fields on the terminal, starting from defaults.
type Prompter interface {
	Ask(ctx context.Context, defaults models.FormInput) (models.FormInput, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Ask(ctx context.Context, defaults models.FormInput) (models.FormInput, error) {
	if err := ctx.Err(); err != nil {
		return defaults, err
	}

	answers := struct {
		PlaylistName string `survey:"playlist_name"`
		Hashtag      string `survey:"hashtag"`
	}{}

	questions := []*survey.Question{
		{
			Name: "playlist_name",
			Prompt: &survey.Input{
				Message: "Playlist name:",
				Default: defaults.PlaylistName,
			},
		},
		{
			Name: "hashtag",
			Prompt: &survey.Input{
				Message: "Hashtag:",
				Default: strings.TrimPrefix(defaults.Hashtag, "#"),
				Help:    "Posts tagged with this hashtag are searched for YouTube links",
			},
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return defaults, shared.ErrAborted
		}
		return defaults, err
	}

	return models.FormInput{PlaylistName: answers.PlaylistName, Hashtag: answers.Hashtag}, nil
}
