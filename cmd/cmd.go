// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/tagmix/internal/formatter"
	"github.com/desertthunder/tagmix/internal/repositories"
	"github.com/urfave/cli/v3"
)

// submitCommand sends one playlist request
func submitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Create a playlist from a hashtag",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (defaults to [defaults] playlist_name)",
			},
			&cli.StringFlag{
				Name:    "hashtag",
				Aliases: []string{"t"},
				Usage:   "Hashtag to read, without the leading # (defaults to [defaults] hashtag)",
			},
			&cli.BoolFlag{
				Name:    "prompt",
				Aliases: []string{"p"},
				Usage:   "Ask for the playlist name and hashtag interactively",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the playlist in the browser on success",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record the submission",
			},
		},
		Action: r.Submit,
	}
}

// tuiCommand launches the interactive form
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record or browse submissions",
			},
		},
		Action: r.TUI,
	}
}

// historyCommand handles recorded submissions
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"hist"},
		Usage:   "Recorded submissions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent submissions, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of submissions to return",
						Value: repositories.DefaultListLimit,
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, markdown, csv, json or yaml",
						Value:   formatter.FormatText,
					},
					&cli.StringFlag{
						Name:  "hashtag",
						Usage: "Only show submissions for this hashtag",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show a single submission",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Submission ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryShow,
			},
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration and database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml from the default template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:    "database",
				Usage:   "Initialize the history database and run migrations",
				Aliases: []string{"db"},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
