package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tagmix/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", defaultConfigPath, "error", err)
		}
	}

	if err := shared.SetLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("invalid log level, using info", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "tagmix",
		Usage:    "Build playlists from a hashtag",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if alreadyReported(err) {
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// reportedError marks a failure the command has already printed for the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// alreadyReported is true for failures that need a non-zero exit but no further output.
func alreadyReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported) || errors.Is(err, shared.ErrAborted)
}
