package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagmix/internal/services"
	"github.com/desertthunder/tagmix/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	creator    services.Creator
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	openURL    func(string) error
	prompter   Prompter

	// ownsCreator is set when the runner built the playlist client itself.
	ownsCreator bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Creator is nil a [services.PlaylistClient] is built from the [backend] section of Config.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Creator    services.Creator
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	OpenURL    func(string) error
	Prompter   Prompter
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if opts.Prompter == nil {
		opts.Prompter = surveyPrompter{}
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		creator:    opts.Creator,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		openURL:    opts.OpenURL,
		prompter:   opts.Prompter,
	}
	if r.creator == nil {
		r.creator = r.newPlaylistClient()
		r.ownsCreator = true
	}
	return r
}

func (r *Runner) newPlaylistClient() *services.PlaylistClient {
	return services.NewPlaylistClientFromConfig(r.config.Backend, r.httpClient, r.logger)
}

// SetLogger replaces the runner's logger, rebuilding the playlist client it owns so request logs follow.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.ownsCreator {
		r.creator = r.newPlaylistClient()
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		submitCommand, tuiCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
