package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/eventstore"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `help:"Site configuration file path" default:"mdsite.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Render the content tree into the output directory"`
	Serve   ServeCmd   `cmd:"" help:"Build, serve and rebuild the site on change"`
	Init    InitCmd    `cmd:"" help:"Write an example site configuration file"`
	History HistoryCmd `cmd:"" help:"Show recorded build history"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// SiteFlags are the build options shared by build and serve. Set flags
// override the site file and environment.
type SiteFlags struct {
	Clear         bool   `short:"c" help:"Remove the output directory before building"`
	BaseURL       string `name:"base-url" short:"b" help:"Base URL of the published site"`
	Template      string `short:"t" help:"Template for pages that do not declare one"`
	IndexTemplate string `name:"index" short:"i" help:"Template for index pages that do not declare one"`
	Theme         string `help:"Theme under the themes directory supplying templates and css"`
	KeepGoing     bool   `name:"keep-going" short:"k" help:"Skip content files that fail to render instead of aborting"`
	Content       string `help:"Content directory (default: content)"`
	Output        string `help:"Output directory (default: public)"`
}

// loadSite reads the site file and layers flags over it.
func loadSite(root *CLI, flags SiteFlags) (config.Options, *config.File, error) {
	file, err := config.Load(root.Config, false)
	if err != nil {
		return config.Options{}, nil, errors.ConfigError("load site configuration").
			WithCause(err).WithPath(root.Config).Build()
	}

	opts := file.Options()
	opts.Verbose = root.Verbose
	if flags.Clear {
		opts.Clear = true
	}
	if flags.KeepGoing {
		opts.KeepGoing = true
	}
	override(&opts.BaseURL, flags.BaseURL)
	override(&opts.Template, flags.Template)
	override(&opts.IndexTemplate, flags.IndexTemplate)
	override(&opts.Theme, flags.Theme)
	override(&opts.Paths.ContentDir, flags.Content)
	override(&opts.Paths.OutputDir, flags.Output)

	if err := config.Validate(opts); err != nil {
		return config.Options{}, nil, err
	}
	return opts, file, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// openHistory opens the configured build history. It returns nil when
// history is not configured or cannot be opened; history never blocks a build.
func openHistory(file *config.File, logger *slog.Logger) eventstore.Store {
	if file.History.Database == "" {
		return nil
	}
	store, err := eventstore.NewSQLiteStore(file.History.Database)
	if err != nil {
		logger.Warn("Build history disabled", logfields.Path(file.History.Database), logfields.Error(err))
		return nil
	}
	return store
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
