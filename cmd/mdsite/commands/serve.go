package commands

import (
	"fmt"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/preview"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	SiteFlags `embed:""`

	Port     int           `short:"p" help:"Port to serve on (default from site file, else 1313)"`
	Interval time.Duration `help:"Also rebuild on this interval (0 disables)"`
	Metrics  bool          `help:"Expose Prometheus metrics on /metrics"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	opts, file, err := loadSite(root, s.SiteFlags)
	if err != nil {
		return err
	}

	port := file.Serve.Port
	if s.Port != 0 {
		port = s.Port
	}
	interval := file.Serve.RebuildInterval
	if s.Interval != 0 {
		interval = s.Interval
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	cfg := preview.Config{
		Addr:            fmt.Sprintf(":%d", port),
		OutputDir:       opts.Paths.OutputDir,
		WatchDirs:       watchDirs(opts.Paths.ContentDir, opts.Paths.TemplateSource(opts.Theme), opts.Paths.ThemeCSS(opts.Theme)),
		RebuildInterval: interval,
	}
	if s.Metrics {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		cfg.Metrics = metrics.HTTPHandler(reg)
	}
	cfg.Recorder = recorder

	builder := site.NewBuilder(afero.NewOsFs(), opts).WithRecorder(recorder).WithLogger(g.Logger)
	if store := openHistory(file, g.Logger); store != nil {
		defer func() { _ = store.Close() }()
		builder.WithHistory(store)
	}

	ctx, cancel := signalContext()
	defer cancel()

	return preview.NewServer(cfg, builder).WithLogger(g.Logger).Run(ctx)
}

func watchDirs(dirs ...string) []string {
	var out []string
	for _, d := range dirs {
		if d != "" {
			out = append(out, filepath.Clean(d))
		}
	}
	return out
}
