// Package preview serves a built site locally and rebuilds it when its
// sources change or on a fixed interval.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// Rebuild triggers, used as metric labels.
const (
	TriggerWatch    = "watch"
	TriggerSchedule = "schedule"
)

const (
	debounceDelay   = 300 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Builder runs one full site build.
type Builder interface {
	Build(ctx context.Context) (*site.Report, error)
}

// Config configures a preview Server.
type Config struct {
	// Addr is the listen address, e.g. ":1313".
	Addr string
	// OutputDir is the directory served over HTTP.
	OutputDir string
	// WatchDirs are watched recursively. Missing directories are skipped.
	WatchDirs []string
	// RebuildInterval schedules periodic rebuilds when positive.
	RebuildInterval time.Duration
	// Metrics, when set, is served on /metrics.
	Metrics http.Handler
	// Recorder counts rebuild triggers.
	Recorder metrics.Recorder
}

// Server serves the output directory and keeps it up to date.
type Server struct {
	cfg     Config
	builder Builder
	status  *buildStatus
	logger  *slog.Logger
}

// NewServer returns a Server rebuilding through builder.
func NewServer(cfg Config, builder Builder) *Server {
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NoopRecorder{}
	}
	return &Server{
		cfg:     cfg,
		builder: builder,
		status:  &buildStatus{},
		logger:  slog.Default(),
	}
}

// WithLogger overrides the default logger.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run builds once, then serves and rebuilds until ctx is done. A failing
// initial build is reported but does not stop the server.
func (s *Server) Run(ctx context.Context) error {
	s.build(ctx, "initial")

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return ferrors.RuntimeError("listen for preview requests").
			WithCause(err).WithContext("addr", s.cfg.Addr).Build()
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Preview server stopped", logfields.Error(err))
		}
	}()
	s.logger.Info("Preview server listening", slog.String("url", "http://"+ln.Addr().String()))

	watcher, err := setupFileWatcher(s.cfg.WatchDirs, s.logger)
	if err != nil {
		_ = httpServer.Close()
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq := make(chan string, 1)
	deb := newDebouncer(debounceDelay, func() { request(rebuildReq, TriggerWatch) })
	defer deb.stop()

	workerDone := make(chan struct{})
	go s.rebuildWorker(ctx, rebuildReq, workerDone)

	if s.cfg.RebuildInterval > 0 {
		sched, err := newScheduler(s.cfg.RebuildInterval, func() { request(rebuildReq, TriggerSchedule) }, s.logger)
		if err != nil {
			_ = httpServer.Close()
			return err
		}
		defer sched.shutdown()
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down preview server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
			}
			<-workerDone
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if handleFileEvent(watcher, ev, s.logger) {
				deb.trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// request queues a rebuild. A rebuild already queued absorbs the request.
func request(ch chan<- string, trigger string) {
	select {
	case ch <- trigger:
	default:
	}
}

// rebuildWorker runs queued rebuilds one at a time.
func (s *Server) rebuildWorker(ctx context.Context, rebuildReq <-chan string, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case trigger := <-rebuildReq:
			s.cfg.Recorder.IncRebuildTrigger(trigger)
			s.build(ctx, trigger)
		}
	}
}

func (s *Server) build(ctx context.Context, trigger string) {
	s.logger.Info("Rebuilding site", slog.String("trigger", trigger))
	report, err := s.builder.Build(ctx)
	if err != nil {
		s.logger.Warn("Rebuild failed", logfields.Error(err))
		s.status.setError(err)
		return
	}
	s.status.setSuccess(report)
}
