package site

import (
	"context"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/mdsite/internal/assets"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/eventstore"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/page"
	"git.home.luguber.info/inful/mdsite/internal/render"
)

// Build stages, used as metric and log labels.
const (
	StagePrepare   = "prepare"
	StageAssets    = "assets"
	StageTemplates = "templates"
	StageWalk      = "walk"
)

// Report summarizes one build.
type Report struct {
	BuildID  string
	Pages    int
	Indexes  int
	Skipped  int
	Assets   int
	Duration time.Duration
	Outcome  metrics.BuildOutcome
}

// Builder runs complete site builds for a fixed set of options.
type Builder struct {
	fs       afero.Fs
	opts     config.Options
	recorder metrics.Recorder
	history  eventstore.Store
	logger   *slog.Logger
}

// NewBuilder returns a Builder reading and writing through fs.
func NewBuilder(fs afero.Fs, opts config.Options) *Builder {
	return &Builder{
		fs:       fs,
		opts:     opts,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithHistory records build events in store. A nil store disables history.
func (b *Builder) WithHistory(store eventstore.Store) *Builder {
	b.history = store
	return b
}

// WithLogger overrides the default logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Options returns the options the builder was created with.
func (b *Builder) Options() config.Options {
	return b.opts
}

// Build renders the whole site. The returned report is never nil; on
// failure it holds what was rendered before the build stopped.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{BuildID: uuid.NewString()}
	logger := b.logger.With(logfields.BuildID(report.BuildID))
	obs := &buildObserver{ctx: ctx, buildID: report.BuildID, recorder: b.recorder, history: b.history, logger: logger}

	logger.Info("Build started",
		slog.String("content", b.opts.Paths.ContentDir),
		logfields.Output(b.opts.Paths.OutputDir),
		logfields.Theme(b.opts.Theme))
	obs.record(eventstore.NewBuildStarted(report.BuildID, eventstore.BuildStartedPayload{
		ContentDir: b.opts.Paths.ContentDir,
		OutputDir:  b.opts.Paths.OutputDir,
		Theme:      b.opts.Theme,
		Clear:      b.opts.Clear,
		KeepGoing:  b.opts.KeepGoing,
	}))

	stage, err := b.run(ctx, report, obs, logger)
	report.Duration = time.Since(start)
	report.Outcome = outcomeFor(report, err)

	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.IncBuildOutcome(report.Outcome)

	if err != nil {
		ce, _ := errors.AsClassified(err)
		failed := eventstore.BuildFailedPayload{Stage: stage, Error: err.Error()}
		if ce != nil {
			failed.Path = ce.Path()
			if src := ce.Source(); src != "" {
				failed.Path = src
			}
		}
		obs.record(eventstore.NewBuildFailed(report.BuildID, failed))
		logger.Error("Build failed",
			logfields.Stage(stage),
			logfields.DurationMS(float64(report.Duration.Milliseconds())),
			logfields.Error(err))
		return report, err
	}

	obs.record(eventstore.NewBuildCompleted(report.BuildID, report.Pages, report.Indexes, report.Skipped, report.Duration))
	logger.Info("Build completed",
		logfields.Pages(report.Pages),
		slog.Int("indexes", report.Indexes),
		slog.Int("skipped", report.Skipped),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func outcomeFor(report *Report, err error) metrics.BuildOutcome {
	switch {
	case err != nil && (stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)):
		return metrics.OutcomeCanceled
	case err != nil:
		return metrics.OutcomeFailed
	case report.Skipped > 0:
		return metrics.OutcomePartial
	default:
		return metrics.OutcomeSuccess
	}
}

// run executes the stages in order and returns the stage that failed.
func (b *Builder) run(ctx context.Context, report *Report, obs *buildObserver, logger *slog.Logger) (string, error) {
	if err := b.timed(StagePrepare, func() error { return b.prepare() }); err != nil {
		return StagePrepare, err
	}

	if err := b.timed(StageAssets, func() error {
		n, err := b.copyAssets()
		report.Assets = n
		return err
	}); err != nil {
		return StageAssets, err
	}

	var set *render.Set
	if err := b.timed(StageTemplates, func() error {
		var err error
		set, err = render.Load(b.fs, b.opts.Paths.TemplateSource(b.opts.Theme), render.BuiltinDefaults())
		return err
	}); err != nil {
		return StageTemplates, err
	}
	logger.Debug("Template set loaded", slog.Any("templates", set.Names()))

	walker := NewWalker(b.fs, b.opts,
		page.NewBuilder(b.fs, b.opts.Paths.ContentDir, markdown.New(b.opts.Markdown)).WithLogger(logger),
		render.NewWriter(b.fs, set),
	).WithObserver(obs).WithLogger(logger)

	err := b.timed(StageWalk, func() error {
		res, err := walker.Walk(ctx, b.opts.Paths.ContentDir, b.opts.Paths.OutputDir)
		report.Pages = res.Rendered - res.Indexes
		report.Indexes = res.Indexes
		report.Skipped = res.Skipped
		return err
	})
	if err != nil {
		return StageWalk, err
	}
	return "", nil
}

func (b *Builder) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	b.recorder.ObserveStageDuration(stage, time.Since(start))
	return err
}

// prepare validates the options, checks the inputs exist and readies the
// output root. Nothing is removed unless every check passed.
func (b *Builder) prepare() error {
	if err := config.Validate(b.opts); err != nil {
		return err
	}

	paths := b.opts.Paths
	if ok, _ := afero.DirExists(b.fs, paths.ContentDir); !ok {
		return errors.NotFoundError("content directory not found").WithPath(paths.ContentDir).Build()
	}
	if b.opts.Theme != "" {
		themeDir := filepath.Join(paths.ThemesDir, b.opts.Theme)
		if ok, _ := afero.DirExists(b.fs, themeDir); !ok {
			return errors.NotFoundError("theme not found").WithPath(themeDir).Build()
		}
	}

	if b.opts.Clear {
		if err := b.fs.RemoveAll(paths.OutputDir); err != nil {
			return errors.FileSystemError("clear output directory").
				WithCause(err).WithPath(paths.OutputDir).Build()
		}
	}
	if err := b.fs.MkdirAll(paths.OutputDir, 0o750); err != nil {
		return errors.FileSystemError("create output directory").
			WithCause(err).WithPath(paths.OutputDir).Build()
	}
	return nil
}

func (b *Builder) copyAssets() (int, error) {
	src := b.opts.Paths.ThemeCSS(b.opts.Theme)
	if src == "" {
		return 0, nil
	}
	return assets.CopyFlat(b.fs, src, filepath.Join(b.opts.Paths.OutputDir, assets.CSSDir))
}

// buildObserver forwards walker callbacks to metrics and build history.
type buildObserver struct {
	ctx      context.Context
	buildID  string
	recorder metrics.Recorder
	history  eventstore.Store
	logger   *slog.Logger
}

func (o *buildObserver) OnPageRendered(r RenderedPage) {
	o.recorder.IncPagesRendered(r.Kind)
	o.record(eventstore.NewPageRendered(o.buildID, eventstore.PageRenderedPayload{
		URL:         r.Page.URL,
		Output:      r.Output,
		Template:    r.Template,
		Kind:        string(r.Kind),
		Fingerprint: r.Page.Fingerprint,
	}))
}

func (o *buildObserver) OnPageSkipped(path string, err error) {
	o.recorder.IncPagesSkipped()
	o.record(eventstore.NewPageSkipped(o.buildID, eventstore.PageSkippedPayload{Path: path, Error: err.Error()}))
}

// record appends an event to history. Failures are logged and dropped.
func (o *buildObserver) record(e eventstore.Event, err error) {
	if o.history == nil {
		return
	}
	if err == nil {
		// History outlives a canceled build so the failure is still recorded.
		err = eventstore.AppendEvent(context.WithoutCancel(o.ctx), o.history, e)
	}
	if err != nil {
		o.logger.Warn("Failed to record build history", logfields.Error(err))
	}
}
