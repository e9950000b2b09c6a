package metrics

import "time"

// PageKind labels rendered pages.
type PageKind string

const (
	KindPage  PageKind = "page"
	KindIndex PageKind = "index"
)

// BuildOutcome labels finished builds.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomePartial  BuildOutcome = "partial" // keep-going build skipped at least one file
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Recorder defines observability hooks for site builds. Implementations
// must be safe for concurrent use; the preview server records from its
// rebuild worker and scheduler.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncPagesRendered(kind PageKind)
	IncPagesSkipped()
	IncBuildOutcome(outcome BuildOutcome)
	IncRebuildTrigger(trigger string) // trigger: watch|schedule
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncPagesRendered(PageKind)                  {}
func (NoopRecorder) IncPagesSkipped()                           {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)               {}
func (NoopRecorder) IncRebuildTrigger(string)                   {}
