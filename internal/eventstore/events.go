package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// Event type names.
const (
	TypeBuildStarted   = "BuildStarted"
	TypePageRendered   = "PageRendered"
	TypePageSkipped    = "PageSkipped"
	TypeBuildCompleted = "BuildCompleted"
	TypeBuildFailed    = "BuildFailed"
)

// BuildStartedPayload describes the inputs of a build.
type BuildStartedPayload struct {
	ContentDir string `json:"content_dir"`
	OutputDir  string `json:"output_dir"`
	Theme      string `json:"theme,omitempty"`
	Clear      bool   `json:"clear"`
	KeepGoing  bool   `json:"keep_going"`
}

// PageRenderedPayload records one written page.
type PageRenderedPayload struct {
	URL         string `json:"url"`
	Output      string `json:"output"`
	Template    string `json:"template"`
	Kind        string `json:"kind"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// PageSkippedPayload records a content file a keep-going build could not render.
type PageSkippedPayload struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// BuildCompletedPayload summarizes a finished build.
type BuildCompletedPayload struct {
	Pages      int   `json:"pages"`
	Indexes    int   `json:"indexes"`
	Skipped    int   `json:"skipped"`
	DurationMS int64 `json:"duration_ms"`
}

// BuildFailedPayload records why a build stopped.
type BuildFailedPayload struct {
	Stage string `json:"stage,omitempty"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error"`
}

// NewBuildStarted creates a BuildStarted event.
func NewBuildStarted(buildID string, p BuildStartedPayload) (Event, error) {
	return newEvent(buildID, TypeBuildStarted, p)
}

// NewPageRendered creates a PageRendered event.
func NewPageRendered(buildID string, p PageRenderedPayload) (Event, error) {
	return newEvent(buildID, TypePageRendered, p)
}

// NewPageSkipped creates a PageSkipped event.
func NewPageSkipped(buildID string, p PageSkippedPayload) (Event, error) {
	return newEvent(buildID, TypePageSkipped, p)
}

// NewBuildCompleted creates a BuildCompleted event.
func NewBuildCompleted(buildID string, pages, indexes, skipped int, duration time.Duration) (Event, error) {
	return newEvent(buildID, TypeBuildCompleted, BuildCompletedPayload{
		Pages:      pages,
		Indexes:    indexes,
		Skipped:    skipped,
		DurationMS: duration.Milliseconds(),
	})
}

// NewBuildFailed creates a BuildFailed event.
func NewBuildFailed(buildID string, p BuildFailedPayload) (Event, error) {
	return newEvent(buildID, TypeBuildFailed, p)
}

func newEvent(buildID, eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.HistoryError("failed to marshal "+eventType+" payload").
			WithCause(err).
			WithContext("build_id", buildID).
			Build()
	}
	return &BaseEvent{
		EventBuildID:   buildID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

// DecodePayload unmarshals the payload of e into out.
func DecodePayload(e Event, out any) error {
	if err := json.Unmarshal(e.Payload(), out); err != nil {
		return errors.HistoryError("failed to unmarshal "+e.Type()+" payload").
			WithCause(err).
			WithContext("build_id", e.BuildID()).
			Build()
	}
	return nil
}
