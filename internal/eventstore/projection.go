package eventstore

import (
	"context"
	"sort"
	"time"
)

// Build statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// BuildSummary is a read model of one build reconstructed from its events.
type BuildSummary struct {
	BuildID      string        `json:"build_id"`
	Status       string        `json:"status"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	ContentDir   string        `json:"content_dir,omitempty"`
	Theme        string        `json:"theme,omitempty"`
	Pages        int           `json:"pages"`
	Indexes      int           `json:"indexes"`
	Skipped      int           `json:"skipped"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Summarize folds events into one summary per build, newest first.
// Events must be in append order.
func Summarize(events []Event) []*BuildSummary {
	builds := make(map[string]*BuildSummary)
	var order []*BuildSummary

	for _, event := range events {
		buildID := event.BuildID()
		if buildID == "" {
			continue
		}
		summary, ok := builds[buildID]
		if !ok {
			summary = &BuildSummary{
				BuildID:   buildID,
				Status:    StatusRunning,
				StartedAt: event.Timestamp(),
			}
			builds[buildID] = summary
			order = append(order, summary)
		}
		apply(summary, event)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].StartedAt.After(order[j].StartedAt)
	})
	return order
}

func apply(summary *BuildSummary, event Event) {
	switch event.Type() {
	case TypeBuildStarted:
		summary.StartedAt = event.Timestamp()
		var p BuildStartedPayload
		if err := DecodePayload(event, &p); err == nil {
			summary.ContentDir = p.ContentDir
			summary.Theme = p.Theme
		}

	case TypeBuildCompleted:
		finish(summary, event.Timestamp())
		summary.Status = StatusCompleted
		var p BuildCompletedPayload
		if err := DecodePayload(event, &p); err == nil {
			summary.Pages = p.Pages
			summary.Indexes = p.Indexes
			summary.Skipped = p.Skipped
			summary.Duration = time.Duration(p.DurationMS) * time.Millisecond
			if p.Skipped > 0 {
				summary.Status = StatusPartial
			}
		}

	case TypeBuildFailed:
		finish(summary, event.Timestamp())
		summary.Status = StatusFailed
		var p BuildFailedPayload
		if err := DecodePayload(event, &p); err == nil {
			summary.ErrorMessage = p.Error
		}
	}
}

func finish(summary *BuildSummary, at time.Time) {
	summary.CompletedAt = &at
	summary.Duration = at.Sub(summary.StartedAt)
}

// Builds loads and summarizes every build with an event newer than since.
func Builds(ctx context.Context, store Store, since time.Time) ([]*BuildSummary, error) {
	events, err := store.GetRange(ctx, since, time.Now().Add(time.Minute))
	if err != nil {
		return nil, err
	}
	return Summarize(events), nil
}
