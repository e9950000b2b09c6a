package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(e Event, ts time.Time) Event {
	b := e.(*BaseEvent)
	b.EventTimestamp = ts
	return b
}

func mustEvent(t *testing.T) func(Event, error) Event {
	return func(e Event, err error) Event {
		t.Helper()
		require.NoError(t, err)
		return e
	}
}

func TestSummarize(t *testing.T) {
	must := mustEvent(t)
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	events := []Event{
		at(must(NewBuildStarted("old", BuildStartedPayload{ContentDir: "content", Theme: "plain"})), t0),
		at(must(NewPageRendered("old", PageRenderedPayload{URL: "a.md"})), t0),
		at(must(NewBuildCompleted("old", 1, 1, 0, 2*time.Second)), t0.Add(2*time.Second)),

		at(must(NewBuildStarted("partial", BuildStartedPayload{})), t0.Add(time.Minute)),
		at(must(NewBuildCompleted("partial", 1, 0, 1, time.Second)), t0.Add(time.Minute+time.Second)),

		at(must(NewBuildStarted("failed", BuildStartedPayload{})), t0.Add(2*time.Minute)),
		at(must(NewBuildFailed("failed", BuildFailedPayload{Error: "template not found"})), t0.Add(2*time.Minute)),

		at(must(NewBuildStarted("running", BuildStartedPayload{})), t0.Add(3*time.Minute)),
	}

	got := Summarize(events)
	require.Len(t, got, 4)
	require.Equal(t, []string{"running", "failed", "partial", "old"},
		[]string{got[0].BuildID, got[1].BuildID, got[2].BuildID, got[3].BuildID})

	require.Equal(t, StatusRunning, got[0].Status)
	require.Nil(t, got[0].CompletedAt)

	require.Equal(t, StatusFailed, got[1].Status)
	require.Equal(t, "template not found", got[1].ErrorMessage)

	require.Equal(t, StatusPartial, got[2].Status)
	require.Equal(t, 1, got[2].Skipped)

	old := got[3]
	require.Equal(t, StatusCompleted, old.Status)
	require.Equal(t, "plain", old.Theme)
	require.Equal(t, 1, old.Pages)
	require.Equal(t, 1, old.Indexes)
	require.Equal(t, 2*time.Second, old.Duration)
	require.NotNil(t, old.CompletedAt)
}

func TestBuilds(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	e, err := NewBuildStarted(testBuildID, BuildStartedPayload{})
	require.NoError(t, err)
	require.NoError(t, AppendEvent(ctx, store, e))
	e, err = NewBuildCompleted(testBuildID, 3, 1, 0, time.Second)
	require.NoError(t, err)
	require.NoError(t, AppendEvent(ctx, store, e))

	builds, err := Builds(ctx, store, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, builds, 1)
	require.Equal(t, StatusCompleted, builds[0].Status)
	require.Equal(t, 3, builds[0].Pages)
}
