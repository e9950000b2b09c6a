package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	require.NotPanics(t, func() {
		r.ObserveStageDuration("walk", time.Millisecond)
		r.ObserveBuildDuration(time.Millisecond)
		r.IncPagesRendered(KindIndex)
		r.IncPagesSkipped()
		r.IncBuildOutcome(OutcomePartial)
		r.IncRebuildTrigger("schedule")
	})
}
