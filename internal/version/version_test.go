package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.NotEmpty(t, Version)
	require.Equal(t, Version+" (commit "+GitCommit+", built "+BuildTime+")", String())
}

func TestStringUsesOverrides(t *testing.T) {
	orig := [3]string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = orig[0], orig[1], orig[2] })

	Version, GitCommit, BuildTime = "v1.0.0", "abc123", "2026-01-01"
	require.Equal(t, "v1.0.0 (commit abc123, built 2026-01-01)", String())
}
