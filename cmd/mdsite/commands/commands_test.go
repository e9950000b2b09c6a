package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/eventstore"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

func writeSiteFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mdsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSite_FlagsOverrideFile(t *testing.T) {
	path := writeSiteFile(t, "theme: plain\ntemplate: file.html\npaths:\n  output: dist\n")

	opts, _, err := loadSite(&CLI{Config: path}, SiteFlags{Template: "flag.html", Clear: true})
	require.NoError(t, err)
	require.Equal(t, "flag.html", opts.Template)
	require.Equal(t, "plain", opts.Theme)
	require.Equal(t, "dist", opts.Paths.OutputDir)
	require.Equal(t, "content", opts.Paths.ContentDir)
	require.True(t, opts.Clear)
}

func TestLoadSite_MissingFileUsesDefaults(t *testing.T) {
	opts, file, err := loadSite(&CLI{Config: filepath.Join(t.TempDir(), "none.yaml")}, SiteFlags{})
	require.NoError(t, err)
	require.NotNil(t, file)
	require.Equal(t, "public", opts.Paths.OutputDir)
	require.Empty(t, opts.Template)
}

func TestLoadSite_InvalidFile(t *testing.T) {
	path := writeSiteFile(t, "themme: typo\n")
	_, _, err := loadSite(&CLI{Config: path}, SiteFlags{})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadSite_ValidatesMergedOptions(t *testing.T) {
	_, _, err := loadSite(&CLI{Config: filepath.Join(t.TempDir(), "none.yaml")}, SiteFlags{Output: "content"})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestPrintBuildsAndEvents(t *testing.T) {
	store, err := eventstore.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := t.Context()

	for _, mk := range []func() (eventstore.Event, error){
		func() (eventstore.Event, error) {
			return eventstore.NewBuildStarted("b1", eventstore.BuildStartedPayload{ContentDir: "content"})
		},
		func() (eventstore.Event, error) {
			return eventstore.NewPageRendered("b1", eventstore.PageRenderedPayload{URL: "a.md", Output: "public/a.html", Template: "default-page"})
		},
		func() (eventstore.Event, error) { return eventstore.NewBuildCompleted("b1", 1, 0, 0, time.Second) },
	} {
		e, err := mk()
		require.NoError(t, err)
		require.NoError(t, eventstore.AppendEvent(ctx, store, e))
	}

	var out bytes.Buffer
	require.NoError(t, printBuilds(ctx, &out, store, time.Now().Add(-time.Hour)))
	require.Contains(t, out.String(), "b1")
	require.Contains(t, out.String(), eventstore.StatusCompleted)

	out.Reset()
	require.NoError(t, printEvents(ctx, &out, store, "b1"))
	require.Contains(t, out.String(), "a.md -> public/a.html (default-page)")

	err = printEvents(ctx, &out, store, "missing")
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestWatchDirsSkipsEmpty(t *testing.T) {
	require.Equal(t, []string{"content", "template"}, watchDirs("content", "template/", ""))
}
