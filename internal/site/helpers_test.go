package site

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
)

// listTemplate prints an index page's title and post urls.
const listTemplate = "{{.title}}:{{range .posts}}{{.url}};{{end}}"

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.FromSlash(name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	}
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, filepath.FromSlash(name))
	require.NoError(t, err)
	return string(b)
}

func testOptions() config.Options {
	return config.Options{Paths: config.DefaultPaths()}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRecorder struct {
	mu       sync.Mutex
	stages   map[string]int
	pages    map[metrics.PageKind]int
	skipped  int
	outcomes []metrics.BuildOutcome
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{stages: map[string]int{}, pages: map[metrics.PageKind]int{}}
}

func (f *fakeRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stages[stage]++
}
func (f *fakeRecorder) ObserveBuildDuration(time.Duration) {}
func (f *fakeRecorder) IncPagesRendered(kind metrics.PageKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[kind]++
}
func (f *fakeRecorder) IncPagesSkipped() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skipped++
}
func (f *fakeRecorder) IncBuildOutcome(o metrics.BuildOutcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, o)
}
func (f *fakeRecorder) IncRebuildTrigger(string) {}
