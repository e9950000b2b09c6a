package preview

import (
	"encoding/json"
	"net/http"
	"sync"

	"git.home.luguber.info/inful/mdsite/internal/site"
)

// buildStatus tracks the latest build for the status endpoint.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastReport   *site.Report
	hasGoodBuild bool
	builds       int
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.builds++
}

func (bs *buildStatus) setSuccess(report *site.Report) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.lastReport = report
	bs.hasGoodBuild = true
	bs.builds++
}

type statusResponse struct {
	Builds       int    `json:"builds"`
	HasGoodBuild bool   `json:"has_good_build"`
	Error        string `json:"error,omitempty"`
	BuildID      string `json:"build_id,omitempty"`
	Pages        int    `json:"pages"`
	Indexes      int    `json:"indexes"`
	Skipped      int    `json:"skipped"`
	DurationMS   int64  `json:"duration_ms"`
}

func (bs *buildStatus) snapshot() statusResponse {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	resp := statusResponse{Builds: bs.builds, HasGoodBuild: bs.hasGoodBuild}
	if bs.lastError != nil {
		resp.Error = bs.lastError.Error()
	}
	if r := bs.lastReport; r != nil {
		resp.BuildID = r.BuildID
		resp.Pages = r.Pages
		resp.Indexes = r.Indexes
		resp.Skipped = r.Skipped
		resp.DurationMS = r.Duration.Milliseconds()
	}
	return resp
}

func (bs *buildStatus) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	resp := bs.snapshot()
	if resp.Error != "" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

