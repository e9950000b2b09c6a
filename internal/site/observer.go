package site

import (
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/page"
)

// RenderedPage describes one file written by the walker.
type RenderedPage struct {
	Page     page.Page
	Source   string
	Output   string
	Template string
	Kind     metrics.PageKind
}

// Observer receives callbacks as the walker renders or skips files.
type Observer interface {
	OnPageRendered(r RenderedPage)
	OnPageSkipped(path string, err error)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnPageRendered(RenderedPage)  {}
func (NoopObserver) OnPageSkipped(string, error) {}
