package page

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/config"
)

func TestResolveTemplate(t *testing.T) {
	overrides := config.Options{Template: "cli-page.html", IndexTemplate: "cli-index.html"}
	index := filepath.Join("content", "index.md")
	other := filepath.Join("content", "a.md")

	tests := []struct {
		name string
		path string
		opts config.Options
		page Page
		want string
	}{
		{"page default", other, config.Options{}, Page{}, DefaultPageTemplate},
		{"index default", index, config.Options{}, Page{}, DefaultIndexTemplate},
		{"page cli override", other, overrides, Page{}, "cli-page.html"},
		{"index cli override", index, overrides, Page{}, "cli-index.html"},
		{"index ignores page override", index, config.Options{Template: "cli-page.html"}, Page{}, DefaultIndexTemplate},
		{"page ignores index override", other, config.Options{IndexTemplate: "cli-index.html"}, Page{}, DefaultPageTemplate},
		{"page declared wins", other, overrides, Page{Template: "special.html"}, "special.html"},
		{"index declared wins", index, overrides, Page{Template: "special.html"}, "special.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveTemplate(tt.path, tt.opts, tt.page))
		})
	}
}
