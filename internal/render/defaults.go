package render

import (
	"embed"
	"fmt"

	"git.home.luguber.info/inful/mdsite/internal/page"
)

//go:embed defaults/*.html
var embeddedDefaults embed.FS

// Defaults holds the bodies of the built-in templates.
type Defaults struct {
	PageTemplate  string
	IndexTemplate string
}

// BuiltinDefaults returns the embedded default templates.
// Panics only if the embedded files are missing.
func BuiltinDefaults() Defaults {
	return Defaults{
		PageTemplate:  mustEmbedded("defaults/page.html"),
		IndexTemplate: mustEmbedded("defaults/index.html"),
	}
}

func mustEmbedded(name string) string {
	b, err := embeddedDefaults.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("embedded default template missing %s: %v", name, err))
	}
	return string(b)
}

func (d Defaults) entries() []struct{ name, body string } {
	return []struct{ name, body string }{
		{page.DefaultPageTemplate, d.PageTemplate},
		{page.DefaultIndexTemplate, d.IndexTemplate},
	}
}
