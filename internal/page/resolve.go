package page

import "git.home.luguber.info/inful/mdsite/internal/config"

// ResolveTemplate picks the template for the page built from path.
//
// The page's own override wins. Otherwise index pages use the index override
// or the built-in index template, and all other pages use the page override
// or the built-in page template.
func ResolveTemplate(path string, opts config.Options, p Page) string {
	if p.Template != "" {
		return p.Template
	}
	if IsIndex(path) {
		if opts.IndexTemplate != "" {
			return opts.IndexTemplate
		}
		return DefaultIndexTemplate
	}
	if opts.Template != "" {
		return opts.Template
	}
	return DefaultPageTemplate
}
