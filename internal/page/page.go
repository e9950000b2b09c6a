// Package page builds the in-memory record for one content file and decides
// which template renders it.
package page

import (
	"path/filepath"
	"strings"
)

const (
	// Suffix marks content files. Other files are ignored by the walker.
	Suffix = ".md"
	// IndexName is the base name (without suffix) of a directory's index page.
	IndexName = "index"

	DefaultPageTemplate  = "default-page"
	DefaultIndexTemplate = "default-index"
)

// Page is built once per content file and not modified afterwards.
type Page struct {
	// URL is the path relative to the content root, slash separated.
	URL string
	// Title is the file's base name without extension.
	Title string
	// Content is the HTML rendered from the body.
	Content string
	// Template is the override declared in the metadata block, or "".
	Template string
	// Fingerprint identifies the source block and body for build history.
	Fingerprint string
}

// Data is the record exposed to templates.
func (p Page) Data() map[string]any {
	return map[string]any{
		"url":      p.URL,
		"title":    p.Title,
		"content":  p.Content,
		"template": p.Template,
	}
}

// IsContent reports whether name carries the content suffix.
func IsContent(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// IsIndex reports whether path names a directory's index page.
func IsIndex(path string) bool {
	return filepath.Base(path) == IndexName+Suffix
}

// OutputName maps a content file name to its rendered file name.
func OutputName(name string) string {
	return strings.TrimSuffix(name, Suffix) + ".html"
}
