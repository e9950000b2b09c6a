// Package markdown converts markdown bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Options tunes the converter. The zero value is plain CommonMark with raw
// HTML omitted from the output.
type Options struct {
	// GFM enables tables, strikethrough, autolinks and task lists.
	GFM bool `yaml:"gfm"`
	// Unsafe passes raw HTML in the markdown through unchanged.
	Unsafe bool `yaml:"unsafe"`
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool `yaml:"hard_wraps"`
	// AutoHeadingID adds id attributes to headings.
	AutoHeadingID bool `yaml:"auto_heading_id"`
}

// Converter turns a markdown body into HTML.
type Converter interface {
	Convert(body []byte) (string, error)
}

// Goldmark is the goldmark-backed Converter.
type Goldmark struct {
	md goldmark.Markdown
}

// New builds a goldmark converter configured by opts.
func New(opts Options) *Goldmark {
	var (
		exts       []goldmark.Extender
		parserOpts []parser.Option
		renderOpts []renderer.Option
	)
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.AutoHeadingID {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}
	if opts.Unsafe {
		renderOpts = append(renderOpts, gmhtml.WithUnsafe())
	}
	if opts.HardWraps {
		renderOpts = append(renderOpts, gmhtml.WithHardWraps())
	}

	return &Goldmark{md: goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(renderOpts...),
	)}
}

// Convert renders body to HTML.
func (g *Goldmark) Convert(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
