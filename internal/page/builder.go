package page

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// Builder turns content files into Pages.
type Builder struct {
	fs          afero.Fs
	contentRoot string
	converter   markdown.Converter
	logger      *slog.Logger
}

// NewBuilder returns a Builder reading from fs. URLs are relative to contentRoot.
func NewBuilder(fs afero.Fs, contentRoot string, converter markdown.Converter) *Builder {
	return &Builder{
		fs:          fs,
		contentRoot: contentRoot,
		converter:   converter,
		logger:      slog.Default(),
	}
}

// WithLogger overrides the default logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Build reads path and produces its Page. Any failure is returned as a
// classified error naming path; no partial Page is returned.
func (b *Builder) Build(path string) (Page, error) {
	raw, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return Page{}, errors.FileSystemError("read content file").
			WithCause(err).WithPath(path).Build()
	}

	block, body, had := frontmatter.Split(raw)
	if !had && frontmatter.HasOpening(raw) {
		b.logger.Warn("Front matter has no closing delimiter; treating whole file as body", logfields.Path(path))
	}

	meta, err := frontmatter.DecodeMeta(block)
	if err != nil {
		return Page{}, errors.FrontMatterError("decode front matter").
			WithCause(err).WithPath(path).Build()
	}
	if len(meta.Ignored) > 0 {
		b.logger.Debug("Ignoring unknown front matter keys", logfields.Path(path), slog.Any("keys", meta.Ignored))
	}

	html, err := b.converter.Convert(body)
	if err != nil {
		return Page{}, errors.MarkdownError("convert markdown").
			WithCause(err).WithPath(path).Build()
	}

	rel, err := filepath.Rel(b.contentRoot, path)
	if err != nil {
		return Page{}, errors.InternalError("content file outside content root").
			WithCause(err).WithPath(path).Build()
	}

	base := filepath.Base(path)
	return Page{
		URL:         filepath.ToSlash(rel),
		Title:       strings.TrimSuffix(base, filepath.Ext(base)),
		Content:     html,
		Template:    meta.Template,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(block), string(body)),
	}, nil
}
