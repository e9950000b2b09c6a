package site

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/page"
	"git.home.luguber.info/inful/mdsite/internal/render"
)

// Result is what one directory, including its subdirectories, produced.
type Result struct {
	// Rendered counts every file written, index pages included.
	Rendered int
	// Indexes counts the index pages among Rendered.
	Indexes int
	// Skipped counts content files dropped in keep-going mode.
	Skipped int
	// Pages are the directory's own non-index pages in listing order.
	// Subdirectory pages are not included.
	Pages []page.Page
}

func (r *Result) addSubtree(sub Result) {
	r.Rendered += sub.Rendered
	r.Indexes += sub.Indexes
	r.Skipped += sub.Skipped
}

// Walker renders a content tree into a mirrored output tree.
type Walker struct {
	fs       afero.Fs
	opts     config.Options
	pages    *page.Builder
	writer   *render.Writer
	observer Observer
	logger   *slog.Logger
}

// NewWalker returns a Walker building pages with pages and writing them with writer.
func NewWalker(fs afero.Fs, opts config.Options, pages *page.Builder, writer *render.Writer) *Walker {
	return &Walker{
		fs:       fs,
		opts:     opts,
		pages:    pages,
		writer:   writer,
		observer: NoopObserver{},
		logger:   slog.Default(),
	}
}

// WithObserver sets the observer notified for every rendered or skipped file.
func (w *Walker) WithObserver(o Observer) *Walker {
	if o != nil {
		w.observer = o
	}
	return w
}

// WithLogger overrides the default logger.
func (w *Walker) WithLogger(l *slog.Logger) *Walker {
	if l != nil {
		w.logger = l
	}
	return w
}

// Walk renders the directory src into dst.
//
// Subdirectories are walked as they are met in the listing. Every .md file
// other than index.md becomes a page at the mirrored path with an .html
// suffix. index.md is rendered last, to index.html, with the directory's
// pages as posts. Other files are ignored.
//
// The first failure aborts the walk and is returned together with what was
// rendered so far. In keep-going mode a file whose page cannot be built or
// rendered is skipped instead.
func (w *Walker) Walk(ctx context.Context, src, dst string) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, canceled(err, src)
	}

	if err := w.fs.MkdirAll(dst, 0o750); err != nil {
		return res, errors.FileSystemError("create output directory").
			WithCause(err).WithPath(dst).Build()
	}

	entries, err := afero.ReadDir(w.fs, src)
	if err != nil {
		return res, errors.FileSystemError("list content directory").
			WithCause(err).WithPath(src).Build()
	}

	var indexPath string
	for _, entry := range entries {
		name := entry.Name()
		srcPath := filepath.Join(src, name)
		if err := ctx.Err(); err != nil {
			return res, canceled(err, srcPath)
		}

		if entry.IsDir() {
			sub, err := w.Walk(ctx, srcPath, filepath.Join(dst, name))
			res.addSubtree(sub)
			if err != nil {
				return res, err
			}
			continue
		}

		if !page.IsContent(name) {
			continue
		}
		if page.IsIndex(srcPath) {
			indexPath = srcPath
			continue
		}

		p, ok, err := w.renderFile(srcPath, filepath.Join(dst, page.OutputName(name)), metrics.KindPage, nil)
		if err != nil {
			return res, err
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Rendered++
		res.Pages = append(res.Pages, p)
	}

	if indexPath != "" {
		_, ok, err := w.renderFile(indexPath, filepath.Join(dst, page.OutputName(page.IndexName+page.Suffix)), metrics.KindIndex, res.Pages)
		if err != nil {
			return res, err
		}
		if ok {
			res.Rendered++
			res.Indexes++
		} else {
			res.Skipped++
		}
	}

	return res, nil
}

// renderFile builds and writes one page. ok is false when the file was
// skipped in keep-going mode.
func (w *Walker) renderFile(src, dst string, kind metrics.PageKind, posts []page.Page) (page.Page, bool, error) {
	p, name, err := w.render(src, dst, kind, posts)
	if err == nil {
		w.logger.Debug("Rendered page",
			logfields.Path(src),
			logfields.Output(dst),
			logfields.Template(name),
			logfields.Kind(string(kind)))
		w.observer.OnPageRendered(RenderedPage{Page: p, Source: src, Output: dst, Template: name, Kind: kind})
		return p, true, nil
	}

	if !w.opts.KeepGoing {
		return page.Page{}, false, err
	}
	w.logger.Warn("Skipping content file", logfields.Path(src), logfields.Error(err))
	w.observer.OnPageSkipped(src, err)
	return page.Page{}, false, nil
}

func (w *Walker) render(src, dst string, kind metrics.PageKind, posts []page.Page) (page.Page, string, error) {
	p, err := w.pages.Build(src)
	if err != nil {
		return page.Page{}, "", err
	}
	name := page.ResolveTemplate(src, w.opts, p)
	data := p.Data()
	if kind == metrics.KindIndex {
		data["posts"] = postsData(posts)
	}
	if err := w.writer.Write(dst, name, data); err != nil {
		return page.Page{}, name, withSource(err, src)
	}
	return p, name, nil
}

// withSource tags a render failure with the content file it came from.
func withSource(err error, src string) error {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.WithContext(errors.ContextKeySource, src)
	}
	return errors.TemplateError("render page").WithCause(err).WithSource(src).Build()
}

// canceled reports where a walk stopped. The context error stays in the chain.
func canceled(err error, path string) error {
	return errors.BuildError("build canceled").WithCause(err).WithPath(path).Build()
}

func postsData(posts []page.Page) []map[string]any {
	out := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Data())
	}
	return out
}
