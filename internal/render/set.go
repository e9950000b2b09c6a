package render

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// ErrTemplateNotFound is wrapped by Render when no template has the requested name.
var ErrTemplateNotFound = errors.New("template not found")

// FuncMap is available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"trimSuffix": func(suffix, s string) string { return strings.TrimSuffix(s, suffix) },
		"replaceAll": strings.ReplaceAll,
		"lower":      strings.ToLower,
		"titleCase":  titleCase,
	}
}

// titleCase turns a slug such as "my-first_post" into "My First Post".
func titleCase(s string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(words)
}

// Set is an immutable collection of named templates.
type Set struct {
	root *template.Template
}

// Load parses every *.html file directly inside dir. A missing dir yields a
// set holding only the defaults. Any parse failure is fatal.
func Load(fs afero.Fs, dir string, defaults Defaults) (*Set, error) {
	root := template.New("").Funcs(FuncMap())

	matches, err := afero.Glob(fs, filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, ferrors.TemplateError("list templates").
			WithCause(err).WithPath(dir).Build()
	}
	sort.Strings(matches)

	for _, p := range matches {
		b, err := afero.ReadFile(fs, p)
		if err != nil {
			return nil, ferrors.FileSystemError("read template").
				WithCause(err).WithPath(p).Build()
		}
		if _, err := root.New(filepath.Base(p)).Parse(string(b)); err != nil {
			return nil, ferrors.TemplateError("parse template").
				WithCause(err).WithPath(p).Build()
		}
		slog.Debug("Loaded template", logfields.Template(filepath.Base(p)), logfields.Path(p))
	}

	s := &Set{root: root}
	for _, d := range defaults.entries() {
		if s.lookup(d.name) != nil {
			slog.Debug("Built-in template overridden", logfields.Template(d.name))
			continue
		}
		if _, err := root.New(d.name).Parse(d.body); err != nil {
			return nil, ferrors.InternalError("parse built-in template").
				WithCause(err).WithContext("template", d.name).Build()
		}
	}
	return s, nil
}

// Names lists the defined templates in sorted order.
func (s *Set) Names() []string {
	var names []string
	for _, t := range s.root.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Has reports whether name resolves to a template.
func (s *Set) Has(name string) bool {
	return s.lookup(name) != nil
}

// lookup resolves name exactly, then with an .html suffix.
func (s *Set) lookup(name string) *template.Template {
	if name == "" {
		return nil
	}
	if t := s.root.Lookup(name); t != nil {
		return t
	}
	if filepath.Ext(name) == "" {
		return s.root.Lookup(name + ".html")
	}
	return nil
}

// Render executes the named template against data.
func (s *Set) Render(w io.Writer, name string, data map[string]any) error {
	t := s.lookup(name)
	if t == nil {
		return ferrors.TemplateError("resolve template").
			WithCause(ErrTemplateNotFound).WithContext("template", name).Build()
	}
	if err := t.Execute(w, data); err != nil {
		return ferrors.TemplateError("execute template").
			WithCause(err).WithContext("template", name).Build()
	}
	return nil
}
