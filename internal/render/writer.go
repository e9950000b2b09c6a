package render

import (
	"bytes"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// Writer renders pages into files on fs.
type Writer struct {
	fs  afero.Fs
	set *Set
}

// NewWriter returns a Writer rendering with set.
func NewWriter(fs afero.Fs, set *Set) *Writer {
	return &Writer{fs: fs, set: set}
}

// Write renders the named template and overwrites dst with the result.
// Nothing is written when rendering fails.
func (w *Writer) Write(dst, name string, data map[string]any) error {
	var buf bytes.Buffer
	if err := w.set.Render(&buf, name, data); err != nil {
		if ce, ok := ferrors.AsClassified(err); ok && ce.Path() == "" {
			return ce.WithContext(ferrors.ContextKeyPath, dst)
		}
		return err
	}
	// #nosec G306 -- generated site files are public
	if err := afero.WriteFile(w.fs, dst, buf.Bytes(), 0o644); err != nil {
		return ferrors.FileSystemError("write output").
			WithCause(err).WithPath(dst).Build()
	}
	return nil
}
