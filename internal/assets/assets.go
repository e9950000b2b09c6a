// Package assets copies theme stylesheets into the output tree.
package assets

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// CSSDir is the output subdirectory receiving theme stylesheets.
const CSSDir = "css"

// CopyFlat copies the regular files directly inside src into dst and returns
// how many were copied. Subdirectories are not descended. A missing src is
// not an error and copies nothing.
func CopyFlat(fs afero.Fs, src, dst string) (int, error) {
	entries, err := afero.ReadDir(fs, src)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, ferrors.FileSystemError("list theme assets").
			WithCause(err).WithPath(src).Build()
	}

	if err := fs.MkdirAll(dst, 0o750); err != nil {
		return 0, ferrors.FileSystemError("create asset directory").
			WithCause(err).WithPath(dst).Build()
	}

	copied := 0
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if err := copyFile(fs, srcPath, dstPath); err != nil {
			return copied, ferrors.FileSystemError("copy theme asset").
				WithCause(err).WithPath(srcPath).Build()
		}
		copied++
	}
	return copied, nil
}

// copyFile copies a single file from src to dst, overwriting dst.
func copyFile(fs afero.Fs, src, dst string) error {
	srcFile, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
