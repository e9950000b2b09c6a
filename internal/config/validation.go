package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// Validate rejects option sets a build cannot run with.
func Validate(opts Options) error {
	required := map[string]string{
		"content directory":  opts.Paths.ContentDir,
		"output directory":   opts.Paths.OutputDir,
		"template directory": opts.Paths.TemplateDir,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return ferrors.ValidationError(name + " must not be empty").Build()
		}
	}
	if opts.Theme != "" && strings.TrimSpace(opts.Paths.ThemesDir) == "" {
		return ferrors.ValidationError("themes directory must not be empty when a theme is set").Build()
	}
	if strings.ContainsAny(opts.Theme, `/\`) || opts.Theme == "." || opts.Theme == ".." {
		return ferrors.ValidationError("theme must be a directory name").
			WithContext("theme", opts.Theme).
			Build()
	}

	content := filepath.Clean(opts.Paths.ContentDir)
	output := filepath.Clean(opts.Paths.OutputDir)
	if content == output {
		return ferrors.ValidationError("output directory must differ from content directory").
			WithPath(output).
			Build()
	}
	if within(output, content) {
		// Clearing the output would delete the content.
		return ferrors.ValidationError("content directory must not be inside the output directory").
			WithPath(content).
			Build()
	}
	if within(content, output) {
		// The walk would find its own output and descend into it.
		return ferrors.ValidationError("output directory must not be inside the content directory").
			WithPath(output).
			Build()
	}
	return nil
}

// within reports whether path lies below dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
