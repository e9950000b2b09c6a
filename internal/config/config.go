// Package config holds the build options and the optional mdsite.yaml site file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// DefaultFile is the site file looked up when --config is not given.
const DefaultFile = "mdsite.yaml"

// Paths are the root directories a build reads from and writes to.
type Paths struct {
	ContentDir  string `yaml:"content,omitempty"`
	OutputDir   string `yaml:"output,omitempty"`
	ThemesDir   string `yaml:"themes,omitempty"`
	TemplateDir string `yaml:"template,omitempty"`
}

// DefaultPaths returns the conventional working-directory layout.
func DefaultPaths() Paths {
	return Paths{
		ContentDir:  "content",
		OutputDir:   "public",
		ThemesDir:   "themes",
		TemplateDir: "template",
	}
}

// TemplateSource returns the directory whose *.html files form the template set.
func (p Paths) TemplateSource(theme string) string {
	if theme == "" {
		return p.TemplateDir
	}
	return filepath.Join(p.ThemesDir, theme, "template")
}

// ThemeCSS returns the theme's stylesheet directory, or "" without a theme.
func (p Paths) ThemeCSS(theme string) string {
	if theme == "" {
		return ""
	}
	return filepath.Join(p.ThemesDir, theme, "css")
}

// Options are fixed for the duration of a build and never mutated by it.
type Options struct {
	Clear         bool
	BaseURL       string // accepted for templates and future use; rendering ignores it
	Template      string
	IndexTemplate string
	Theme         string
	Verbose       bool
	// KeepGoing skips a file whose page cannot be built or rendered instead of aborting.
	KeepGoing bool

	Paths    Paths
	Markdown markdown.Options
}

// HistoryConfig configures the sqlite build history.
type HistoryConfig struct {
	Database string `yaml:"database,omitempty"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Port            int           `yaml:"port,omitempty"`
	RebuildInterval time.Duration `yaml:"rebuild_interval,omitempty"`
}

// File is the on-disk representation of mdsite.yaml.
type File struct {
	Theme         string           `yaml:"theme,omitempty"`
	Template      string           `yaml:"template,omitempty"`
	IndexTemplate string           `yaml:"index_template,omitempty"`
	BaseURL       string           `yaml:"base_url,omitempty"`
	Clear         bool             `yaml:"clear,omitempty"`
	KeepGoing     bool             `yaml:"keep_going,omitempty"`
	Paths         Paths            `yaml:"paths,omitempty"`
	Markdown      markdown.Options `yaml:"markdown,omitempty"`
	History       HistoryConfig    `yaml:"history,omitempty"`
	Serve         ServeConfig      `yaml:"serve,omitempty"`
}

// Load reads the site file at path. A missing file is not an error unless
// required is set; environment overrides and defaults apply either way.
func Load(path string, required bool) (*File, error) {
	loadEnvFiles(filepath.Dir(path))

	cfg := &File{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("configuration file not found: %s", path)
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func decode(data []byte, cfg *File) error {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyDefaults(cfg *File) {
	def := DefaultPaths()
	if cfg.Paths.ContentDir == "" {
		cfg.Paths.ContentDir = def.ContentDir
	}
	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = def.OutputDir
	}
	if cfg.Paths.ThemesDir == "" {
		cfg.Paths.ThemesDir = def.ThemesDir
	}
	if cfg.Paths.TemplateDir == "" {
		cfg.Paths.TemplateDir = def.TemplateDir
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 1313
	}
}

// Options converts the site file into build options. CLI flags are layered
// on top by the caller.
func (f *File) Options() Options {
	return Options{
		Clear:         f.Clear,
		BaseURL:       f.BaseURL,
		Template:      f.Template,
		IndexTemplate: f.IndexTemplate,
		Theme:         f.Theme,
		KeepGoing:     f.KeepGoing,
		Paths:         f.Paths,
		Markdown:      f.Markdown,
	}
}

// Init writes an example site file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	example := File{
		BaseURL: "https://example.com",
		Clear:   true,
		Paths:   DefaultPaths(),
		Markdown: markdown.Options{
			GFM:           true,
			AutoHeadingID: true,
		},
		Serve: ServeConfig{Port: 1313},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- site configuration is not secret
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
