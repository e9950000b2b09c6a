package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// envPrefix namespaces the environment overrides.
const envPrefix = "MDSITE_"

// loadEnvFiles loads .env and .env.local from dir when present. Variables
// already set in the process environment are never overwritten.
func loadEnvFiles(dir string) {
	var found []string
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return
	}
	if err := godotenv.Load(found...); err != nil {
		slog.Warn("Failed to load environment file", "files", found, "error", err)
		return
	}
	slog.Debug("Loaded environment variables", "files", found)
}

// applyEnv layers MDSITE_* variables over values read from the file.
func applyEnv(cfg *File) {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("THEME", &cfg.Theme)
	str("TEMPLATE", &cfg.Template)
	str("INDEX_TEMPLATE", &cfg.IndexTemplate)
	str("BASE_URL", &cfg.BaseURL)
	str("CONTENT_DIR", &cfg.Paths.ContentDir)
	str("OUTPUT_DIR", &cfg.Paths.OutputDir)
	str("THEMES_DIR", &cfg.Paths.ThemesDir)
	str("TEMPLATE_DIR", &cfg.Paths.TemplateDir)
	str("HISTORY_DB", &cfg.History.Database)

	if v, ok := os.LookupEnv(envPrefix + "PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Serve.Port = port
		} else {
			slog.Warn("Ignoring invalid port in environment", "value", v)
		}
	}
}
