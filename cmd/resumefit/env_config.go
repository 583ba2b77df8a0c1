package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-resumefit/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // RESUMEFIT_CONFIG: config file name or path
	OutputDir  string        // RESUMEFIT_OUTPUT_DIR: default PDF directory
	Document   string        // RESUMEFIT_DOCUMENT: standalone rendering document
	Timeout    time.Duration // RESUMEFIT_TIMEOUT: render-complete wait
	MaxPages   int           // RESUMEFIT_MAX_PAGES: concurrent renders for serve
}

// knownEnvVars lists valid RESUMEFIT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUMEFIT_CONFIG":     true,
	"RESUMEFIT_OUTPUT_DIR": true,
	"RESUMEFIT_DOCUMENT":   true,
	"RESUMEFIT_TIMEOUT":    true,
	"RESUMEFIT_MAX_PAGES":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid numeric or duration values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RESUMEFIT_CONFIG"),
		OutputDir:  os.Getenv("RESUMEFIT_OUTPUT_DIR"),
		Document:   os.Getenv("RESUMEFIT_DOCUMENT"),
	}

	if timeout := os.Getenv("RESUMEFIT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if pages := os.Getenv("RESUMEFIT_MAX_PAGES"); pages != "" {
		if n, err := strconv.Atoi(pages); err == nil && n > 0 {
			cfg.MaxPages = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RESUMEFIT_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "RESUMEFIT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeDocumentFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Document != "" && cfg.Document.Path == "" {
		cfg.Document.Path = env.Document
	}
}
