package main

// Notes:
// - rendererOptions is checked by building a real Renderer from the
//   options. NewRenderer resolves the rendering document but never starts
//   a browser, so this runs without Chrome.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	resumefit "github.com/alnah/go-resumefit"
	"github.com/alnah/go-resumefit/internal/config"
)

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag and environment precedence
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr error
	}{
		{"neither set", "", 0, 0, nil},
		{"env only", "", 30 * time.Second, 30 * time.Second, nil},
		{"flag wins", "20s", 30 * time.Second, 20 * time.Second, nil},
		{"unparseable flag", "soon", 0, 0, ErrInvalidTimeout},
		{"zero flag", "0s", 0, 0, ErrInvalidTimeout},
		{"negative flag", "-1s", 0, 0, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, &envConfig{Timeout: tt.env})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("resolveTimeout() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveMaxPages(t *testing.T) {
	t.Parallel()

	if got := resolveMaxPages(0, &envConfig{}); got != 0 {
		t.Errorf("resolveMaxPages(0, empty) = %d, want 0", got)
	}
	if got := resolveMaxPages(0, &envConfig{MaxPages: 4}); got != 4 {
		t.Errorf("resolveMaxPages(0, env 4) = %d, want 4", got)
	}
	if got := resolveMaxPages(2, &envConfig{MaxPages: 4}); got != 2 {
		t.Errorf("resolveMaxPages(2, env 4) = %d, want 2", got)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Config sources
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults without a name", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", &envConfig{OutputDir: "/env/out"})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Render.TimeoutMs != config.DefaultRenderTimeoutMs {
			t.Errorf("TimeoutMs = %d, want default", cfg.Render.TimeoutMs)
		}
		if cfg.Output.DefaultDir != "/env/out" {
			t.Errorf("DefaultDir = %q, want /env/out", cfg.Output.DefaultDir)
		}
	})

	t.Run("flag beats env path", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render:\n  timeoutMs: 20000\n")
		cfg, err := loadConfig(path, &envConfig{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Render.TimeoutMs != 20000 {
			t.Errorf("TimeoutMs = %d, want 20000", cfg.Render.TimeoutMs)
		}
	})

	t.Run("env path used without flag", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "output:\n  filename: jane.pdf\n")
		cfg, err := loadConfig("", &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Output.Filename != "jane.pdf" {
			t.Errorf("Filename = %q, want jane.pdf", cfg.Output.Filename)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "none.yaml"), &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("loadConfig() error = %v, want %v", err, config.ErrConfigNotFound)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeDocumentFlags - CLI overrides
// ---------------------------------------------------------------------------

func TestMergeDocumentFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Document.AssetDir = "/file/assets"

	mergeDocumentFlags(documentFlags{name: "compact", style: "serif"}, cfg)

	if cfg.Document.Name != "compact" || cfg.Document.Style != "serif" {
		t.Errorf("document = %+v, want compact/serif", cfg.Document)
	}
	if cfg.Document.AssetDir != "/file/assets" {
		t.Errorf("AssetDir = %q, unset flag should keep the config value", cfg.Document.AssetDir)
	}
	if cfg.Document.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Document.Path)
	}
}

// ---------------------------------------------------------------------------
// TestRendererOptions - Config to renderer options
// ---------------------------------------------------------------------------

func TestRendererOptions_BuildsRenderer(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.DefaultDir = t.TempDir()

	r, err := resumefit.NewRenderer(rendererOptions(cfg, slog.Default())...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRendererOptions_MissingDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"standalone path", func(c *config.Config) { c.Document.Path = "/nonexistent/resume.html" }},
		{"unknown name", func(c *config.Config) { c.Document.Name = "no-such-document" }},
		{"unknown style", func(c *config.Config) { c.Document.Style = "no-such-style" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			_, err := resumefit.NewRenderer(rendererOptions(cfg, nil)...)
			if !errors.Is(err, resumefit.ErrDocument) {
				t.Errorf("NewRenderer() error = %v, want %v", err, resumefit.ErrDocument)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		enabled slog.Level
		muted   slog.Level
	}{
		{"default", false, false, slog.LevelWarn, slog.LevelInfo},
		{"verbose", true, false, slog.LevelDebug, slog.LevelDebug - 4},
		{"quiet", false, true, slog.LevelError, slog.LevelWarn},
		{"verbose wins over quiet", true, true, slog.LevelDebug, slog.LevelDebug - 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.verbose, tt.quiet)
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Enabled(ctx, tt.muted) {
				t.Errorf("level %v should be muted", tt.muted)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Error hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "render error",
			err: &resumefit.RenderError{
				Kind: resumefit.KindOutputPath, Err: resumefit.ErrOutputPath, NextAction: "pick a writable directory",
			},
			want: "hint: pick a writable directory",
		},
		{
			name: "config not found",
			err:  fmt.Errorf("loading config: %w: tried a.yaml, a.yml", config.ErrConfigNotFound),
			want: "--config",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestTriedPaths(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: tried cv.yaml, cv.yml, /home/u/.config/go-resumefit/cv.yaml", config.ErrConfigNotFound)
	got := triedPaths(err)
	if len(got) != 3 || got[2] != "/home/u/.config/go-resumefit/cv.yaml" {
		t.Errorf("triedPaths() = %v", got)
	}
	if got := triedPaths(errors.New("no list")); got != nil {
		t.Errorf("triedPaths() = %v, want nil", got)
	}
}

func TestReportError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	reportError(&buf, fmt.Errorf("%w: %w", ErrReadMarkdown, errors.New("no such file")))

	if got := buf.String(); !strings.HasPrefix(got, "error: failed to read markdown file") {
		t.Errorf("reportError() = %q", got)
	}
}
