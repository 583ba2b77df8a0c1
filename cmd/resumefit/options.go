package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	resumefit "github.com/alnah/go-resumefit"
	"github.com/alnah/go-resumefit/internal/config"
	"github.com/alnah/go-resumefit/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoInput        = errors.New("no input specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrOverflow       = errors.New("content does not fit on one page")
)

// loadConfig loads the config named by the flag, then RESUMEFIT_CONFIG, and
// falls back to defaults. Environment values fill what the file leaves empty.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeDocumentFlags merges CLI document flags into config. CLI values win.
func mergeDocumentFlags(f documentFlags, cfg *config.Config) {
	if f.path != "" {
		cfg.Document.Path = f.path
	}
	if f.assetDir != "" {
		cfg.Document.AssetDir = f.assetDir
	}
	if f.name != "" {
		cfg.Document.Name = f.name
	}
	if f.style != "" {
		cfg.Document.Style = f.style
	}
}

// rendererOptions translates a validated config into renderer options.
func rendererOptions(cfg *config.Config, logger *slog.Logger) []resumefit.Option {
	opts := []resumefit.Option{
		resumefit.WithTimeouts(resumefit.Timeouts{
			Render:  millis(cfg.Render.TimeoutMs),
			Ready:   millis(cfg.Render.ReadyTimeoutMs),
			Grace:   millis(cfg.Render.AutoFitGraceMs),
			AutoFit: millis(cfg.Render.AutoFitTimeoutMs),
		}),
		resumefit.WithThresholds(resumefit.Thresholds{
			HintUnderfill:  cfg.Thresholds.HintUnderfill,
			SparseSuccess:  cfg.Thresholds.SparseSuccess,
			DocumentSparse: cfg.Thresholds.DocumentSparse,
		}),
		resumefit.WithOutputDir(cfg.Output.DefaultDir),
		resumefit.WithFilename(cfg.Output.Filename),
		resumefit.WithDebugSidecar(cfg.Output.SidecarEnabled()),
		resumefit.WithBrowserBin(cfg.Browser.Bin),
		resumefit.WithNoSandbox(cfg.Browser.NoSandbox),
		resumefit.WithLogger(logger),
	}

	if cfg.Document.Path != "" {
		return append(opts, resumefit.WithDocumentPath(cfg.Document.Path))
	}
	return append(opts,
		resumefit.WithAssetDir(cfg.Document.AssetDir),
		resumefit.WithDocument(cfg.Document.Name),
		resumefit.WithStyle(cfg.Document.Style),
	)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// resolveTimeout picks the render timeout.
// Priority: flag > RESUMEFIT_TIMEOUT > config (0 keeps the config value).
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	return env.Timeout, nil
}

// resolveMaxPages picks the concurrent render limit for serve.
// Priority: flag > RESUMEFIT_MAX_PAGES > auto (0).
func resolveMaxPages(flagValue int, env *envConfig) int {
	if flagValue > 0 {
		return flagValue
	}
	return env.MaxPages
}

// newLogger writes text logs to w. Library logs stay quiet unless asked.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// reportError prints err with a hint when one applies.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

func hintFor(err error) string {
	var re *resumefit.RenderError
	if errors.As(err, &re) {
		return hints.Format(hints.Remedy{NextAction: re.NextAction})
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(triedPaths(err))
	}
	return ""
}

// triedPaths extracts the search list from a config-not-found message.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
