package resumefit

import (
	"log/slog"
	"time"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds the settings collected from options.
type rendererConfig struct {
	timeouts   Timeouts
	thresholds Thresholds
	document   documentSource
	outputDir  string
	filename   string
	sidecar    bool
	browserBin string
	noSandbox  bool
	maxPages   int
}

// WithTimeouts sets every wait budget of the render loop.
// Panics if a timeout is not positive or the grace period is negative.
func WithTimeouts(t Timeouts) Option {
	if t.Render <= 0 || t.Ready <= 0 || t.AutoFit <= 0 {
		panic("resumefit: WithTimeouts durations must be positive")
	}
	if t.Grace < 0 {
		panic("resumefit: WithTimeouts grace period cannot be negative")
	}
	return func(r *Renderer) {
		r.cfg.timeouts = t
	}
}

// WithRenderTimeout sets how long to wait for the render-complete marker.
// Panics if d is not positive.
func WithRenderTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resumefit: WithRenderTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeouts.Render = d
	}
}

// WithThresholds sets the fill-ratio thresholds.
// Panics if a threshold is outside (0, 1].
func WithThresholds(t Thresholds) Option {
	for _, v := range []float64{t.HintUnderfill, t.SparseSuccess, t.DocumentSparse} {
		if v <= 0 || v > 1 {
			panic("resumefit: WithThresholds values must be in (0, 1]")
		}
	}
	return func(r *Renderer) {
		r.cfg.thresholds = t
	}
}

// WithDocumentPath uses a standalone rendering document from disk instead
// of a named document. The document is loaded in place, unstyled.
func WithDocumentPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.document.path = path
	}
}

// WithAssetDir adds a directory with documents/ and styles/ subdirectories
// whose files override the built-in ones by name.
func WithAssetDir(dir string) Option {
	return func(r *Renderer) {
		r.cfg.document.assetDir = dir
	}
}

// WithDocument selects the rendering document by name.
func WithDocument(name string) Option {
	return func(r *Renderer) {
		r.cfg.document.name = name
	}
}

// WithStyle selects the stylesheet injected into a named document.
// An empty name injects none.
func WithStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.document.style = name
	}
}

// WithOutputDir sets the directory for PDFs when the request has no
// absolute path.
func WithOutputDir(dir string) Option {
	return func(r *Renderer) {
		r.cfg.outputDir = dir
	}
}

// WithFilename sets the PDF file name used when the request has no path.
func WithFilename(name string) Option {
	return func(r *Renderer) {
		r.cfg.filename = name
	}
}

// WithDebugSidecar enables or disables the .debug.json file.
func WithDebugSidecar(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.sidecar = enabled
	}
}

// WithBrowserBin sets the Chrome binary for the renderer's own session.
func WithBrowserBin(path string) Option {
	return func(r *Renderer) {
		r.cfg.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox for the renderer's own session.
func WithNoSandbox(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.noSandbox = enabled
	}
}

// WithMaxPages bounds concurrent renders on the renderer's own session.
func WithMaxPages(n int) Option {
	return func(r *Renderer) {
		r.cfg.maxPages = n
	}
}

// WithSession renders on a caller-owned session. Close will not shut it down.
func WithSession(s *Session) Option {
	return func(r *Renderer) {
		r.session = s
	}
}

// WithLogger sets the diagnostic sink. Library code never writes to
// stdout or stderr on its own.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
