package resumefit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-resumefit/internal/assets"
	"github.com/alnah/go-resumefit/internal/pipeline"
)

// Renderer runs the render-measure-hint loop.
// Create with NewRenderer, call Render any number of times, then Close.
// Render is safe for concurrent use; each call gets its own page.
type Renderer struct {
	cfg         rendererConfig
	session     *Session
	ownsSession bool
	doc         *document
	preparer    *pipeline.Preparer
	output      outputPolicy
	logger      *slog.Logger

	// Test seams.
	newEngine    func() engine
	newFitter    func(Page) AutoFitter
	pollInterval time.Duration
}

// NewRenderer creates a Renderer. The rendering document is resolved here so
// configuration mistakes surface before the first render; the browser is
// not started until the first Render.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeouts:   DefaultTimeouts(),
			thresholds: DefaultThresholds(),
			document: documentSource{
				name:  assets.DefaultDocumentName,
				style: assets.DefaultStyleName,
			},
			filename: DefaultFilename,
			sidecar:  true,
		},
		preparer:  pipeline.NewPreparer(),
		logger:    discardLogger(),
		newFitter: func(p Page) AutoFitter { return newDocumentAutoFitter(p) },
	}

	for _, opt := range opts {
		opt(r)
	}

	doc, err := loadDocument(r.cfg.document)
	if err != nil {
		return nil, err
	}
	r.doc = doc

	if r.session == nil {
		r.ownsSession = true
		if r.newEngine != nil {
			r.session = newSession(r.newEngine, r.cfg.maxPages, r.logger)
		} else {
			r.session = NewSession(SessionOptions{
				BrowserBin: r.cfg.browserBin,
				NoSandbox:  r.cfg.noSandbox,
				MaxPages:   r.cfg.maxPages,
				Logger:     r.logger,
			})
		}
	}

	r.output = outputPolicy{dir: r.cfg.outputDir, filename: r.cfg.filename}
	return r, nil
}

// Session returns the session pages are drawn from.
func (r *Renderer) Session() *Session {
	return r.session
}

// Close releases the rendering document and, unless the session was
// supplied with WithSession, shuts the browser down.
func (r *Renderer) Close() error {
	r.doc.Close()
	if r.ownsSession {
		return r.session.Shutdown()
	}
	return nil
}

// Render renders req.Markdown to a one-page PDF and reports how well it fits.
// Fatal failures return a *RenderError. Timeouts while waiting on the
// document are not fatal: the PDF is still captured and the outcome lists
// them under Warnings. Internal panics are recovered into KindInternal.
func (r *Renderer) Render(ctx context.Context, req Request) (out *Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = newRenderError(KindInternal, "render", fmt.Errorf("internal error: %v", rec))
		}
	}()

	if strings.TrimSpace(req.Markdown) == "" {
		return nil, newRenderError(KindEmptyInput, "validate", ErrEmptyMarkdown)
	}

	prepared, err := r.preparer.Prepare(ctx, req.Markdown, req.SourceDir)
	if err != nil {
		return nil, newRenderError(ctxKind(ctx, KindInternal), "prepare", err)
	}

	docURL, err := r.doc.URL()
	if err != nil {
		return nil, newRenderError(KindNavigationFailed, "document", err)
	}

	handle, err := r.session.NewPage(ctx)
	if err != nil {
		return nil, newRenderError(ctxKind(ctx, KindEngineUnavailable), "open page", err)
	}
	logger := r.logger.With(slog.String("page_id", handle.ID.String()))
	defer func() {
		if rerr := handle.Release(); rerr != nil {
			logger.Debug("page release failed", slog.Any("error", rerr))
		}
	}()

	logger.Info("render started", slog.Int("markdown_bytes", len(req.Markdown)))
	return r.render(ctx, handle, req, prepared, docURL, logger)
}

// render runs the steps that need a page. The caller owns the handle.
func (r *Renderer) render(ctx context.Context, h *PageHandle, req Request, prepared *pipeline.Prepared, docURL string, logger *slog.Logger) (*Outcome, error) {
	page := h.Page()
	timeouts := r.cfg.timeouts
	if req.RenderTimeout > 0 {
		timeouts.Render = req.RenderTimeout
	}

	warnings, err := injectContent(ctx, page, injection{
		url:          docURL,
		markdown:     prepared.Markdown,
		fallbackHTML: prepared.Fragment,
		sparse:       r.cfg.thresholds.DocumentSparse,
		readyTimeout: timeouts.Ready,
		pollInterval: r.pollInterval,
	}, logger)
	if err != nil {
		return nil, err
	}

	pdfPath, err := r.output.resolve(ctx, page, req.OutputPath, logger)
	if err != nil {
		return nil, newRenderError(ctxKind(ctx, KindOutputPath), "resolve output", err)
	}

	s := &settler{
		page:     page,
		fitter:   r.newFitter(page),
		timeouts: timeouts,
		interval: r.pollInterval,
		logger:   logger,
	}
	report, err := s.run(ctx)
	if err != nil {
		return nil, newRenderError(KindTimeout, "settle", err)
	}
	warnings = append(warnings, report.Warnings()...)
	logger.Debug("layout settled", slog.String("state", report.Final().String()))

	metrics, err := measureOverflow(ctx, page)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newRenderError(KindTimeout, "measure", ctx.Err())
		}
		if !errors.Is(err, ErrContentNotFound) {
			err = fmt.Errorf("%w: %v", ErrContentNotFound, err)
		}
		logger.Warn("page metrics unavailable", slog.Any("error", err))
		metrics = nil
	}

	stats, err := measureContent(ctx, page)
	if err != nil {
		logger.Warn("content stats unavailable", slog.Any("error", err))
		stats = nil
	}

	pdf, err := page.PDF(ctx)
	if err != nil {
		return nil, newRenderError(ctxKind(ctx, KindCaptureFailed), "capture", fmt.Errorf("%w: %v", ErrPDFGeneration, err))
	}
	if err := writePDF(pdfPath, pdf); err != nil {
		return nil, newRenderError(KindOutputPath, "write", err)
	}

	if r.cfg.sidecar {
		path, err := writeDebugSidecar(debugSidecar{
			PDFPath:       pdfPath,
			PageID:        h.ID.String(),
			DebugInfo:     report.DebugInfo,
			LayoutDebug:   report.LayoutDebug,
			Metrics:       metrics,
			ContentStats:  stats,
			AutoFitStatus: report.AutoFit,
			Settle:        newSidecarSettle(report),
			Preflight:     &prepared.Preflight,
		})
		if err != nil {
			warnings = append(warnings, warnSidecarFailed)
			logger.Warn("debug sidecar not written", slog.Any("error", err))
		} else {
			logger.Debug("debug sidecar written", slog.String("path", path))
		}
	}

	out := assembleOutcome(assembly{
		pdfPath:    pdfPath,
		metrics:    metrics,
		stats:      stats,
		autoFit:    report.AutoFit,
		warnings:   warnings,
		thresholds: r.cfg.thresholds,
	})

	attrs := []any{slog.String("status", string(out.Status)), slog.String("pdf_path", pdfPath)}
	if metrics != nil {
		attrs = append(attrs, slog.Int("pages", metrics.CurrentPages), slog.Float64("fill_ratio", metrics.FillRatio))
	}
	logger.Info("render finished", attrs...)
	return out, nil
}

// ctxKind reports KindTimeout when ctx is done, else fallback.
func ctxKind(ctx context.Context, fallback ErrorKind) ErrorKind {
	if ctx.Err() != nil {
		return KindTimeout
	}
	return fallback
}
