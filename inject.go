package resumefit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// injection carries what the content injector pushes into the document.
type injection struct {
	url          string
	markdown     string
	fallbackHTML string
	sparse       float64
	readyTimeout time.Duration
	pollInterval time.Duration
}

// Non-fatal conditions reported back to the caller.
const (
	warnRendererNotReady   = "renderer_not_ready"
	warnMarkdownLibMissing = "markdown_library_missing"
	warnRenderTimeout      = "render_timeout"
	warnAutoFitTimeout     = "autofit_timeout"
	warnSidecarFailed      = "debug_sidecar_failed"
)

// injectContent loads the rendering document and hands it the resume.
// Only navigation and the final dispatch are fatal; the readiness wait and
// library probe are logged and skipped past, and returned as warnings.
func injectContent(ctx context.Context, p Page, in injection, logger *slog.Logger) ([]string, error) {
	var warnings []string

	logger.Debug("navigating to rendering document", slog.String("url", in.url))
	if err := p.Navigate(ctx, in.url); err != nil {
		return nil, newRenderError(ctxKind(ctx, KindNavigationFailed), "navigate", fmt.Errorf("%w: %v", ErrNavigation, err))
	}

	if err := waitUntil(ctx, p, jsRendererReady, in.readyTimeout, in.pollInterval); err != nil {
		if ctx.Err() != nil {
			return nil, newRenderError(KindTimeout, "wait ready", ctx.Err())
		}
		warnings = append(warnings, warnRendererNotReady)
		logger.Warn("renderer readiness signal not seen, proceeding",
			slog.Duration("timeout", in.readyTimeout))
	}

	var hasLib bool
	if err := p.Eval(ctx, jsHasMarkdownLib, &hasLib); err != nil {
		logger.Warn("markdown library probe failed", slog.Any("error", err))
	} else if !hasLib {
		if in.fallbackHTML != "" {
			logger.Debug("markdown library not loaded, document will use server-side HTML")
		} else {
			warnings = append(warnings, warnMarkdownLibMissing)
			logger.Warn("markdown library not loaded, rendering may fail")
		}
	}

	if in.sparse > 0 {
		if err := p.Eval(ctx, sparseThresholdScript(in.sparse), nil); err != nil {
			logger.Warn("could not set document sparse threshold", slog.Any("error", err))
		}
	}

	if err := p.Eval(ctx, jsAck, nil); err != nil {
		logger.Warn("ACK handshake failed", slog.Any("error", err))
	}

	if err := p.Eval(ctx, setContentScript(in.markdown, in.fallbackHTML), nil); err != nil {
		return nil, newRenderError(ctxKind(ctx, KindInjectionFailed), "set content", fmt.Errorf("%w: %v", ErrInjection, err))
	}
	logger.Debug("content dispatched", slog.Int("markdown_bytes", len(in.markdown)))
	return warnings, nil
}
