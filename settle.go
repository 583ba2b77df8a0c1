package resumefit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// SettleState is a step of the layout settling state machine.
type SettleState int

const (
	StateAwaitingRender SettleState = iota
	StateRenderComplete
	StateAutoFitCheck
	StateAutoFitIdle
	StateAutoFitRunning
	StateSettled
	StateSettledWithWarning
)

var stateNames = [...]string{
	StateAwaitingRender:     "awaiting_render",
	StateRenderComplete:     "render_complete",
	StateAutoFitCheck:       "autofit_check",
	StateAutoFitIdle:        "autofit_idle",
	StateAutoFitRunning:     "autofit_running",
	StateSettled:            "settled",
	StateSettledWithWarning: "settled_with_warning",
}

func (s SettleState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s SettleState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// settleReport is what the settler observed on the way to a terminal state.
type settleReport struct {
	Trail           []SettleState
	RenderTimedOut  bool
	AutoFitTimedOut bool
	Triggered       bool
	AutoFit         AutoFitStatus
	DebugInfo       json.RawMessage
	LayoutDebug     json.RawMessage
	HTMLLength      int
}

// Final returns the terminal state.
func (r *settleReport) Final() SettleState {
	if len(r.Trail) == 0 {
		return StateAwaitingRender
	}
	return r.Trail[len(r.Trail)-1]
}

// Warnings lists the non-fatal timeouts hit while settling.
func (r *settleReport) Warnings() []string {
	var w []string
	if r.RenderTimedOut {
		w = append(w, warnRenderTimeout)
	}
	if r.AutoFitTimedOut {
		w = append(w, warnAutoFitTimeout)
	}
	return w
}

// settler waits for the document to finish rendering and, when warranted,
// hands control to the document's auto-fit pass and waits it out.
type settler struct {
	page     Page
	fitter   AutoFitter
	timeouts Timeouts
	interval time.Duration
	logger   *slog.Logger
}

// run drives the state machine. Timeouts are recorded, not returned; the only
// error is cancellation of ctx. A document that never marks itself rendered
// is measured as-is, without an auto-fit check.
func (s *settler) run(ctx context.Context) (*settleReport, error) {
	r := &settleReport{HTMLLength: -1}
	r.Trail = append(r.Trail, StateAwaitingRender)

	err := waitUntil(ctx, s.page, jsRenderComplete, s.timeouts.Render, s.interval)
	switch {
	case err == nil:
		r.Trail = append(r.Trail, StateRenderComplete)
		s.collectDebug(ctx, r)
	case errors.Is(err, errWaitTimeout):
		r.RenderTimedOut = true
		s.logger.Warn("render-complete marker not seen, measuring partial layout",
			slog.Duration("timeout", s.timeouts.Render))
		if err := s.page.Eval(ctx, jsHTMLLength, &r.HTMLLength); err != nil {
			s.logger.Debug("reading document length failed", slog.Any("error", err))
		} else {
			s.logger.Debug("document length at timeout", slog.Int("html_length", r.HTMLLength))
		}
		s.readResult(ctx, r)
		r.Trail = append(r.Trail, StateSettledWithWarning)
		return r, nil
	default:
		return nil, err
	}

	r.Trail = append(r.Trail, StateAutoFitCheck)
	if s.shouldTrigger(ctx) {
		if err := s.fitter.Trigger(ctx); err != nil {
			s.logger.Warn("auto-fit trigger failed", slog.Any("error", err))
		} else {
			r.Triggered = true
			s.logger.Debug("auto-fit triggered")
		}
	}

	if err := sleep(ctx, s.timeouts.Grace); err != nil {
		return nil, err
	}

	running, err := s.fitter.IsRunning(ctx)
	if err != nil {
		s.logger.Debug("auto-fit status unavailable", slog.Any("error", err))
	}
	if running {
		r.Trail = append(r.Trail, StateAutoFitRunning)
		err := poll(ctx, s.timeouts.AutoFit, s.interval, func(ctx context.Context) (bool, error) {
			busy, err := s.fitter.IsRunning(ctx)
			return !busy, err
		})
		switch {
		case err == nil:
			s.logger.Debug("auto-fit finished")
		case errors.Is(err, errWaitTimeout):
			r.AutoFitTimedOut = true
			s.logger.Warn("auto-fit did not finish, measuring current layout",
				slog.Duration("timeout", s.timeouts.AutoFit))
		default:
			return nil, err
		}
	} else {
		r.Trail = append(r.Trail, StateAutoFitIdle)
	}

	s.readResult(ctx, r)
	if r.AutoFitTimedOut {
		r.Trail = append(r.Trail, StateSettledWithWarning)
	} else {
		r.Trail = append(r.Trail, StateSettled)
	}
	return r, nil
}

// shouldTrigger decides whether to start an auto-fit pass: never twice per
// render, always on overflow, and on a single page only if the document
// itself reports it as sparse.
func (s *settler) shouldTrigger(ctx context.Context) bool {
	done, err := s.fitter.Completed(ctx)
	if err != nil {
		s.logger.Debug("auto-fit completion check failed", slog.Any("error", err))
		return false
	}
	if done {
		s.logger.Debug("auto-fit already ran, skipping")
		return false
	}

	pages, err := s.fitter.PageCount(ctx)
	if err != nil {
		s.logger.Debug("page count unavailable", slog.Any("error", err))
		return false
	}
	s.logger.Debug("auto-fit check", slog.Int("pages", pages))
	if pages > 1 {
		return true
	}
	if pages == 1 {
		sparse, err := s.fitter.IsSparse(ctx)
		if err != nil {
			s.logger.Debug("sparsity check failed", slog.Any("error", err))
			return false
		}
		return sparse
	}
	return false
}

func (s *settler) readResult(ctx context.Context, r *settleReport) {
	st, err := s.fitter.Result(ctx)
	if err != nil {
		s.logger.Debug("auto-fit result unavailable", slog.Any("error", err))
		return
	}
	r.AutoFit = st
}

// collectDebug records what the document shows right after rendering, for
// the debug sidecar. Failures only cost the sidecar some detail.
func (s *settler) collectDebug(ctx context.Context, r *settleReport) {
	var info struct {
		TotalLength       int    `json:"totalLength"`
		PreviewText       string `json:"previewText"`
		PageCount         int    `json:"pageCount"`
		ContentHTMLLength int    `json:"contentHtmlLength"`
	}
	var raw json.RawMessage
	if err := s.page.Eval(ctx, jsDebugInfo, &raw); err == nil {
		r.DebugInfo = raw
		if json.Unmarshal(raw, &info) == nil {
			s.logger.Debug("rendered content",
				slog.Int("text_length", info.TotalLength),
				slog.Int("page_count", info.PageCount),
				slog.Int("content_html_length", info.ContentHTMLLength))
			if strings.Contains(info.PreviewText, "Loading") {
				s.logger.Warn("document still shows its loading state")
			}
		}
	} else {
		s.logger.Debug("debug info unavailable", slog.Any("error", err))
	}

	var layout json.RawMessage
	if err := s.page.Eval(ctx, jsLayoutDebug, &layout); err == nil {
		r.LayoutDebug = layout
	} else {
		s.logger.Debug("layout debug unavailable", slog.Any("error", err))
	}
}
