package resumefit

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/alnah/go-resumefit/internal/fileutil"
	"github.com/alnah/go-resumefit/internal/pipeline"
)

// SidecarSuffix replaces the PDF extension of the debug sidecar.
const SidecarSuffix = ".debug.json"

// Status is the terminal classification of a render.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusOverflow Status = "overflow"
	StatusError    Status = "error"
)

// ReasonContentExceedsOnePage explains an overflow status.
const ReasonContentExceedsOnePage = "content_exceeds_one_page"

// Outcome is the result of one render. Metrics are flattened into the JSON
// object and omitted when the content container could not be measured.
type Outcome struct {
	Status  Status `json:"status"`
	PDFPath string `json:"pdf_path"`

	*PageMetrics

	ContentStats  *ContentStats `json:"content_stats"`
	Hint          string        `json:"hint,omitempty"`
	AutoFitStatus AutoFitStatus `json:"auto_fit_status"`

	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
	NextAction string `json:"next_action"`
	Reason     string `json:"reason,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Fits reports whether the content fits on one page.
func (o *Outcome) Fits() bool {
	return o.Status == StatusSuccess
}

// JSON encodes the outcome with two-space indentation.
func (o *Outcome) JSON() ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// assembly gathers everything measured for one render.
type assembly struct {
	pdfPath    string
	metrics    *PageMetrics
	stats      *ContentStats
	autoFit    AutoFitStatus
	warnings   []string
	thresholds Thresholds
}

// assembleOutcome derives the status and narrative. Status depends only on
// the page count, never on which waits timed out.
func assembleOutcome(a assembly) *Outcome {
	o := &Outcome{
		PDFPath:       a.pdfPath,
		PageMetrics:   a.metrics,
		ContentStats:  a.stats,
		AutoFitStatus: a.autoFit,
		Warnings:      a.warnings,
	}

	m := a.metrics
	if m == nil {
		o.Status = StatusError
		o.ErrorCode = CodeContentNotFound
		o.Message = "The rendering document has no content container, so the page could not be measured."
		o.Suggestion = "Use a rendering document that renders into an element with id \"content\"."
		o.NextAction = "Check the document configuration, then call render_resume_pdf again."
		return o
	}

	o.Hint = GenerateHintWith(*m, a.stats, a.thresholds.HintUnderfill)

	if m.CurrentPages <= 1 {
		o.Status = StatusSuccess
		if m.FillRatio < a.thresholds.SparseSuccess {
			o.Message = fmt.Sprintf("Resume fitted to single page, but content is sparse (fill ratio: %d%%). "+
				"Consider adding more content for better visual balance.", int(math.Round(m.FillRatio*100)))
			o.Suggestion = "Add more achievements, skills, or project details to fill the page better."
			o.NextAction = "Review the hint field for specific expansion suggestions, or accept the current result."
		} else {
			o.Message = "Resume successfully fitted to single page PDF."
			o.Suggestion = "The resume is ready. You can save it or make further adjustments if needed."
			o.NextAction = "Deliver the PDF to user or continue refining content."
		}
		return o
	}

	level := overflowLevel(m.OverflowAmount)
	o.Status = StatusOverflow
	o.Reason = ReasonContentExceedsOnePage
	o.Message = fmt.Sprintf("Content overflows by %d%%, rendered %d pages.", m.OverflowAmount, m.CurrentPages)
	o.Suggestion = "Apply reduction strategy based on overflow amount. See hint field for specific recommendations."
	o.NextAction = fmt.Sprintf("Reduce content by approximately %d%% following the Level %d strategy in hint, "+
		"then call render_resume_pdf again.", m.OverflowAmount, level)
	return o
}

// overflowLevel maps an overflow percentage to the hint's severity tier.
func overflowLevel(pct int) int {
	switch {
	case pct < overflowLightPct:
		return 1
	case pct < overflowModeratePct:
		return 2
	default:
		return 3
	}
}

// debugSidecar is written next to the PDF to diagnose layout differences.
type debugSidecar struct {
	PDFPath       string              `json:"pdf_path"`
	PageID        string              `json:"page_id"`
	DebugInfo     json.RawMessage     `json:"debug_info"`
	LayoutDebug   json.RawMessage     `json:"layout_debug"`
	Metrics       *PageMetrics        `json:"metrics"`
	ContentStats  *ContentStats       `json:"content_stats"`
	AutoFitStatus AutoFitStatus       `json:"auto_fit_status"`
	Settle        sidecarSettle       `json:"settle"`
	Preflight     *pipeline.Preflight `json:"preflight"`
}

type sidecarSettle struct {
	Trail           []SettleState `json:"trail"`
	Triggered       bool          `json:"autofit_triggered"`
	RenderTimedOut  bool          `json:"render_timed_out"`
	AutoFitTimedOut bool          `json:"autofit_timed_out"`
	HTMLLength      int           `json:"html_length"`
}

func newSidecarSettle(r *settleReport) sidecarSettle {
	return sidecarSettle{
		Trail:           r.Trail,
		Triggered:       r.Triggered,
		RenderTimedOut:  r.RenderTimedOut,
		AutoFitTimedOut: r.AutoFitTimedOut,
		HTMLLength:      r.HTMLLength,
	}
}

// writeDebugSidecar writes sc as indented JSON beside the PDF and returns
// the sidecar path.
func writeDebugSidecar(sc debugSidecar) (string, error) {
	path := fileutil.SidecarPath(sc.PDFPath, SidecarSuffix)
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding debug sidecar: %w", err)
	}
	if err := os.WriteFile(path, data, fileutil.FilePermissions); err != nil { // #nosec G306 -- diagnostic file
		return "", fmt.Errorf("writing debug sidecar: %w", err)
	}
	return path, nil
}
