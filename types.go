package resumefit

import (
	"encoding/json"
	"time"
)

// PageHeightPx is the height of one A4 page at the rendering resolution.
const PageHeightPx = 1120

// Default wait budgets.
const (
	DefaultRenderTimeout  = 15 * time.Second
	DefaultReadyTimeout   = 5 * time.Second
	DefaultAutoFitGrace   = 500 * time.Millisecond
	DefaultAutoFitTimeout = 15 * time.Second
)

// Default fill-ratio thresholds.
const (
	DefaultHintUnderfill  = 0.85
	DefaultSparseSuccess  = 0.80
	DefaultDocumentSparse = 0.85
)

// DefaultFilename is used when neither the caller nor the document names the PDF.
const DefaultFilename = "output_resume.pdf"

// Request is one render call. It is not modified by Render.
type Request struct {
	Markdown   string // Required
	OutputPath string // Optional; relative paths resolve under the output directory
	SourceDir  string // Optional; base for relative images in the Markdown

	// RenderTimeout overrides the render-complete wait for this call.
	RenderTimeout time.Duration
}

// Timeouts bounds every wait in the render loop.
type Timeouts struct {
	Render  time.Duration // body.render-complete
	Ready   time.Duration // window.isRendererReady
	Grace   time.Duration // delay before polling isAutoFitting
	AutoFit time.Duration // auto-fit completion
}

// DefaultTimeouts returns the stock wait budgets.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Render:  DefaultRenderTimeout,
		Ready:   DefaultReadyTimeout,
		Grace:   DefaultAutoFitGrace,
		AutoFit: DefaultAutoFitTimeout,
	}
}

// Thresholds gathers the fill-ratio cut-offs used on both sides of the
// document boundary.
type Thresholds struct {
	HintUnderfill  float64 // hint recommends expansion below this
	SparseSuccess  float64 // success outcome carries the sparse message below this
	DocumentSparse float64 // handed to the document's own sparsity check
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HintUnderfill:  DefaultHintUnderfill,
		SparseSuccess:  DefaultSparseSuccess,
		DocumentSparse: DefaultDocumentSparse,
	}
}

// PageMetrics describes the settled layout.
type PageMetrics struct {
	TotalHeightPx  int     `json:"total_height_px"`
	CurrentPages   int     `json:"current_pages"`
	OverflowPx     int     `json:"overflow_px"`
	OverflowAmount int     `json:"overflow_amount"` // overflow as a percentage of one page
	FillRatio      float64 `json:"fill_ratio"`
}

// ContentStats counts what the document actually rendered.
type ContentStats struct {
	WordCount int `json:"word_count"`
	CharCount int `json:"char_count"`
	H1Count   int `json:"h1_count"`
	H2Count   int `json:"h2_count"`
	LiCount   int `json:"li_count"`
	PCount    int `json:"p_count"`
}

// AutoFitStatus reports whether the document's auto-fit pass ran and what it
// returned. Result is passed through untouched.
type AutoFitStatus struct {
	Run    bool            `json:"run"`
	Result json.RawMessage `json:"result"`
}
