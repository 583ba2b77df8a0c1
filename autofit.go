package resumefit

import (
	"context"
	"encoding/json"
	"math"
)

// AutoFitter is the document's auto-fit capability. The settler only
// sequences calls against it; the fitting itself happens in the document.
type AutoFitter interface {
	// Completed reports whether a pass already finished for this render.
	Completed(ctx context.Context) (bool, error)
	// PageCount reports how many pages the content currently spans.
	PageCount(ctx context.Context) (int, error)
	// IsSparse asks the document whether a single page looks under-filled.
	IsSparse(ctx context.Context) (bool, error)
	// Trigger starts a pass without waiting for it.
	Trigger(ctx context.Context) error
	// IsRunning reports whether a pass is in progress.
	IsRunning(ctx context.Context) (bool, error)
	// Result returns whether a pass ran and its opaque outcome.
	Result(ctx context.Context) (AutoFitStatus, error)
}

var _ AutoFitter = (*documentAutoFitter)(nil)

// documentAutoFitter implements AutoFitter over window.simpleViewer.
type documentAutoFitter struct {
	page Page
}

func newDocumentAutoFitter(p Page) *documentAutoFitter {
	return &documentAutoFitter{page: p}
}

func (f *documentAutoFitter) Completed(ctx context.Context) (bool, error) {
	return f.evalBool(ctx, jsAutoFitCompleted)
}

// PageCount counts paginated pages. Documents without discrete pages are
// estimated from the content container height.
func (f *documentAutoFitter) PageCount(ctx context.Context) (int, error) {
	var n int
	if err := f.page.Eval(ctx, jsPagedPageCount, &n); err != nil {
		return 0, err
	}
	if n > 0 {
		return n, nil
	}

	var h float64
	if err := f.page.Eval(ctx, jsContentScrollHeight, &h); err != nil {
		return 0, err
	}
	if h <= 0 {
		return 0, nil
	}
	return int(math.Ceil(h / PageHeightPx)), nil
}

func (f *documentAutoFitter) IsSparse(ctx context.Context) (bool, error) {
	return f.evalBool(ctx, jsIsSparse)
}

func (f *documentAutoFitter) Trigger(ctx context.Context) error {
	return f.page.Eval(ctx, jsTriggerAutoFit, nil)
}

func (f *documentAutoFitter) IsRunning(ctx context.Context) (bool, error) {
	return f.evalBool(ctx, jsIsAutoFitting)
}

func (f *documentAutoFitter) Result(ctx context.Context) (AutoFitStatus, error) {
	var st AutoFitStatus
	var raw json.RawMessage
	if err := f.page.Eval(ctx, jsAutoFitResult, &raw); err != nil {
		return st, err
	}
	if len(raw) > 0 && string(raw) != "null" {
		st.Result = raw
	}
	ran, err := f.evalBool(ctx, jsAutoFitMarker)
	if err != nil {
		return st, err
	}
	st.Run = ran
	return st, nil
}

func (f *documentAutoFitter) evalBool(ctx context.Context, js string) (bool, error) {
	var v bool
	err := f.page.Eval(ctx, js, &v)
	return v, err
}
