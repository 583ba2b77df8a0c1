package resumefit

// Notes:
// - fakePage scripts the rendering document by matching the exact in-page
//   scripts the renderer evaluates, so the full render loop runs without a
//   browser. Real-browser coverage lives in the integration-tagged tests.
// - fakeDoc state changes only through Eval, the same way the real document
//   changes only through scripts and messages.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// testTimeouts keeps waits short; the fakes answer immediately.
var testTimeouts = Timeouts{
	Render:  80 * time.Millisecond,
	Ready:   40 * time.Millisecond,
	Grace:   0,
	AutoFit: 80 * time.Millisecond,
}

// withEngine makes the renderer's own session use eng.
func withEngine(eng engine) Option {
	return func(r *Renderer) {
		r.newEngine = func() engine { return eng }
	}
}

// withPollInterval shortens polling in tests.
func withPollInterval(d time.Duration) Option {
	return func(r *Renderer) {
		r.pollInterval = d
	}
}

// ---------------------------------------------------------------------------
// fakeDoc / fakePage
// ---------------------------------------------------------------------------

type fakeDoc struct {
	ready          bool
	markdownLib    bool
	renderComplete bool
	contentSet     bool

	pagedPages   int
	fill         *float64
	scrollHeight float64
	noContainer  bool

	sparse        bool
	autoFitDone   bool
	fitToPages    int
	runningPolls  int
	triggered     int
	autoFitResult any

	text      string
	h1, h2    int
	li, p     int
	pdfOutput map[string]string
}

// readyDoc is a document that renders one page and needs no auto-fit.
func readyDoc() *fakeDoc {
	fill := 0.92
	return &fakeDoc{
		ready:          true,
		markdownLib:    true,
		renderComplete: true,
		pagedPages:     1,
		fill:           &fill,
		text:           "Jane Doe\nBackend engineer building payment systems",
		h1:             1,
		h2:             1,
		li:             2,
		p:              1,
	}
}

type fakePage struct {
	mu  sync.Mutex
	doc *fakeDoc

	navigateErr   error
	setContentErr error
	pdfErr        error
	closeErr      error

	navigated  string
	setContent string
	evals      []string
	pdfCalls   int
	closed     int
}

var _ Page = (*fakePage)(nil)

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigated = url
	return p.navigateErr
}

func (p *fakePage) Eval(ctx context.Context, js string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.evals = append(p.evals, js)
	v, err := p.eval(js)
	p.mu.Unlock()
	if err != nil || out == nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (p *fakePage) eval(js string) (any, error) {
	d := p.doc
	switch js {
	case jsRendererReady:
		return d.ready, nil
	case jsHasMarkdownLib:
		return d.markdownLib, nil
	case jsAck:
		return true, nil
	case jsPDFOutput:
		if d.pdfOutput == nil {
			return map[string]string{}, nil
		}
		return d.pdfOutput, nil
	case jsRenderComplete:
		return d.contentSet && d.renderComplete, nil
	case jsHTMLLength:
		return 4096, nil
	case jsDebugInfo:
		return map[string]any{
			"totalLength":       len(d.text),
			"previewText":       d.text,
			"pageCount":         d.pagedPages,
			"contentHtmlLength": 512,
		}, nil
	case jsLayoutDebug:
		return map[string]any{"viewport": map[string]int{"w": 794, "h": 1123}}, nil
	case jsAutoFitCompleted, jsAutoFitMarker:
		return d.autoFitDone, nil
	case jsPagedPageCount:
		return d.pagedPages, nil
	case jsContentScrollHeight:
		if d.noContainer {
			return -1, nil
		}
		return d.scrollHeight, nil
	case jsIsSparse:
		return d.sparse, nil
	case jsTriggerAutoFit:
		d.triggered++
		if d.fitToPages > 0 {
			d.pagedPages = d.fitToPages
		}
		d.autoFitDone = true
		d.autoFitResult = map[string]any{"success": true, "iterations": 3}
		return true, nil
	case jsIsAutoFitting:
		if d.runningPolls > 0 {
			d.runningPolls--
			return true, nil
		}
		return false, nil
	case jsAutoFitResult:
		return d.autoFitResult, nil
	case jsMeasure:
		if d.pagedPages > 0 {
			return map[string]any{"found": true, "paged": true, "pageCount": d.pagedPages, "fill": d.fill}, nil
		}
		if d.noContainer {
			return map[string]any{"found": false}, nil
		}
		return map[string]any{"found": true, "paged": false, "scrollHeight": d.scrollHeight}, nil
	case jsContentStats:
		if d.noContainer {
			return map[string]any{"found": false}, nil
		}
		return map[string]any{"found": true, "text": d.text, "h1": d.h1, "h2": d.h2, "li": d.li, "p": d.p}, nil
	}

	switch {
	case strings.HasPrefix(js, jsSetContentPrefix):
		p.setContent = js
		if p.setContentErr != nil {
			return nil, p.setContentErr
		}
		d.contentSet = true
		return true, nil
	case strings.HasPrefix(js, jsSparseThresholdPrefix):
		return true, nil
	}
	return nil, fmt.Errorf("unscripted eval: %.40q", js)
}

func (p *fakePage) PDF(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pdfCalls++
	if p.pdfErr != nil {
		return nil, p.pdfErr
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return p.closeErr
}

// evaluated reports whether js was evaluated at least once.
func (p *fakePage) evaluated(js string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.evals {
		if e == js {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// fakeEngine
// ---------------------------------------------------------------------------

var errFakeLaunch = errors.New("chrome not found")

type fakeEngine struct {
	mu sync.Mutex

	startErr  error
	pageErr   error
	startWait time.Duration

	newDoc    func() *fakeDoc
	configure func(*fakePage)

	starts int
	stops  int
	pages  []*fakePage
}

var _ engine = (*fakeEngine)(nil)

func newFakeEngine(newDoc func() *fakeDoc) *fakeEngine {
	return &fakeEngine{newDoc: newDoc}
}

func (e *fakeEngine) Start(ctx context.Context) error {
	if e.startWait > 0 {
		time.Sleep(e.startWait)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.startErr != nil {
		return e.startErr
	}
	e.starts++
	return nil
}

func (e *fakeEngine) NewPage(ctx context.Context) (Page, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pageErr != nil {
		return nil, e.pageErr
	}
	p := &fakePage{doc: e.newDoc()}
	if e.configure != nil {
		e.configure(p)
	}
	e.pages = append(e.pages, p)
	return p, nil
}

func (e *fakeEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stops++
	return nil
}

func (e *fakeEngine) lastPage() *fakePage {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pages) == 0 {
		return nil
	}
	return e.pages[len(e.pages)-1]
}

func (e *fakeEngine) startCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.starts
}
