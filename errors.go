package resumefit

import (
	"errors"
	"fmt"

	"github.com/alnah/go-resumefit/internal/hints"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown     = errors.New("markdown content cannot be empty")
	ErrEngineUnavailable = errors.New("browser engine unavailable")
	ErrDocument          = errors.New("rendering document unavailable")
	ErrNavigation        = errors.New("failed to load rendering document")
	ErrInjection         = errors.New("failed to inject content")
	ErrOutputPath        = errors.New("invalid output path")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrContentNotFound   = errors.New("content container not found")
)

// Error codes reported to protocol callers.
const (
	CodeEmptyContent    = "EMPTY_CONTENT"
	CodeRenderFailed    = "RENDER_FAILED"
	CodeContentNotFound = "CONTENT_NOT_FOUND"
)

// ErrorKind classifies a fatal render failure at the point where it happened.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindEmptyInput
	KindEngineUnavailable
	KindNavigationFailed
	KindInjectionFailed
	KindOutputPath
	KindCaptureFailed
	KindTimeout
)

var kindNames = map[ErrorKind]string{
	KindInternal:          "internal",
	KindEmptyInput:        "empty_input",
	KindEngineUnavailable: "engine_unavailable",
	KindNavigationFailed:  "navigation_failed",
	KindInjectionFailed:   "injection_failed",
	KindOutputPath:        "output_path",
	KindCaptureFailed:     "capture_failed",
	KindTimeout:           "timeout",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RenderError is the error returned by Render for fatal failures.
// Suggestion and NextAction are filled from the kind, never from the message.
type RenderError struct {
	Kind       ErrorKind
	Op         string
	Err        error
	Suggestion string
	NextAction string
}

func (e *RenderError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }

// Code returns the protocol error code for the failure.
func (e *RenderError) Code() string {
	if e.Kind == KindEmptyInput {
		return CodeEmptyContent
	}
	return CodeRenderFailed
}

// newRenderError wraps err with kind and the matching remedy.
func newRenderError(kind ErrorKind, op string, err error) *RenderError {
	r := remedyFor(kind)
	return &RenderError{
		Kind:       kind,
		Op:         op,
		Err:        err,
		Suggestion: r.Suggestion,
		NextAction: r.NextAction,
	}
}

func remedyFor(kind ErrorKind) hints.Remedy {
	switch kind {
	case KindEmptyInput:
		return hints.ForEmptyContent()
	case KindEngineUnavailable:
		return hints.ForBrowserConnect()
	case KindNavigationFailed:
		return hints.ForNavigation()
	case KindInjectionFailed:
		return hints.ForInjection()
	case KindOutputPath:
		return hints.ForOutputPath()
	case KindCaptureFailed:
		return hints.ForCapture()
	case KindTimeout:
		return hints.ForTimeout()
	default:
		return hints.ForInternal()
	}
}

// KindOf returns the kind of a RenderError anywhere in err's chain,
// or KindInternal.
func KindOf(err error) ErrorKind {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindInternal
}
