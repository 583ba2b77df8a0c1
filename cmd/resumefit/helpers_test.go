package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	resumefit "github.com/alnah/go-resumefit"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake render service
// ---------------------------------------------------------------------------

type fakeService struct {
	mu      sync.Mutex
	out     *resumefit.Outcome
	err     error
	newErr  error
	opts    int
	calls   []resumefit.Request
	closed  int
	created int
}

func (f *fakeService) Render(_ context.Context, req resumefit.Request) (*resumefit.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.out, f.err
}

func (f *fakeService) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeService) lastCall() resumefit.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return resumefit.Request{}
	}
	return f.calls[len(f.calls)-1]
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(svc *fakeService, stdin string) testEnv {
	var stdout, stderr bytes.Buffer
	return testEnv{
		Environment: &Environment{
			Stdin:  strings.NewReader(stdin),
			Stdout: &stdout,
			Stderr: &stderr,
			NewRenderer: func(opts ...resumefit.Option) (RenderService, error) {
				svc.mu.Lock()
				defer svc.mu.Unlock()
				if svc.newErr != nil {
					return nil, svc.newErr
				}
				svc.created++
				svc.opts = len(opts)
				return svc, nil
			},
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

func successOutcome() *resumefit.Outcome {
	return &resumefit.Outcome{
		Status:       resumefit.StatusSuccess,
		PDFPath:      "/out/cv.pdf",
		PageMetrics:  &resumefit.PageMetrics{TotalHeightPx: 1120, CurrentPages: 1, FillRatio: 0.92},
		ContentStats: &resumefit.ContentStats{WordCount: 312},
		Hint:         "Content fits on one page.",
		Message:      "Resume successfully fitted to single page PDF.",
		Suggestion:   "The resume is ready.",
		NextAction:   "Deliver the PDF to user or continue refining content.",
	}
}

func overflowOutcome() *resumefit.Outcome {
	return &resumefit.Outcome{
		Status:      resumefit.StatusOverflow,
		PDFPath:     "/out/cv.pdf",
		PageMetrics: &resumefit.PageMetrics{TotalHeightPx: 2240, CurrentPages: 2, OverflowPx: 1120, OverflowAmount: 12, FillRatio: 1},
		Hint:        "Overflow: 12% | Level 2 reduction | Specific suggestions: shorten bullets",
		Message:     "Content overflows by 12%, rendered 2 pages.",
		NextAction:  "Reduce content by approximately 12% following the Level 2 strategy in hint, then call render_resume_pdf again.",
		Reason:      resumefit.ReasonContentExceedsOnePage,
		Warnings:    []string{"render_timeout"},
	}
}

// writeMarkdown writes a resume file into a temp dir and returns its path.
func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing markdown: %v", err)
	}
	return path
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resumefit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
