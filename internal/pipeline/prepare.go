package pipeline

import (
	"context"
	"fmt"
)

// Prepared is the Go-side view of one resume.
type Prepared struct {
	Markdown  string    // caller's Markdown, sent to the document unmodified
	Fragment  string    // HTML fallback for documents without a Markdown library
	Preflight Preflight // statistics over Fragment
}

// Preparer runs the Go-side stages in order.
type Preparer struct {
	Preprocessor MarkdownPreprocessor
	Converter    HTMLConverter
}

// NewPreparer returns a Preparer with the default stages.
func NewPreparer() *Preparer {
	return &Preparer{
		Preprocessor: &ResumePreprocessor{},
		Converter:    NewGoldmarkConverter(),
	}
}

// Prepare converts a normalized copy of markdown to a fragment, rewrites
// relative paths under sourceDir (when set) and computes preflight
// statistics. The returned Markdown is the input as given.
func (p *Preparer) Prepare(ctx context.Context, markdown, sourceDir string) (*Prepared, error) {
	md := p.Preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := p.Converter.ToFragment(ctx, md)
	if err != nil {
		return nil, err
	}

	fragment, err = RewriteRelativePaths(fragment, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	stats, err := Stats(fragment)
	if err != nil {
		return nil, fmt.Errorf("computing preflight stats: %w", err)
	}

	return &Prepared{Markdown: markdown, Fragment: fragment, Preflight: stats}, nil
}
