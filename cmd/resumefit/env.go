package main

import (
	"context"
	"io"
	"os"

	resumefit "github.com/alnah/go-resumefit"
)

// RenderService is what the commands need from a renderer.
type RenderService interface {
	Render(ctx context.Context, req resumefit.Request) (*resumefit.Outcome, error)
	Close() error
}

// Compile-time interface implementation check.
var _ RenderService = (*resumefit.Renderer)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	NewRenderer func(opts ...resumefit.Option) (RenderService, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewRenderer: newRenderer,
	}
}

func newRenderer(opts ...resumefit.Option) (RenderService, error) {
	r, err := resumefit.NewRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r, nil
}
