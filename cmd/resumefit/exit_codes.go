package main

import (
	"context"
	"errors"
	"os"

	resumefit "github.com/alnah/go-resumefit"
	"github.com/alnah/go-resumefit/internal/config"
)

// Exit codes for the resumefit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful render, or overflow without --strict
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, document or empty input
	ExitIO       = 3 // File not found, permission denied, unwritable output
	ExitBrowser  = 4 // Browser or in-page rendering errors
	ExitOverflow = 5 // --strict and the content does not fit on one page
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrOverflow) {
		return ExitOverflow
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrOutOfRange) ||
		errors.Is(err, resumefit.ErrEmptyMarkdown) ||
		errors.Is(err, resumefit.ErrDocument) {
		return ExitUsage
	}

	// Browser errors (exit 4)
	if errors.Is(err, resumefit.ErrEngineUnavailable) ||
		errors.Is(err, resumefit.ErrNavigation) ||
		errors.Is(err, resumefit.ErrInjection) ||
		errors.Is(err, resumefit.ErrPDFGeneration) ||
		errors.Is(err, resumefit.ErrContentNotFound) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, resumefit.ErrOutputPath) {
		return ExitIO
	}

	return ExitGeneral
}
