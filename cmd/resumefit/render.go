package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	resumefit "github.com/alnah/go-resumefit"
)

// runRender renders one Markdown file and reports the outcome.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeDocumentFlags(flags.document, cfg)
	if flags.noSidecar {
		disabled := false
		cfg.Output.DebugSidecar = &disabled
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	markdown, sourceDir, err := readMarkdown(positional, env.Stdin)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)
	opts := rendererOptions(cfg, logger)
	if timeout > 0 {
		opts = append(opts, resumefit.WithRenderTimeout(timeout))
	}

	r, err := env.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			logger.Debug("renderer close failed", slog.Any("error", cerr))
		}
	}()

	out, err := r.Render(ctx, resumefit.Request{
		Markdown:   markdown,
		OutputPath: flags.output,
		SourceDir:  sourceDir,
	})
	if err != nil {
		return err
	}

	if flags.json {
		data, err := out.JSON()
		if err != nil {
			return fmt.Errorf("encoding outcome: %w", err)
		}
		fmt.Fprintln(env.Stdout, string(data))
	} else if !flags.common.quiet {
		printReport(env.Stdout, out)
	}

	switch {
	case out.Status == resumefit.StatusError:
		return fmt.Errorf("%w: %s", resumefit.ErrContentNotFound, out.Message)
	case flags.strict && out.Status == resumefit.StatusOverflow:
		return fmt.Errorf("%w: %s", ErrOverflow, out.Message)
	}
	return nil
}

// readMarkdown reads the single positional argument, "-" meaning stdin.
// The source directory anchors relative image paths; it is empty for stdin.
func readMarkdown(args []string, stdin io.Reader) (markdown, sourceDir string, err error) {
	if len(args) == 0 {
		return "", "", ErrNoInput
	}
	if len(args) > 1 {
		return "", "", fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(args))
	}

	if args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
		}
		return string(data), "", nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	dir, err := filepath.Abs(filepath.Dir(args[0]))
	if err != nil {
		dir = filepath.Dir(args[0])
	}
	return string(data), dir, nil
}
