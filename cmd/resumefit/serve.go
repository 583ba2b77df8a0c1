package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	resumefit "github.com/alnah/go-resumefit"
	"github.com/alnah/go-resumefit/internal/mcpserver"
)

// runServe runs the MCP server on stdin/stdout until the client disconnects
// or a signal arrives. Logs go to stderr; stdout carries protocol traffic only.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeDocumentFlags(flags.document, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)
	opts := rendererOptions(cfg, logger)
	if n := resolveMaxPages(flags.maxPages, envCfg); n > 0 {
		opts = append(opts, resumefit.WithMaxPages(n))
	}
	if envCfg.Timeout > 0 {
		opts = append(opts, resumefit.WithRenderTimeout(envCfg.Timeout))
	}

	r, err := env.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			logger.Warn("renderer close failed", slog.Any("error", cerr))
		}
	}()

	return mcpserver.New(r, versionString(), logger).Serve(ctx, env.Stdin, env.Stdout)
}
