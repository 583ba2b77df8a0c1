package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
	"pkt.systems/version"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	version.SetDefaultModule("github.com/alnah/go-resumefit")

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "config":
		err = runConfig(rest, env)
	case "version", "--version":
		printVersion(env.Stdout)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		if looksLikeMarkdown(cmd) {
			fmt.Fprintf(env.Stderr, "Did you mean: resumefit render %s\n\n", cmd)
		}
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		reportError(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// looksLikeMarkdown reports whether s is a Markdown file name.
func looksLikeMarkdown(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".md" || ext == ".markdown"
}

// hasVerboseFlag scans raw arguments before any command parsing happens.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// versionString is reported to MCP clients and by the version command.
func versionString() string {
	if Version != "dev" {
		return Version
	}
	return fmt.Sprint(version.Current())
}

func printVersion(w io.Writer) {
	if Version != "dev" {
		fmt.Fprintf(w, "resumefit %s\n", Version)
		return
	}
	fmt.Fprintln(w, version.Module(), version.Current())
}
