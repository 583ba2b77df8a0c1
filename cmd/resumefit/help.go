package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumefit <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a Markdown resume to a one-page PDF")
	fmt.Fprintln(w, "  serve      Run the MCP server on stdio")
	fmt.Fprintln(w, "  doctor     Check the environment for rendering")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resumefit help <command>' for details on a specific command.")
}

func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --document <path>     Standalone HTML rendering document")
	fmt.Fprintln(w, "      --asset-dir <dir>     Directory with documents/ and styles/ overrides")
	fmt.Fprintln(w, "      --document-name <s>   Rendering document name (default: resume)")
	fmt.Fprintln(w, "      --style <s>           Style name (default: resume)")
	fmt.Fprintln(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumefit render <input.md | -> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a Markdown resume and report whether it fits on one page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render:")
	fmt.Fprintln(w, "  -o, --output <path>       PDF path (relative paths land in the output directory)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render-complete wait (e.g., 20s)")
	fmt.Fprintln(w, "      --json                Print the outcome as JSON")
	fmt.Fprintln(w, "      --strict              Exit 5 when the content overflows")
	fmt.Fprintln(w, "      --no-debug-sidecar    Do not write the .debug.json file")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 I/O, 4 browser, 5 overflow with --strict")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumefit serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Expose the render_resume_pdf tool over MCP on stdin/stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --max-pages <n>       Concurrent renders (0 = auto)")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	printCommonFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumefit config [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: resumefit doctor [--json] [--config <name>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox settings, the rendering document and writable directories.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resumefit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resumefit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
