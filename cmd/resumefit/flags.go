package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags select the rendering document.
type documentFlags struct {
	path     string
	assetDir string
	name     string
	style    string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	document  documentFlags
	output    string
	timeout   string
	json      bool
	strict    bool
	noSidecar bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common   commonFlags
	document documentFlags
	maxPages int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addDocumentFlags adds rendering document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.path, "document", "", "standalone HTML rendering document")
	fs.StringVar(&f.assetDir, "asset-dir", "", "directory with documents/ and styles/ overrides")
	fs.StringVar(&f.name, "document-name", "", "rendering document name")
	fs.StringVar(&f.style, "style", "", "style name injected into the document")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "PDF output path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render-complete wait (e.g., 20s)")
	fs.BoolVar(&f.json, "json", false, "print the outcome as JSON")
	fs.BoolVar(&f.strict, "strict", false, "exit 5 when the content overflows")
	fs.BoolVar(&f.noSidecar, "no-debug-sidecar", false, "do not write the .debug.json file")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)

	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.IntVar(&f.maxPages, "max-pages", 0, "concurrent renders (0 = auto)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)

	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
