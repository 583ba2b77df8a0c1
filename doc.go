// Package resumefit renders a Markdown resume into a single-page A4 PDF and
// reports how well the content fits the page.
//
// # Quick Start
//
// Create a renderer, render markdown, and close when done:
//
//	r, err := resumefit.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	out, err := r.Render(ctx, resumefit.Request{
//	    Markdown:   "# Jane Doe\n\n## Experience\n\n- Built things",
//	    OutputPath: "/tmp/jane.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Status, out.Hint)
//
// # Render Loop
//
// Each call follows these stages:
//
//  1. Markdown preprocessing and a server-side HTML fallback (Goldmark)
//  2. Loading the rendering document and injecting the content
//  3. Waiting for the document to render, then for its auto-fit pass
//  4. Measuring page count and fill ratio
//  5. Capturing the PDF and assembling the outcome with a hint
//
// The document owns layout and the auto-fit pass. The renderer only decides
// when a pass is warranted, hands control over and waits with a bound.
//
// # Outcome
//
// Status is "success" when the content fits on one page and "overflow"
// otherwise. Hint tells the caller what to change, scaled to how far the
// content overflows or under-fills the page. When the document has no
// content container, Status is "error" with ErrorCode CONTENT_NOT_FOUND
// and the PDF is still written.
//
// Timeouts while waiting on the document are not errors. They are listed
// in Outcome.Warnings and the PDF reflects whatever was laid out.
//
// # Errors
//
// Fatal failures are returned as *RenderError. Its Kind says where the call
// failed and Suggestion/NextAction say what to do about it:
//
//	var re *resumefit.RenderError
//	if errors.As(err, &re) {
//	    fmt.Println(re.Code(), re.Suggestion)
//	}
//
// # Sessions
//
// A Renderer launches headless Chrome on first use and keeps it running
// until Close. Several renderers can share one browser with WithSession:
//
//	s := resumefit.NewSession(resumefit.SessionOptions{NoSandbox: true})
//	defer s.Shutdown()
//	r, err := resumefit.NewRenderer(resumefit.WithSession(s))
//
// # Environment
//
//   - ROD_BROWSER_BIN: Chrome binary to use instead of rod's download
//   - ROD_NO_SANDBOX=1 or CI=true: disable the Chrome sandbox
package resumefit
