// Package hints provides actionable remediation text for render failures.
//
// Two shapes are produced: Suggestion/NextAction pairs for the structured error
// envelope returned to agents, and "\n  hint: <text>" suffixes for CLI messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-resumefit/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// Remedy pairs what is wrong with what the caller should do next.
type Remedy struct {
	Suggestion string
	NextAction string
}

// ForEmptyContent is returned when no Markdown was supplied.
func ForEmptyContent() Remedy {
	return Remedy{
		Suggestion: "Provide resume content in Markdown format with sections like ## Experience, ## Education, ## Skills",
		NextAction: "Generate resume content first using the user's experience data, then call render_resume_pdf again",
	}
}

// ForBrowserConnect returns the remedy for a browser that could not be launched.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() Remedy {
	var steps []string

	if inCI() || IsInContainer() {
		if os.Getenv("ROD_NO_SANDBOX") != "1" {
			steps = append(steps, "set ROD_NO_SANDBOX=1 for Docker/CI")
		}
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		steps = append(steps, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	steps = append(steps, "run 'resumefit doctor' to check the environment")

	return Remedy{
		Suggestion: "Browser initialization failed. Ensure Chrome or Chromium can be launched on this host.",
		NextAction: strings.Join(steps, "; "),
	}
}

// ForNavigation is returned when the rendering document could not be loaded.
func ForNavigation() Remedy {
	return Remedy{
		Suggestion: "The rendering document could not be loaded. Check document.path in the config or remove it to use the built-in document.",
		NextAction: "Fix the document path and call render_resume_pdf again.",
	}
}

// ForInjection is returned when the content could not be pushed into the page.
func ForInjection() Remedy {
	return Remedy{
		Suggestion: "Check that the Markdown content is valid and properly formatted.",
		NextAction: "Review the Markdown syntax and try again.",
	}
}

// ForTimeout is returned when the whole call ran out of time.
func ForTimeout() Remedy {
	return Remedy{
		Suggestion: "The rendering took too long. Try with shorter content first.",
		NextAction: "Reduce content length and retry, or increase render.timeoutMs in the config.",
	}
}

// ForOutputPath is returned when the PDF destination cannot be created or written.
func ForOutputPath() Remedy {
	return Remedy{
		Suggestion: "File system error. Check the output path is valid and writable.",
		NextAction: "Verify the output directory exists and has write permissions.",
	}
}

// ForCapture is returned when the browser failed to print the page.
func ForCapture() Remedy {
	return Remedy{
		Suggestion: "PDF capture failed inside the browser.",
		NextAction: "Retry the call; if it keeps failing run 'resumefit doctor'.",
	}
}

// ForInternal is the fallback remedy.
func ForInternal() Remedy {
	return Remedy{
		Suggestion: "Check that the Markdown content is valid and properly formatted.",
		NextAction: "Review the Markdown syntax and try again.",
	}
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-resumefit/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-resumefit") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// Format renders a remedy as a CLI hint suffix.
func Format(r Remedy) string {
	return format(r.NextAction)
}

func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
