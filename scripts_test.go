package resumefit

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEscapeTemplateLiteral - Template literal escaping
// ---------------------------------------------------------------------------

func TestEscapeTemplateLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "# Jane Doe", "# Jane Doe"},
		{"backtick", "use `go test`", "use \\`go test\\`"},
		{"interpolation", "cost ${price}", "cost \\${price}"},
		{"lone dollar", "$5 and {x}", "$5 and {x}"},
		{"backslash", `C:\Users\jane`, `C:\\Users\\jane`},
		{"escaped backtick", "\\`", "\\\\\\`"},
		{"newlines kept", "a\nb", "a\nb"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := escapeTemplateLiteral(tt.input); got != tt.want {
				t.Errorf("escapeTemplateLiteral(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetContentScript(t *testing.T) {
	t.Parallel()

	got := setContentScript("# `Jane`", "<h1>Jane</h1>")

	if !strings.HasPrefix(got, jsSetContentPrefix) {
		t.Errorf("script = %q, want prefix %q", got, jsSetContentPrefix)
	}
	if !strings.Contains(got, "markdown: `# \\`Jane\\``") {
		t.Errorf("script does not carry escaped markdown: %q", got)
	}
	if !strings.Contains(got, "html: `<h1>Jane</h1>`") {
		t.Errorf("script does not carry fallback HTML: %q", got)
	}
	if !strings.HasSuffix(got, "return true; }") {
		t.Errorf("script = %q, want boolean return", got)
	}
}

func TestSparseThresholdScript(t *testing.T) {
	t.Parallel()

	got := sparseThresholdScript(0.85)
	want := "() => { window.resumeFitSparseThreshold = 0.85; return true; }"
	if got != want {
		t.Errorf("sparseThresholdScript(0.85) = %q, want %q", got, want)
	}
}
