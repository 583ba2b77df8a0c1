package pipeline

// Notes:
// - Tests RewriteRelativePaths through its public API; parse and render
//   error branches are not reachable with html.ParseFragment on string input.
// - Traversal protection is verified by observable behavior (path not
//   rewritten) rather than by calling isPathUnderDir with crafted inputs only.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - Rewriting rules
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := "/resumes"
	if runtime.GOOS == "windows" {
		sourceDir = `C:\resumes`
	}

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
	}{
		{"relative image", `<img src="./photo.png"/>`, sourceDir, []string{`src="file://`, `photo.png"`}},
		{"bare relative image", `<img src="img/photo.png"/>`, sourceDir, []string{`src="file://`}},
		{"relative link", `<a href="portfolio.pdf">p</a>`, sourceDir, []string{`href="file://`}},
		{"absolute path unchanged", `<img src="/abs/logo.png"/>`, sourceDir, []string{`src="/abs/logo.png"`}},
		{"https unchanged", `<img src="https://example.com/a.png"/>`, sourceDir, []string{`src="https://example.com/a.png"`}},
		{"mailto unchanged", `<a href="mailto:jane@example.com">mail</a>`, sourceDir, []string{`href="mailto:jane@example.com"`}},
		{"data uri unchanged", `<img src="data:image/png;base64,AAA"/>`, sourceDir, []string{`src="data:image/png;base64,AAA"`}},
		{"protocol relative unchanged", `<img src="//cdn.example.com/a.png"/>`, sourceDir, []string{`src="//cdn.example.com/a.png"`}},
		{"anchor unchanged", `<a href="#skills">s</a>`, sourceDir, []string{`href="#skills"`}},
		{"traversal not rewritten", `<img src="../../etc/passwd"/>`, sourceDir, []string{`src="../../etc/passwd"`}},
		{"empty source dir", `<img src="./photo.png"/>`, "", []string{`src="./photo.png"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.sourceDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, missing %q", got, want)
				}
			}
			if strings.Contains(got, "<html") || strings.Contains(got, "<body") {
				t.Errorf("fragment gained a document wrapper: %q", got)
			}
		})
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/base/path")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.FromSlash("/base/path/file.png"), true},
		{filepath.FromSlash("/base/path"), true},
		{filepath.FromSlash("/base/pathevil/file.png"), false},
		{filepath.FromSlash("/base/other.png"), false},
		{filepath.FromSlash("/base/path/..foo/x"), true},
	}

	for _, tt := range tests {
		if got := isPathUnderDir(tt.path, dir); got != tt.want {
			t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
		}
	}
}

func TestHasScheme(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"https://x":      true,
		"mailto:a@b":     true,
		"tel:+33":        true,
		"C:/x":           false,
		"photo.png":      false,
		"./a:b.png":      false,
		"weird scheme:x": false,
	}
	for in, want := range tests {
		if got := hasScheme(in); got != want {
			t.Errorf("hasScheme(%q) = %v, want %v", in, got, want)
		}
	}
}
