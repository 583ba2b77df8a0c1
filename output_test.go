package resumefit

// Notes:
// - DefaultOutputDir is exercised only for its invariant (it returns a
//   writable directory). Forcing each fallback would require changing the
//   working directory and HOME of the test process.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-resumefit/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestOutputPolicy_Resolve - PDF path precedence
// ---------------------------------------------------------------------------

func TestOutputPolicy_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested string
		docOutput map[string]string
		filename  string
		want      func(dir string) string
	}{
		{
			name:      "absolute request wins",
			requested: "abs/cv.pdf",
			docOutput: map[string]string{"directory": "/ignored", "filename": "ignored.pdf"},
			want:      func(dir string) string { return filepath.Join(dir, "abs", "cv.pdf") },
		},
		{
			name:      "relative request lands under output dir",
			requested: filepath.Join("jobs", "acme.pdf"),
			want:      func(dir string) string { return filepath.Join(dir, "out", "jobs", "acme.pdf") },
		},
		{
			name:      "document output config",
			docOutput: map[string]string{"directory": "doc", "filename": "doc.pdf"},
			want:      func(dir string) string { return filepath.Join(dir, "doc", "doc.pdf") },
		},
		{
			name:      "document filename only",
			docOutput: map[string]string{"filename": "named.pdf"},
			want:      func(dir string) string { return filepath.Join(dir, "out", "named.pdf") },
		},
		{
			name:     "configured filename",
			filename: "mine.pdf",
			want:     func(dir string) string { return filepath.Join(dir, "out", "mine.pdf") },
		},
		{
			name: "default filename",
			want: func(dir string) string { return filepath.Join(dir, "out", DefaultFilename) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			requested := tt.requested
			if tt.name == "absolute request wins" {
				requested = filepath.Join(dir, tt.requested)
			}
			doc := readyDoc()
			if tt.docOutput != nil {
				doc.pdfOutput = map[string]string{}
				for k, v := range tt.docOutput {
					if k == "directory" && !filepath.IsAbs(v) {
						v = filepath.Join(dir, v)
					}
					doc.pdfOutput[k] = v
				}
			}
			p := &fakePage{doc: doc}
			policy := outputPolicy{dir: filepath.Join(dir, "out"), filename: tt.filename}

			got, err := policy.resolve(context.Background(), p, requested, discardLogger())
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if want := tt.want(dir); got != want {
				t.Errorf("resolve() = %q, want %q", got, want)
			}
			if !fileutil.DirExists(filepath.Dir(got)) {
				t.Errorf("parent of %q was not created", got)
			}
		})
	}
}

func TestOutputPolicy_ResolveDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := filepath.Join(dir, "existing")
	if err := os.Mkdir(existing, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tests := []struct {
		name      string
		requested string
	}{
		{"existing directory", existing},
		{"trailing separator", filepath.Join(dir, "new") + string(filepath.Separator)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy := outputPolicy{dir: dir}
			_, err := policy.resolve(context.Background(), &fakePage{doc: readyDoc()}, tt.requested, discardLogger())
			if !errors.Is(err, ErrOutputPath) {
				t.Errorf("resolve(%q) error = %v, want %v", tt.requested, err, ErrOutputPath)
			}
		})
	}
}

func TestOutputPolicy_ResolveUnwritableParent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	policy := outputPolicy{dir: dir}
	_, err := policy.resolve(context.Background(), &fakePage{doc: readyDoc()}, filepath.Join(blocker, "cv.pdf"), discardLogger())
	if !errors.Is(err, ErrOutputPath) {
		t.Errorf("resolve() error = %v, want %v", err, ErrOutputPath)
	}
}

func TestDefaultOutputDir(t *testing.T) {
	t.Parallel()

	dir := DefaultOutputDir()
	if dir == "" {
		t.Fatal("DefaultOutputDir() returned empty path")
	}
	if !fileutil.IsWritableDir(dir) {
		t.Errorf("DefaultOutputDir() = %q is not writable", dir)
	}
}

func TestWritePDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cv.pdf")
	if err := writePDF(path, []byte("%PDF-1.7")); err != nil {
		t.Fatalf("writePDF() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.7" {
		t.Errorf("file = %q, %v", data, err)
	}

	err = writePDF(filepath.Join(t.TempDir(), "missing", "cv.pdf"), nil)
	if !errors.Is(err, ErrOutputPath) {
		t.Errorf("writePDF() error = %v, want %v", err, ErrOutputPath)
	}
}
