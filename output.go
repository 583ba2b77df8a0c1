package resumefit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resumefit/internal/fileutil"
)

// DefaultOutputDirName is created in the working directory when no output
// directory is configured.
const DefaultOutputDirName = "generated_resume"

// documentOutput is the document's optional window.ResumeConfig.pdfOutput.
type documentOutput struct {
	Directory string `json:"directory"`
	Filename  string `json:"filename"`
}

// outputPolicy decides where a PDF is written.
type outputPolicy struct {
	dir      string // configured default directory; empty = DefaultOutputDir()
	filename string // configured default file name
}

// resolve returns the absolute PDF path for one render and creates its
// directory. Precedence: the request path (relative paths land under the
// output directory), then the document's pdfOutput, then configuration.
func (o outputPolicy) resolve(ctx context.Context, p Page, requested string, logger *slog.Logger) (string, error) {
	var path string
	if requested != "" {
		path = requested
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.defaultDir(), path)
		}
	} else {
		var doc documentOutput
		if err := p.Eval(ctx, jsPDFOutput, &doc); err != nil {
			logger.Debug("document output config unavailable", slog.Any("error", err))
		}
		dir := doc.Directory
		if dir == "" {
			dir = o.defaultDir()
		}
		name := doc.Filename
		if name == "" {
			name = o.filename
		}
		if name == "" {
			name = DefaultFilename
		}
		path = filepath.Join(dir, name)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutputPath, err)
	}
	if strings.HasSuffix(requested, string(filepath.Separator)) || fileutil.DirExists(abs) {
		return "", fmt.Errorf("%w: %s is a directory", ErrOutputPath, abs)
	}
	if err := fileutil.EnsureDir(filepath.Dir(abs)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutputPath, err)
	}
	return abs, nil
}

func (o outputPolicy) defaultDir() string {
	if o.dir != "" {
		return o.dir
	}
	return DefaultOutputDir()
}

// DefaultOutputDir picks the first usable of ./generated_resume (created if
// missing), the user's Downloads folder and the system temp directory.
func DefaultOutputDir() string {
	if cwd, err := os.Getwd(); err == nil {
		dir := filepath.Join(cwd, DefaultOutputDirName)
		if fileutil.EnsureDir(dir) == nil && fileutil.IsWritableDir(dir) {
			return dir
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range []string{"Downloads", "downloads"} {
			dir := filepath.Join(home, name)
			if fileutil.DirExists(dir) && fileutil.IsWritableDir(dir) {
				return dir
			}
		}
	}

	return os.TempDir()
}

// writePDF writes data to path with the package file permissions.
func writePDF(path string, data []byte) error {
	if err := os.WriteFile(path, data, fileutil.FilePermissions); err != nil { // #nosec G306 -- PDFs are meant to be shared
		return fmt.Errorf("%w: writing %s: %v", ErrOutputPath, path, err)
	}
	return nil
}
