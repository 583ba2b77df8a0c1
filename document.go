package resumefit

import (
	"fmt"
	"sync"

	"github.com/alnah/go-resumefit/internal/assets"
	"github.com/alnah/go-resumefit/internal/fileutil"
	"github.com/alnah/go-resumefit/internal/pipeline"
)

// document is the rendering document a Renderer navigates to.
// A standalone document on disk is used in place so its relative scripts
// and fonts resolve; composed documents are written to a temp file once.
type document struct {
	path string // standalone document, navigated to directly
	html string // composed document, materialized on first use

	once    sync.Once
	url     string
	err     error
	cleanup func()
}

// documentSource selects where the rendering document comes from.
type documentSource struct {
	path     string
	assetDir string
	name     string
	style    string
}

// loadDocument resolves src into a document. Standalone documents are
// validated but not styled; named documents get the named style injected.
func loadDocument(src documentSource) (*document, error) {
	if src.path != "" {
		if _, err := assets.LoadDocumentFile(src.path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocument, err)
		}
		return &document{path: src.path}, nil
	}

	resolver, err := assets.NewResolver(src.assetDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocument, err)
	}

	html, err := resolver.LoadDocument(src.name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocument, err)
	}
	if src.style != "" {
		css, err := resolver.LoadStyle(src.style)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocument, err)
		}
		html = pipeline.InjectStyle(html, css)
	}
	return &document{html: html}, nil
}

// URL returns the file:// URL of the document, writing it out on first call.
func (d *document) URL() (string, error) {
	d.once.Do(func() {
		if d.path != "" {
			d.url, d.err = fileutil.FileURL(d.path)
			return
		}
		path, cleanup, err := fileutil.WriteTempFile(d.html, "html")
		if err != nil {
			d.err = fmt.Errorf("%w: %v", ErrDocument, err)
			return
		}
		d.cleanup = cleanup
		d.url, d.err = fileutil.FileURL(path)
	})
	return d.url, d.err
}

// Close removes the materialized document, if any. Later URL calls fail.
func (d *document) Close() {
	d.once.Do(func() {
		d.err = fmt.Errorf("%w: renderer closed", ErrDocument)
	})
	if d.cleanup != nil {
		d.cleanup()
	}
}
