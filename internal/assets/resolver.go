package assets

import "errors"

// Resolver combines custom and embedded loaders with fallback logic.
// When a custom directory is configured it is tried first; the embedded
// assets answer only for names the custom directory does not have.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadDocument loads a rendering document, custom directory first.
func (r *Resolver) LoadDocument(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) {
		return l.LoadDocument(name)
	})
}

// LoadStyle loads a CSS style, custom directory first.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) {
		return l.LoadStyle(name)
	})
}

// HasCustomLoader returns true if a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

func (r *Resolver) loadWithFallback(loadFn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Only "not found" falls through; validation and I/O errors surface.
	if !isNotFoundError(err) {
		return "", err
	}

	return loadFn(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrStyleNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
