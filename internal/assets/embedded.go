package assets

import (
	"embed"
	"fmt"
)

//go:embed documents/*.html
var documents embed.FS

//go:embed styles/*.css
var styles embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadDocument loads a built-in rendering document by name.
func (e *EmbeddedLoader) LoadDocument(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := documents.ReadFile("documents/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDocumentNotFound, name)
	}

	return string(content), nil
}

// LoadStyle loads a built-in CSS style by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
