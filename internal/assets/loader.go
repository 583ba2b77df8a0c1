package assets

// Built-in asset names.
const (
	DefaultDocumentName = "resume"
	DefaultStyleName    = "resume"
)

// MaxDocumentSize caps document files read from disk (2 MiB).
const MaxDocumentSize = 2 * 1024 * 1024

// Loader defines the contract for loading rendering documents and styles.
type Loader interface {
	// LoadDocument loads an HTML rendering document by name (without .html).
	// Returns ErrDocumentNotFound if the document doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadDocument(name string) (string, error)

	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
