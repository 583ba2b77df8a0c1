package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrDocumentNotFound indicates the requested rendering document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrInvalidDocument indicates a document file is unusable (not a regular
	// file, too large, or not HTML).
	ErrInvalidDocument = errors.New("invalid document")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
