package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// looksLikeHTML reports whether content plausibly is an HTML document.
func looksLikeHTML(content string) bool {
	head := strings.ToLower(content)
	if len(head) > 1024 {
		head = head[:1024]
	}
	return strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html")
}
