package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-resumefit/internal/fileutil"
)

// RewriteRelativePaths converts relative img[src] and a[href] values in an
// HTML fragment to absolute file:// URLs under sourceDir.
// If sourceDir is empty, returns the fragment unchanged.
//
// Left alone: URLs with a scheme, protocol-relative URLs, anchors, absolute
// paths, and anything that would resolve outside sourceDir.
func RewriteRelativePaths(fragment, sourceDir string) (string, error) {
	if sourceDir == "" {
		return fragment, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "img":
			rewriteAttr(n, "src", absSourceDir)
		case "a":
			rewriteAttr(n, "href", absSourceDir)
		}
	})

	return renderFragment(doc)
}

func rewriteAttr(n *html.Node, key, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}

		absPath := filepath.Join(sourceDir, attr.Val)
		if !isPathUnderDir(absPath, sourceDir) {
			continue
		}

		u, err := fileutil.FileURL(absPath)
		if err != nil {
			continue
		}
		n.Attr[i].Val = u
	}
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	switch {
	case path == "",
		strings.HasPrefix(path, "#"),
		strings.HasPrefix(path, "//"),
		hasScheme(path),
		filepath.IsAbs(path),
		strings.HasPrefix(path, "/"):
		return false
	}
	return true
}

// hasScheme reports whether path starts with a URL scheme such as
// "https:", "mailto:" or "data:". Single letters are drive names, not schemes.
func hasScheme(path string) bool {
	i := strings.IndexByte(path, ':')
	if i < 2 {
		return false
	}
	for _, r := range path[:i] {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlpha && !strings.ContainsRune("0123456789+-.", r) {
			return false
		}
	}
	return true
}

// isPathUnderDir checks if absPath is dir or inside it.
func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(absPath))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
