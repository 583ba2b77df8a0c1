package pipeline

import "strings"

// InjectStyle inserts css as a <style> block into an HTML document.
// Tries </head> first, then just after <body ...>, then prepends.
// An empty css returns the document unchanged.
func InjectStyle(document, css string) string {
	if css == "" {
		return document
	}

	block := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(document)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return document[:idx] + block + document[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(document[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return document[:pos] + block + document[pos:]
		}
	}

	return block + document
}

// sanitizeCSS escapes "</" so the CSS cannot close its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
