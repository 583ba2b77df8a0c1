package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged (no WithUnsafe needed) and become
// <mark> tags after HTML generation.
const (
	MarkStartPlaceholder = "\uE000" // Private Use Area start
	MarkEndPlaceholder   = "\uE001" // Private Use Area end
)

const byteOrderMark = "\uFEFF"

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==([^=\n]+?)==`)
	trailingSpaces     = regexp.MustCompile(`[ \t]+\n`)
	fenceOpen          = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// ResumePreprocessor normalizes Markdown before it is converted or sent to
// the rendering document.
type ResumePreprocessor struct{}

// PreprocessMarkdown applies all transformations in order.
// Whitespace inside fenced code blocks is left alone.
// A cancelled context returns the content unchanged.
func (p *ResumePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return outsideFences(content, func(prose string) string {
		prose = trimTrailingSpaces(prose)
		return multipleBlankLines.ReplaceAllString(prose, "\n\n")
	})
}

// outsideFences applies fn to every run of lines outside fenced code blocks.
// An unclosed fence runs to the end of the document.
func outsideFences(content string, fn func(string) string) string {
	var out, prose strings.Builder
	flush := func() {
		out.WriteString(fn(prose.String()))
		prose.Reset()
	}

	fence := ""
	for _, line := range strings.SplitAfter(content, "\n") {
		if fence == "" {
			if m := fenceOpen.FindStringSubmatch(line); m != nil {
				flush()
				fence = m[1]
				out.WriteString(line)
				continue
			}
			prose.WriteString(line)
			continue
		}
		out.WriteString(line)
		if closesFence(line, fence) {
			fence = ""
		}
	}
	flush()
	return out.String()
}

// closesFence reports whether line ends a block opened by fence: the same
// character, at least as long, nothing else on the line.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || !strings.HasPrefix(trimmed, fence) {
		return false
	}
	return strings.TrimSpace(strings.TrimLeft(trimmed, fence[:1])) == ""
}

// trimTrailingSpaces drops spaces before newlines, except the two-space
// Markdown hard break.
func trimTrailingSpaces(content string) string {
	return trailingSpaces.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasSuffix(m, "  \n") {
			return "  \n"
		}
		return "\n"
	})
}

// markHighlights transforms ==text== to placeholder markers.
func markHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// ConvertMarkPlaceholders turns placeholder markers into <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*ResumePreprocessor)(nil)
