package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Preflight summarizes a fragment before it reaches the browser. The browser
// has the final word on content statistics; these numbers go into the debug
// sidecar so the two can be compared.
type Preflight struct {
	Words  int `json:"words"`
	Chars  int `json:"chars"`
	H1     int `json:"h1"`
	H2     int `json:"h2"`
	Items  int `json:"li"`
	Paras  int `json:"p"`
	Images int `json:"img"`
	Links  int `json:"a"`
}

// Stats counts words, non-whitespace characters and the tags the hint
// policy cares about in an HTML fragment.
func Stats(fragment string) (Preflight, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return Preflight{}, err
	}

	var p Preflight
	var text strings.Builder
	walk(doc, func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteByte(' ')
		case html.ElementNode:
			switch n.Data {
			case "h1":
				p.H1++
			case "h2":
				p.H2++
			case "li":
				p.Items++
			case "p":
				p.Paras++
			case "img":
				p.Images++
			case "a":
				p.Links++
			}
		}
	})

	s := text.String()
	p.Words = len(strings.Fields(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			p.Chars++
		}
	}
	return p, nil
}
