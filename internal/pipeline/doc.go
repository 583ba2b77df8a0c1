// Package pipeline prepares resume Markdown on the Go side of the renderer.
//
// The stages are:
//   - Markdown preprocessing (BOM, line endings, ==highlight== syntax)
//   - Markdown to HTML fragment conversion via Goldmark (GFM, highlighting)
//   - Relative image and link rewriting against a source directory
//   - Preflight statistics over the fragment
//   - Style injection into a rendering document
//
// Layout, pagination and auto-fit happen in the browser. The fragment built
// here travels with the raw Markdown so a document without its own Markdown
// library still has something to show.
package pipeline
