// Package assets provides the HTML rendering documents and CSS styles the
// resume is laid out in.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in document)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// A rendering document is an HTML page that honours the resume renderer
// contract: it raises window.isRendererReady, listens for ACK and SET_CONTENT
// messages, marks body.render-complete once the content is laid out, and
// exposes window.simpleViewer for the auto-fit pass. The built-in "resume"
// document does all of this without network access.
//
// # Directory Structure
//
// Custom assets are organized by type:
//
//	{basePath}/
//	├── documents/
//	│   └── {name}.html          # rendering documents
//	└── styles/
//	    └── {name}.css           # styles injected into the document head
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
