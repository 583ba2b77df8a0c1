package resumefit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Page is one isolated rendering context. Implementations are not safe for
// concurrent use; a page belongs to exactly one in-flight render.
type Page interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// Eval runs a function expression in the page and decodes its JSON
	// result into out. out may be nil when the result is not needed.
	Eval(ctx context.Context, js string, out any) error

	// PDF prints the page as an A4 PDF with zero margins and backgrounds.
	PDF(ctx context.Context) ([]byte, error)

	// Close disposes of the page and its browsing context.
	Close() error
}

// PageHandle is the scoped owner of a Page for one render call.
type PageHandle struct {
	ID   uuid.UUID
	page Page

	once    sync.Once
	release func()
	err     error
}

// Page returns the underlying page.
func (h *PageHandle) Page() Page { return h.page }

// Release closes the page and returns its slot to the session.
// Safe to call more than once; only the first call has an effect.
func (h *PageHandle) Release() error {
	h.once.Do(func() {
		h.err = h.page.Close()
		if h.release != nil {
			h.release()
		}
	})
	return h.err
}
