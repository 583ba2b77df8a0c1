package resumefit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Page concurrency limits.
const (
	// MinConcurrentPages ensures at least one render can proceed.
	MinConcurrentPages = 1

	// MaxConcurrentPages caps open pages to bound Chrome memory.
	MaxConcurrentPages = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// engine is the browser-automation surface a Session drives.
type engine interface {
	Start(ctx context.Context) error
	NewPage(ctx context.Context) (Page, error)
	Stop() error
}

// SessionOptions configures a Session.
type SessionOptions struct {
	BrowserBin string       // Empty = ROD_BROWSER_BIN or rod-managed Chromium
	NoSandbox  bool         // Also enabled by CI=true, ROD_NO_SANDBOX=1 or ROD_BROWSER_BIN
	MaxPages   int          // 0 = ResolveMaxPages(0)
	Logger     *slog.Logger // nil = discard
}

// SessionStats is a snapshot of a session's resource accounting.
type SessionStats struct {
	Running  bool
	Starts   int64
	Opened   int64
	Released int64
}

// Session owns at most one browser instance and hands out isolated pages.
// The instance is started on first use and reused until Shutdown.
type Session struct {
	newEngine func() engine
	logger    *slog.Logger
	slots     chan struct{}

	mu  sync.Mutex
	eng engine

	starts   atomic.Int64
	opened   atomic.Int64
	released atomic.Int64
}

// NewSession creates a session backed by headless Chrome through go-rod.
// No browser is launched until EnsureStarted or NewPage is called.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	return newSession(func() engine {
		return newRodEngine(opts.BrowserBin, opts.NoSandbox, logger)
	}, opts.MaxPages, logger)
}

func newSession(factory func() engine, maxPages int, logger *slog.Logger) *Session {
	return &Session{
		newEngine: factory,
		logger:    logger,
		slots:     make(chan struct{}, ResolveMaxPages(maxPages)),
	}
}

// EnsureStarted launches the browser if it is not already running.
// Concurrent callers wait for the first start to finish.
func (s *Session) EnsureStarted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureStartedLocked(ctx)
}

func (s *Session) ensureStartedLocked(ctx context.Context) error {
	if s.eng != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	eng := s.newEngine()
	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	s.eng = eng
	s.starts.Add(1)
	s.logger.Debug("browser started")
	return nil
}

// NewPage starts the session if needed and opens an isolated page.
// Blocks while MaxPages pages are already open.
func (s *Session) NewPage(ctx context.Context) (*PageHandle, error) {
	s.mu.Lock()
	err := s.ensureStartedLocked(ctx)
	eng := s.eng
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p, err := eng.NewPage(ctx)
	if err != nil {
		<-s.slots
		return nil, fmt.Errorf("%w: opening page: %v", ErrEngineUnavailable, err)
	}

	s.opened.Add(1)
	return &PageHandle{
		ID:   uuid.New(),
		page: p,
		release: func() {
			<-s.slots
			s.released.Add(1)
		},
	}, nil
}

// Shutdown stops the browser. Safe to call when never started.
// The session may be started again afterwards.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eng == nil {
		return nil
	}
	err := s.eng.Stop()
	s.eng = nil
	s.logger.Debug("browser stopped")
	return err
}

// Stats returns the current resource accounting.
func (s *Session) Stats() SessionStats {
	s.mu.Lock()
	running := s.eng != nil
	s.mu.Unlock()

	return SessionStats{
		Running:  running,
		Starts:   s.starts.Load(),
		Opened:   s.opened.Load(),
		Released: s.released.Load(),
	}
}

// ResolveMaxPages determines how many pages may be open at once.
// Priority: explicit value > GOMAXPROCS-based calculation.
func ResolveMaxPages(n int) int {
	if n > 0 {
		return n
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n = runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinConcurrentPages {
		return MinConcurrentPages
	}
	if n > MaxConcurrentPages {
		return MaxConcurrentPages
	}
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
