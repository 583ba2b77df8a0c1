package resumefit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-resumefit/internal/process"
)

// A4 dimensions in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// Compile-time interface checks
var (
	_ engine = (*rodEngine)(nil)
	_ Page   = (*rodPage)(nil)
)

// rodEngine implements engine using go-rod.
// Rod downloads Chromium on first run if no browser is configured.
type rodEngine struct {
	bin       string
	noSandbox bool
	logger    *slog.Logger

	launcher   *launcher.Launcher
	browser    *rod.Browser
	controlURL string
}

func newRodEngine(bin string, noSandbox bool, logger *slog.Logger) *rodEngine {
	return &rodEngine{bin: bin, noSandbox: noSandbox, logger: logger}
}

// ResolveBrowserBin returns the Chrome binary to launch: the configured one,
// else ROD_BROWSER_BIN, else "" (rod-managed).
func ResolveBrowserBin(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv("ROD_BROWSER_BIN")
}

// ResolveNoSandbox reports whether Chrome must run without its sandbox.
// CI and containerized environments require it.
func ResolveNoSandbox(configured bool) bool {
	return configured ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

func (e *rodEngine) Start(ctx context.Context) error {
	l := launcher.New().Headless(true)
	if bin := ResolveBrowserBin(e.bin); bin != "" {
		l = l.Bin(bin)
	}
	if ResolveNoSandbox(e.noSandbox) {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = browser.Close()
		l.Kill()
		return err
	}

	e.launcher = l
	e.browser = browser
	e.controlURL = u
	e.logger.Debug("browser launched", slog.String("control_url", u), slog.Int("pid", l.PID()))
	return nil
}

// NewPage opens a blank page in its own incognito context so that no
// storage or script state leaks between renders.
func (e *rodEngine) NewPage(ctx context.Context) (Page, error) {
	incognito, err := e.browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	// Both inherit ctx from creation; Close must still work once ctx is done.
	p := &rodPage{
		page:    page.Context(context.Background()),
		context: incognito.Context(context.Background()),
		logger:  e.logger,
	}
	p.forwardConsole()
	return p, nil
}

// Stop closes the browser and kills the launcher's process tree.
func (e *rodEngine) Stop() error {
	var err error
	if e.browser != nil {
		err = e.browser.Close()
		e.browser = nil
	}
	if e.launcher != nil {
		// Chrome spawns helpers that outlive a plain kill.
		if pid := e.launcher.PID(); pid > 0 {
			_ = process.KillTree(pid)
		}
		e.launcher.Kill()
		e.launcher.Cleanup()
		e.launcher = nil
	}
	return err
}

// rodPage implements Page on a rod page.
type rodPage struct {
	page    *rod.Page
	context *rod.Browser
	logger  *slog.Logger
	stop    context.CancelFunc
}

// forwardConsole relays console messages from the document to the logger.
func (p *rodPage) forwardConsole() {
	ctx, cancel := context.WithCancel(context.Background())
	p.stop = cancel

	wait := p.page.Context(ctx).EachEvent(func(ev *proto.RuntimeConsoleAPICalled) {
		parts := make([]string, 0, len(ev.Args))
		for _, arg := range ev.Args {
			if arg.Value.Nil() {
				parts = append(parts, arg.Description)
				continue
			}
			parts = append(parts, arg.Value.String())
		}
		p.logger.Debug("console",
			slog.String("type", string(ev.Type)),
			slog.String("text", strings.Join(parts, " ")))
	})
	go wait()
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

func (p *rodPage) Eval(ctx context.Context, js string, out any) error {
	obj, err := p.page.Context(ctx).Eval(js)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw, err := obj.Value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding eval result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding eval result: %w", err)
	}
	return nil
}

func (p *rodPage) PDF(ctx context.Context) ([]byte, error) {
	reader, err := p.page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	})
	if err != nil {
		return nil, err
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return buf, nil
}

func (p *rodPage) Close() error {
	if p.stop != nil {
		p.stop()
	}
	err := p.page.Close()
	if cerr := p.context.Close(); err == nil {
		err = cerr
	}
	return err
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
