package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	resumefit "github.com/alnah/go-resumefit"
)

const (
	defaultReportWidth = 80
	minReportWidth     = 40
	reportIndent       = 2
)

// reportStyles is bound to the output writer so color is only emitted when
// that writer is a terminal.
type reportStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		label:   r.NewStyle().Width(10).Foreground(lipgloss.Color("#888888")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
		warn:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#D29922")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
}

// printReport writes a human-readable summary of out.
func printReport(w io.Writer, out *resumefit.Outcome) {
	st := newReportStyles(w)
	width := reportWidth(w)
	wrap := func(s string, depth int) string {
		return indent.String(wordwrap.String(s, width-depth), uint(depth))
	}

	fmt.Fprintln(w, st.title.Render("resumefit render"))
	fmt.Fprintln(w)

	row := func(label, value string) {
		fmt.Fprintf(w, "%s%s %s\n", strings.Repeat(" ", reportIndent), st.label.Render(label), value)
	}

	row("Status", statusStyle(st, out.Status).Render(string(out.Status)))
	row("PDF", out.PDFPath)
	if m := out.PageMetrics; m != nil {
		pages := strconv.Itoa(m.CurrentPages)
		if m.OverflowAmount > 0 {
			pages += fmt.Sprintf(" (overflow %d%%)", m.OverflowAmount)
		}
		row("Pages", pages)
		row("Fill", fmt.Sprintf("%d%%", int(math.Round(m.FillRatio*100))))
	}
	if s := out.ContentStats; s != nil {
		row("Words", strconv.Itoa(s.WordCount))
	}
	if out.AutoFitStatus.Run {
		row("Auto-fit", "ran")
	} else {
		row("Auto-fit", "not run")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, wrap(out.Message, reportIndent))

	if out.Hint != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wrap(st.label.UnsetWidth().Render("Hint"), reportIndent))
		for _, part := range strings.Split(out.Hint, " | ") {
			fmt.Fprintln(w, wrap(part, 2*reportIndent))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, wrap(st.muted.Render("Next: "+out.NextAction), reportIndent))

	if len(out.Warnings) > 0 {
		fmt.Fprintln(w, wrap(st.warn.Render("Warnings: "+strings.Join(out.Warnings, ", ")), reportIndent))
	}
}

func statusStyle(st reportStyles, s resumefit.Status) lipgloss.Style {
	switch s {
	case resumefit.StatusSuccess:
		return st.success
	case resumefit.StatusOverflow:
		return st.warn
	default:
		return st.fail
	}
}

// reportWidth uses the terminal width when w is one, then $COLUMNS.
func reportWidth(w io.Writer) int {
	width := defaultReportWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	} else if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			width = n
		}
	}
	return max(width, minReportWidth)
}
