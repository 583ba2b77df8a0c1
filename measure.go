package resumefit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// geometry is the raw layout read from the document in one evaluation.
type geometry struct {
	Found        bool     `json:"found"`
	Paged        bool     `json:"paged"`
	PageCount    int      `json:"pageCount"`
	Fill         *float64 `json:"fill"`
	ScrollHeight float64  `json:"scrollHeight"`
}

// measureOverflow reads the settled layout and derives PageMetrics.
// Returns ErrContentNotFound when the document has no content container.
func measureOverflow(ctx context.Context, p Page) (*PageMetrics, error) {
	var g geometry
	if err := p.Eval(ctx, jsMeasure, &g); err != nil {
		return nil, fmt.Errorf("measuring layout: %w", err)
	}
	if !g.Found {
		return nil, ErrContentNotFound
	}
	m := metricsFromGeometry(g)
	return &m, nil
}

// metricsFromGeometry applies the page arithmetic. Paginated documents are
// measured by page count; others by the content container's height, so their
// overflow is the real excess over one page rather than whole extra pages.
func metricsFromGeometry(g geometry) PageMetrics {
	var m PageMetrics
	if g.Paged {
		m.CurrentPages = g.PageCount
		m.TotalHeightPx = g.PageCount * PageHeightPx
		fill := 1.0
		if g.Fill != nil {
			fill = *g.Fill
		}
		m.FillRatio = round2(fill)
	} else {
		h := int(math.Round(g.ScrollHeight))
		m.TotalHeightPx = h
		m.CurrentPages = max(1, int(math.Ceil(float64(h)/PageHeightPx)))
		switch {
		case m.CurrentPages > 1:
			m.FillRatio = 1.0
		case h > 0 && h%PageHeightPx == 0:
			m.FillRatio = 1.0
		default:
			m.FillRatio = round2(float64(h%PageHeightPx) / PageHeightPx)
		}
	}
	m.OverflowPx = max(0, m.TotalHeightPx-PageHeightPx)
	m.OverflowAmount = overflowPercent(m.OverflowPx)
	return m
}

// overflowPercent expresses px as a rounded percentage of one page.
func overflowPercent(px int) int {
	return int(math.Round(float64(px) / PageHeightPx * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rawContentStats is the container text and tag counts read from the document.
type rawContentStats struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
	H1    int    `json:"h1"`
	H2    int    `json:"h2"`
	Li    int    `json:"li"`
	P     int    `json:"p"`
}

// measureContent counts what the document rendered. A missing container
// yields empty stats and no error.
func measureContent(ctx context.Context, p Page) (*ContentStats, error) {
	var raw rawContentStats
	if err := p.Eval(ctx, jsContentStats, &raw); err != nil {
		return nil, fmt.Errorf("reading content stats: %w", err)
	}
	if !raw.Found {
		return &ContentStats{}, nil
	}
	s := statsFromText(raw.Text)
	s.H1Count = raw.H1
	s.H2Count = raw.H2
	s.LiCount = raw.Li
	s.PCount = raw.P
	return &s, nil
}

// statsFromText counts whitespace-separated words and non-whitespace runes.
// The rune count stands in for length in scripts without word spacing.
func statsFromText(text string) ContentStats {
	var s ContentStats
	s.WordCount = len(strings.Fields(text))
	for _, r := range text {
		if !unicode.IsSpace(r) {
			s.CharCount++
		}
	}
	return s
}
