package resumefit

import (
	"context"
	"errors"
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestMetricsFromGeometry - Page arithmetic
// ---------------------------------------------------------------------------

func TestMetricsFromGeometry(t *testing.T) {
	t.Parallel()

	fill := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		g    geometry
		want PageMetrics
	}{
		{
			name: "paged single page",
			g:    geometry{Found: true, Paged: true, PageCount: 1, Fill: fill(0.456)},
			want: PageMetrics{TotalHeightPx: 1120, CurrentPages: 1, FillRatio: 0.46},
		},
		{
			name: "paged overflow",
			g:    geometry{Found: true, Paged: true, PageCount: 3, Fill: fill(0.97)},
			want: PageMetrics{TotalHeightPx: 3360, CurrentPages: 3, OverflowPx: 2240, OverflowAmount: 200, FillRatio: 0.97},
		},
		{
			name: "paged without page box",
			g:    geometry{Found: true, Paged: true, PageCount: 1},
			want: PageMetrics{TotalHeightPx: 1120, CurrentPages: 1, FillRatio: 1},
		},
		{
			name: "degraded short content",
			g:    geometry{Found: true, ScrollHeight: 336},
			want: PageMetrics{TotalHeightPx: 336, CurrentPages: 1, FillRatio: 0.3},
		},
		{
			name: "degraded exact page",
			g:    geometry{Found: true, ScrollHeight: 1120},
			want: PageMetrics{TotalHeightPx: 1120, CurrentPages: 1, FillRatio: 1},
		},
		{
			name: "degraded overflow",
			g:    geometry{Found: true, ScrollHeight: 1176},
			want: PageMetrics{TotalHeightPx: 1176, CurrentPages: 2, OverflowPx: 56, OverflowAmount: 5, FillRatio: 1},
		},
		{
			name: "degraded overflow measured by excess height",
			g:    geometry{Found: true, ScrollHeight: 1500},
			want: PageMetrics{TotalHeightPx: 1500, CurrentPages: 2, OverflowPx: 380, OverflowAmount: 34, FillRatio: 1},
		},
		{
			name: "degraded empty container",
			g:    geometry{Found: true, ScrollHeight: 0},
			want: PageMetrics{TotalHeightPx: 0, CurrentPages: 1, FillRatio: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := metricsFromGeometry(tt.g); got != tt.want {
				t.Errorf("metricsFromGeometry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMetricsFromGeometry_OverflowFormula(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 20; n++ {
		m := metricsFromGeometry(geometry{Found: true, Paged: true, PageCount: n})
		want := int(math.Round(float64(max(0, n*1120-1120)) / 1120 * 100))
		if m.OverflowAmount != want {
			t.Errorf("pages=%d: OverflowAmount = %d, want %d", n, m.OverflowAmount, want)
		}
		if m.OverflowPx < 0 {
			t.Errorf("pages=%d: negative OverflowPx %d", n, m.OverflowPx)
		}
	}
}

// ---------------------------------------------------------------------------
// TestStatsFromText - Word and character counts
// ---------------------------------------------------------------------------

func TestStatsFromText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantWords int
		wantChars int
	}{
		{"empty", "", 0, 0},
		{"whitespace only", " \n\t ", 0, 0},
		{"english", "Senior  Go engineer\nat Acme", 5, 22},
		{"cjk counts runes", "高级 工程师", 2, 5},
		{"non-breaking space", "a\u00a0b", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := statsFromText(tt.text)
			if got.WordCount != tt.wantWords || got.CharCount != tt.wantChars {
				t.Errorf("statsFromText(%q) = %d words / %d chars, want %d / %d",
					tt.text, got.WordCount, got.CharCount, tt.wantWords, tt.wantChars)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMeasure - In-page reads
// ---------------------------------------------------------------------------

func TestMeasureOverflow_ContentNotFound(t *testing.T) {
	t.Parallel()

	p := &fakePage{doc: &fakeDoc{noContainer: true}}

	m, err := measureOverflow(context.Background(), p)
	if !errors.Is(err, ErrContentNotFound) {
		t.Errorf("measureOverflow() error = %v, want %v", err, ErrContentNotFound)
	}
	if m != nil {
		t.Errorf("measureOverflow() = %+v, want nil", m)
	}

	s, err := measureContent(context.Background(), p)
	if err != nil {
		t.Fatalf("measureContent() error = %v", err)
	}
	if s == nil || *s != (ContentStats{}) {
		t.Errorf("measureContent() = %+v, want empty stats", s)
	}
}

func TestMeasureContent(t *testing.T) {
	t.Parallel()

	p := &fakePage{doc: readyDoc()}

	s, err := measureContent(context.Background(), p)
	if err != nil {
		t.Fatalf("measureContent() error = %v", err)
	}
	want := ContentStats{WordCount: 7, CharCount: 44, H1Count: 1, H2Count: 1, LiCount: 2, PCount: 1}
	if *s != want {
		t.Errorf("measureContent() = %+v, want %+v", *s, want)
	}
}
