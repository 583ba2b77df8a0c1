package resumefit

import (
	"fmt"
	"math"
	"strings"
)

// Hint policy thresholds.
const (
	overflowLightPct    = 5
	overflowModeratePct = 15
	underfillLight      = 0.75
	underfillModerate   = 0.5
	fillTarget          = 0.90
	expandFillCutoff    = 0.7
	wordsTooMany        = 600
	wordsReduceTarget   = 500
	itemsTooMany        = 25
	wordsTooFew         = 300
	wordsExpandTarget   = 400
)

// GenerateHint turns measurements into an actionable recommendation using
// the default under-fill threshold. It is pure: equal inputs give equal text.
// stats may be nil, in which case content-specific suggestions are omitted.
func GenerateHint(m PageMetrics, stats *ContentStats) string {
	return GenerateHintWith(m, stats, DefaultHintUnderfill)
}

// GenerateHintWith is GenerateHint with an explicit under-fill threshold.
func GenerateHintWith(m PageMetrics, stats *ContentStats, underfill float64) string {
	var parts []string
	fill := m.FillRatio

	switch {
	case m.CurrentPages > 1:
		pct := m.OverflowAmount
		switch {
		case pct < overflowLightPct:
			parts = append(parts, fmt.Sprintf(
				"Content slightly overflows (about %d%%). Suggestion: Level 1 compression (merge short lists, condense skill items).", pct))
		case pct < overflowModeratePct:
			parts = append(parts, fmt.Sprintf(
				"Content moderately overflows (about %d%%). Suggestion: Level 2 reduction (tighten project descriptions, remove minor skills).", pct))
		default:
			parts = append(parts, fmt.Sprintf(
				"Content heavily overflows (more than %d%%). Suggestion: Level 3 major cut (cut about %d%% of the text, or remove unrelated jobs/projects).", pct, pct))
		}
	case fill < underfill:
		fillPct := int(math.Round(fill * 100))
		missingPct := int(math.Round((fillTarget - fill) * 100))
		switch {
		case fill > underfillLight:
			parts = append(parts, fmt.Sprintf(
				"Page looks slightly empty (fill ratio %d%%). Suggestion: Level 1 expansion (add 1-2 quantified achievements to existing items).", fillPct))
		case fill > underfillModerate:
			parts = append(parts, fmt.Sprintf(
				"Page content is light (fill ratio %d%%). Suggestion: Level 2 expansion (add a full work experience or a detailed project, about %d%% more content).", fillPct, missingPct))
		default:
			parts = append(parts, fmt.Sprintf(
				"Page is mostly empty (fill ratio %d%%). Suggestion: Level 3 substantial expansion (content covers about half a page; add core experience, roughly doubling the content for a more professional look).", fillPct))
		}
	default:
		parts = append(parts, "Content fits the single page well.")
	}

	if stats != nil {
		var specific []string
		if m.CurrentPages > 1 {
			if stats.WordCount > wordsTooMany {
				specific = append(specific, fmt.Sprintf(
					"word count %d is too high, reduce to under %d words", stats.WordCount, wordsReduceTarget))
			}
			if stats.LiCount > itemsTooMany {
				specific = append(specific, fmt.Sprintf(
					"too many list items (%d), merge similar items", stats.LiCount))
			}
		} else if fill < expandFillCutoff && stats.WordCount < wordsTooFew {
			specific = append(specific, fmt.Sprintf(
				"word count %d is low, expand to %d+ words", stats.WordCount, wordsExpandTarget))
		}
		if len(specific) > 0 {
			parts = append(parts, "Specific suggestions: "+strings.Join(specific, "; "))
		}
	}

	return strings.Join(parts, " | ")
}
