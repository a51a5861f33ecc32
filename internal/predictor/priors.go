package predictor

import (
	"strings"

	"github.com/yourusername/pitchside/internal/pattern"
)

// Base rates per bet line, used only when the engine reports no historical
// data at all (e.g. the very start of a competition). A pure lookup keeps the
// fallback path deterministic.
var linePriors = map[string]float64{
	"over_0_5_goals":      0.72,
	"over_1_5_goals":      0.65,
	"over_2_5_goals":      0.45,
	"over_3_5_goals":      0.20,
	"under_2_5_goals":     0.55,
	"under_3_5_goals":     0.68,
	"both_teams_to_score": 0.50,
	"over_8_5_corners":    0.58,
	"over_2_5_corners":    0.62,
	"over_3_5_corners":    0.48,
	"over_0_5_cards":      0.70,
	"over_1_5_cards":      0.61,
}

var categoryPriors = map[pattern.Category]float64{
	pattern.CategoryGoals:   0.50,
	pattern.CategoryCorners: 0.55,
	pattern.CategoryCards:   0.55,
	pattern.CategoryShots:   0.50,
	pattern.CategoryResult:  0.33,
}

// priorFor returns the deterministic category prior for a pattern. The
// longest matching line wins; unmatched patterns fall back to their category,
// then to neutral.
func priorFor(name string, category pattern.Category) float64 {
	bestLen := 0
	prior := 0.0
	for line, p := range linePriors {
		if !strings.Contains(name, line) {
			continue
		}
		if len(line) > bestLen || (len(line) == bestLen && p < prior) {
			bestLen = len(line)
			prior = p
		}
	}
	if bestLen > 0 {
		return prior
	}
	if p, ok := categoryPriors[category]; ok {
		return p
	}
	return 0.50
}
