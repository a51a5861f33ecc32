package predictor

import "strings"

// DefaultExpectedOdds returns advisory market odds per bet line. Keys are
// matched as substrings of the pattern name.
func DefaultExpectedOdds() map[string]float64 {
	return map[string]float64{
		"over_0_5_goals":      1.15,
		"over_1_5_goals":      1.60,
		"over_2_5_goals":      2.20,
		"over_3_5_goals":      4.50,
		"under_2_5_goals":     1.75,
		"under_3_5_goals":     1.40,
		"both_teams_to_score": 1.90,
		"over_8_5_corners":    1.85,
		"over_1_5_cards":      1.70,
		"over_2_5_corners":    1.65,
		"over_3_5_corners":    2.80,
	}
}

// expectedOddsFor resolves advisory odds for a pattern name. The longest
// matching line wins so lookup order is deterministic.
func (p *LeaguePredictor) expectedOddsFor(patternName string) float64 {
	bestLen := 0
	bestOdds := 0.0
	for line, odds := range p.settings.ExpectedOdds {
		if !strings.Contains(patternName, line) {
			continue
		}
		if len(line) > bestLen || (len(line) == bestLen && odds < bestOdds) {
			bestLen = len(line)
			bestOdds = odds
		}
	}
	if bestLen > 0 {
		return bestOdds
	}
	if p.settings.DefaultOdds > 0 {
		return p.settings.DefaultOdds
	}
	return 1.80
}

// expectedValue is (probability x odds) - 1.
func expectedValue(confidence, odds float64) float64 {
	return confidence*odds - 1.0
}
