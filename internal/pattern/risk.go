package pattern

// Risk penalties encode that different bet categories carry different
// empirical variance at equal raw hit-rate. The table is curated from
// multi-season variance analysis; patterns without an exact entry fall back
// to a category-level default, then to DefaultRiskPenalty.
var riskPenalties = map[string]float64{
	// Goal patterns. High variance, one moment can change everything.
	"over_3_5_goals":        0.10,
	"total_over_3_5_goals":  0.10,
	"over_2_5_goals":        0.06,
	"total_over_2_5_goals":  0.06,
	"under_2_5_goals":       0.05,
	"total_under_2_5_goals": 0.05,
	"over_1_5_goals":        0.04,
	"total_over_1_5_goals":  0.04,
	"under_1_5_goals":       0.05,
	"over_0_5_goals":        0.02,
	"total_over_0_5_goals":  0.02,
	"total_under_3_5_goals": 0.04,

	"home_over_2_5_goals":  0.07,
	"home_over_1_5_goals":  0.05,
	"home_over_0_5_goals":  0.02,
	"home_under_1_5_goals": 0.06,
	"away_over_2_5_goals":  0.08,
	"away_over_1_5_goals":  0.06,
	"away_over_0_5_goals":  0.03,
	"away_under_1_5_goals": 0.05,

	"both_teams_to_score": 0.06,

	// Corner patterns. More consistent than goals.
	"over_11_5_corners":       0.04,
	"over_10_5_corners":       0.04,
	"total_over_10_5_corners": 0.04,
	"over_9_5_corners":        0.03,
	"total_over_9_5_corners":  0.03,
	"over_8_5_corners":        0.03,
	"total_over_8_5_corners":  0.03,
	"over_7_5_corners":        0.02,
	"total_over_7_5_corners":  0.02,
	"total_under_7_5_corners": 0.03,
	"over_2_5_corners":        0.02,
	"over_0_5_corners":        0.01,

	"home_over_5_5_corners": 0.04,
	"home_over_4_5_corners": 0.03,
	"home_over_3_5_corners": 0.03,
	"home_over_2_5_corners": 0.02,
	"home_over_1_5_corners": 0.02,
	"home_over_0_5_corners": 0.01,
	"away_over_5_5_corners": 0.05,
	"away_over_4_5_corners": 0.04,
	"away_over_3_5_corners": 0.03,
	"away_over_2_5_corners": 0.02,
	"away_over_1_5_corners": 0.02,
	"away_over_0_5_corners": 0.01,

	// Card patterns. Referee and match intensity dependent.
	"over_5_5_cards":       0.06,
	"total_over_5_5_cards": 0.06,
	"over_4_5_cards":       0.05,
	"total_over_4_5_cards": 0.05,
	"over_3_5_cards":       0.04,
	"total_over_3_5_cards": 0.04,
	"over_2_5_cards":       0.04,
	"total_over_2_5_cards": 0.04,
	"over_1_5_cards":       0.03,
	"over_0_5_cards":       0.02,
	"total_over_0_5_cards": 0.02,

	"home_over_2_5_cards": 0.05,
	"home_over_1_5_cards": 0.04,
	"home_over_0_5_cards": 0.02,
	"away_over_2_5_cards": 0.05,
	"away_over_1_5_cards": 0.04,
	"away_over_0_5_cards": 0.02,

	// Shots patterns.
	"over_20_5_shots":      0.05,
	"over_15_5_shots":      0.04,
	"over_10_5_shots":      0.03,
	"home_over_10_5_shots": 0.04,
	"home_over_5_5_shots":  0.03,
	"away_over_10_5_shots": 0.05,
	"away_over_5_5_shots":  0.04,

	// Match result outcomes are the hardest to call.
	"home_win": 0.08,
	"away_win": 0.09,
	"draw":     0.10,
}

// Category-level fallbacks for patterns without an exact table entry.
var categoryPenalties = map[Category]float64{
	CategoryGoals:   0.06,
	CategoryCorners: 0.03,
	CategoryCards:   0.04,
	CategoryShots:   0.04,
	CategoryResult:  0.08,
}

// DefaultRiskPenalty applies when neither the exact name nor the category
// matches anything.
const DefaultRiskPenalty = 0.05

// RiskPenalty returns the confidence penalty for a pattern name.
func RiskPenalty(name string) float64 {
	if penalty, ok := riskPenalties[name]; ok {
		return penalty
	}
	if penalty, ok := categoryPenalties[Categorize(name)]; ok {
		return penalty
	}
	return DefaultRiskPenalty
}

// RiskAdjusted subtracts the pattern's risk penalty from a raw confidence,
// clamped to [0,1]. Stateless, no history dependency.
func RiskAdjusted(confidence float64, name string) float64 {
	adjusted := confidence - RiskPenalty(name)
	if adjusted < 0 {
		return 0
	}
	if adjusted > 1 {
		return 1
	}
	return adjusted
}
