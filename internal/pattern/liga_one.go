package pattern

import "github.com/yourusername/pitchside/internal/models"

// RegisterLigaOne populates a catalog with the Romanian Liga I pattern set.
// Thresholds and minimum samples are the production-calibrated values for
// this competition.
func RegisterLigaOne(c *Catalog) error {
	patterns := []Pattern{
		// Goals
		{Name: "home_over_0_5_goals", Category: CategoryGoals, Predicate: SideOver(models.StatHomeGoals, 0.5), DefaultThreshold: 0.70, MinMatches: 15, Description: "Home team scores at least 1 goal"},
		{Name: "away_over_0_5_goals", Category: CategoryGoals, Predicate: SideOver(models.StatAwayGoals, 0.5), DefaultThreshold: 0.65, MinMatches: 15, Description: "Away team scores at least 1 goal"},
		{Name: "home_over_1_5_goals", Category: CategoryGoals, Predicate: SideOver(models.StatHomeGoals, 1.5), DefaultThreshold: 0.70, MinMatches: 20, Description: "Home team scores over 1.5 goals"},
		{Name: "home_over_2_5_goals", Category: CategoryGoals, Predicate: SideOver(models.StatHomeGoals, 2.5), DefaultThreshold: 0.75, MinMatches: 25, Description: "Home team scores over 2.5 goals"},
		{Name: "away_over_1_5_goals", Category: CategoryGoals, Predicate: SideOver(models.StatAwayGoals, 1.5), DefaultThreshold: 0.65, MinMatches: 20, Description: "Away team scores over 1.5 goals"},
		{Name: "away_over_2_5_goals", Category: CategoryGoals, Predicate: SideOver(models.StatAwayGoals, 2.5), DefaultThreshold: 0.75, MinMatches: 25, Description: "Away team scores over 2.5 goals"},
		{Name: "total_over_1_5_goals", Category: CategoryGoals, Predicate: TotalOver(models.StatHomeGoals, models.StatAwayGoals, 1.5), DefaultThreshold: 0.60, MinMatches: 15, Description: "Total goals over 1.5"},
		{Name: "total_over_2_5_goals", Category: CategoryGoals, Predicate: TotalOver(models.StatHomeGoals, models.StatAwayGoals, 2.5), DefaultThreshold: 0.65, MinMatches: 20, Description: "Total goals over 2.5"},
		{Name: "total_under_2_5_goals", Category: CategoryGoals, Predicate: TotalUnder(models.StatHomeGoals, models.StatAwayGoals, 2.5), DefaultThreshold: 0.60, MinMatches: 20, Description: "Total goals under 2.5"},
		{Name: "total_over_3_5_goals", Category: CategoryGoals, Predicate: TotalOver(models.StatHomeGoals, models.StatAwayGoals, 3.5), DefaultThreshold: 0.75, MinMatches: 25, Description: "Total goals over 3.5"},
		{Name: "total_under_3_5_goals", Category: CategoryGoals, Predicate: TotalUnder(models.StatHomeGoals, models.StatAwayGoals, 3.5), DefaultThreshold: 0.60, MinMatches: 20, Description: "Total goals under 3.5"},
		{Name: "both_teams_to_score", Category: CategoryGoals, Predicate: BothTeamsToScore(), DefaultThreshold: 0.95, MinMatches: 20, Description: "Both teams to score"},

		// Corners
		{Name: "home_over_2_5_corners", Category: CategoryCorners, Predicate: SideOver(models.StatHomeCorners, 2.5), DefaultThreshold: 0.65, MinMatches: 15, Description: "Home team over 2.5 corners"},
		{Name: "home_over_3_5_corners", Category: CategoryCorners, Predicate: SideOver(models.StatHomeCorners, 3.5), DefaultThreshold: 0.70, MinMatches: 20, Description: "Home team over 3.5 corners"},
		{Name: "home_over_4_5_corners", Category: CategoryCorners, Predicate: SideOver(models.StatHomeCorners, 4.5), DefaultThreshold: 0.75, MinMatches: 25, Description: "Home team over 4.5 corners"},
		{Name: "away_over_2_5_corners", Category: CategoryCorners, Predicate: SideOver(models.StatAwayCorners, 2.5), DefaultThreshold: 0.65, MinMatches: 15, Description: "Away team over 2.5 corners"},
		{Name: "away_over_3_5_corners", Category: CategoryCorners, Predicate: SideOver(models.StatAwayCorners, 3.5), DefaultThreshold: 0.70, MinMatches: 20, Description: "Away team over 3.5 corners"},
		{Name: "total_over_7_5_corners", Category: CategoryCorners, Predicate: TotalOver(models.StatHomeCorners, models.StatAwayCorners, 7.5), DefaultThreshold: 0.68, MinMatches: 18, Description: "Total corners over 7.5"},
		{Name: "total_over_8_5_corners", Category: CategoryCorners, Predicate: TotalOver(models.StatHomeCorners, models.StatAwayCorners, 8.5), DefaultThreshold: 0.70, MinMatches: 20, Description: "Total corners over 8.5"},
		{Name: "total_over_9_5_corners", Category: CategoryCorners, Predicate: TotalOver(models.StatHomeCorners, models.StatAwayCorners, 9.5), DefaultThreshold: 0.75, MinMatches: 25, Description: "Total corners over 9.5"},
		{Name: "total_under_7_5_corners", Category: CategoryCorners, Predicate: TotalUnder(models.StatHomeCorners, models.StatAwayCorners, 7.5), DefaultThreshold: 0.60, MinMatches: 15, Description: "Total corners under 7.5"},

		// Cards
		{Name: "home_over_0_5_cards", Category: CategoryCards, Predicate: SideOver(models.StatHomeCards, 0.5), DefaultThreshold: 0.60, MinMatches: 15, Description: "Home team over 0.5 cards"},
		{Name: "away_over_0_5_cards", Category: CategoryCards, Predicate: SideOver(models.StatAwayCards, 0.5), DefaultThreshold: 0.60, MinMatches: 15, Description: "Away team over 0.5 cards"},
		{Name: "home_over_1_5_cards", Category: CategoryCards, Predicate: SideOver(models.StatHomeCards, 1.5), DefaultThreshold: 0.70, MinMatches: 20, Description: "Home team over 1.5 cards"},
		{Name: "away_over_1_5_cards", Category: CategoryCards, Predicate: SideOver(models.StatAwayCards, 1.5), DefaultThreshold: 0.70, MinMatches: 20, Description: "Away team over 1.5 cards"},
		{Name: "total_over_2_5_cards", Category: CategoryCards, Predicate: TotalOver(models.StatHomeCards, models.StatAwayCards, 2.5), DefaultThreshold: 0.70, MinMatches: 18, Description: "Total cards over 2.5"},
		{Name: "total_over_3_5_cards", Category: CategoryCards, Predicate: TotalOver(models.StatHomeCards, models.StatAwayCards, 3.5), DefaultThreshold: 0.65, MinMatches: 20, Description: "Total cards over 3.5"},
		{Name: "total_over_4_5_cards", Category: CategoryCards, Predicate: TotalOver(models.StatHomeCards, models.StatAwayCards, 4.5), DefaultThreshold: 0.70, MinMatches: 25, Description: "Total cards over 4.5"},
	}

	for _, p := range patterns {
		if err := c.Register(p); err != nil {
			return err
		}
	}
	return nil
}
