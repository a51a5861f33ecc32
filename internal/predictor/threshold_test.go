package predictor

import (
	"math"
	"testing"

	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
)

// formHistory builds n matches for each named team against an uninvolved
// opponent, with the given scoreline from the team's perspective.
func formHistory(n int, goalsFor, goalsAgainst float64, teams ...string) models.Corpus {
	var corpus models.Corpus
	for i, team := range teams {
		opponent := "Filler" + string(rune('A'+i))
		for d := 1; d <= n; d++ {
			corpus = append(corpus, models.MatchRecord{
				League:   "test_league",
				Date:     fixtureDate.AddDate(0, 0, -d),
				HomeTeam: team,
				AwayTeam: opponent,
				Stats: map[string]float64{
					models.StatHomeGoals: goalsFor,
					models.StatAwayGoals: goalsAgainst,
				},
			})
		}
	}
	return corpus
}

func TestTeamRecentFormDefaultsWithoutHistory(t *testing.T) {
	if got := teamRecentForm("Ghosts", nil); got != averageForm {
		t.Fatalf("expected average form %v, got %v", averageForm, got)
	}
}

func TestTeamRecentFormClamps(t *testing.T) {
	// Ten 3-0 wins: 3 points plus 0.6 goal difference bonus, clamped to 3.5.
	winning := formHistory(10, 3, 0, "Alpha")
	if got := teamRecentForm("Alpha", winning); got != 3.5 {
		t.Fatalf("expected clamp at 3.5, got %v", got)
	}

	// Ten 0-3 losses: 0 points minus the goal difference drag, clamped to 0.
	losing := formHistory(10, 0, 3, "Alpha")
	if got := teamRecentForm("Alpha", losing); got != 0 {
		t.Fatalf("expected clamp at 0, got %v", got)
	}
}

func TestTeamRecentFormWeightsRecentMatches(t *testing.T) {
	// Five old losses followed by five recent 3-0 wins. The recent block
	// carries triple weight: points (45/20) plus goal difference (30/20)*0.2.
	var history models.Corpus
	history = append(history, formHistory(5, 0, 3, "Alpha")...)
	for i := range history {
		history[i].Date = fixtureDate.AddDate(0, 0, -(20 - i))
	}
	recent := formHistory(5, 3, 0, "Alpha")
	history = append(history, recent...)

	got := teamRecentForm("Alpha", history)
	want := 45.0/20.0 + (30.0/20.0)*0.2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected weighted form %v, got %v", want, got)
	}
}

func TestSeasonStageAdjustment(t *testing.T) {
	fixture := models.Fixture{Date: fixtureDate, HomeTeam: "Alpha", AwayTeam: "Beta"}

	early := formHistory(4, 1, 1, "Alpha", "Beta")
	if got := seasonStageAdjustment(fixture, early); got != 0.08 {
		t.Fatalf("early season: expected +0.08, got %v", got)
	}

	mid := formHistory(15, 1, 1, "Alpha", "Beta")
	if got := seasonStageAdjustment(fixture, mid); got != -0.03 {
		t.Fatalf("mid season: expected -0.03, got %v", got)
	}

	late := formHistory(30, 1, 1, "Alpha", "Beta")
	if got := seasonStageAdjustment(fixture, late); got != 0.02 {
		t.Fatalf("late season: expected +0.02, got %v", got)
	}
}

func adaptiveTestPredictor(t *testing.T, name string, base float64) *LeaguePredictor {
	t.Helper()
	settings := DefaultSettings()
	settings.AdaptiveThresholds = true
	patterns := []pattern.Pattern{
		{Name: name, Predicate: pattern.TotalOver(models.StatHomeGoals, models.StatAwayGoals, 0.5), DefaultThreshold: base, MinMatches: 5},
	}
	return newTestPredictor(t, patterns, settings)
}

func TestAdaptiveThresholdDisabledReturnsBase(t *testing.T) {
	settings := DefaultSettings()
	patterns := []pattern.Pattern{
		{Name: "total_over_2_5_goals", Predicate: pattern.TotalOver(models.StatHomeGoals, models.StatAwayGoals, 2.5), DefaultThreshold: 0.62, MinMatches: 5},
	}
	pred := newTestPredictor(t, patterns, settings)
	pat, _ := pred.catalog.Get("total_over_2_5_goals")

	history := formHistory(10, 3, 0, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if got != 0.62 {
		t.Fatalf("expected unmodified base threshold, got %v", got)
	}
}

func TestAdaptiveThresholdUsesLeagueOverride(t *testing.T) {
	settings := DefaultSettings()
	settings.Thresholds = map[string]float64{"total_over_2_5_goals": 0.71}
	patterns := []pattern.Pattern{
		{Name: "total_over_2_5_goals", Predicate: pattern.TotalOver(models.StatHomeGoals, models.StatAwayGoals, 2.5), DefaultThreshold: 0.62, MinMatches: 5},
	}
	pred := newTestPredictor(t, patterns, settings)
	pat, _ := pred.catalog.Get("total_over_2_5_goals")

	if got := pred.adaptiveThreshold(pat, testFixture(), nil); got != 0.71 {
		t.Fatalf("expected league threshold override 0.71, got %v", got)
	}
}

func TestAdaptiveThresholdStrongFormLowersBar(t *testing.T) {
	pred := adaptiveTestPredictor(t, "total_over_1_5_goals", 0.70)
	pat, _ := pred.catalog.Get("total_over_1_5_goals")

	// Both sides in dominant form with a mid-season sample: -0.05 for form
	// and -0.03 for the season stage.
	history := formHistory(10, 2, 0, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if math.Abs(got-0.62) > 1e-9 {
		t.Fatalf("expected 0.62, got %v", got)
	}
}

func TestAdaptiveThresholdPoorFormRaisesBar(t *testing.T) {
	pred := adaptiveTestPredictor(t, "total_over_1_5_goals", 0.70)
	pat, _ := pred.catalog.Get("total_over_1_5_goals")

	// Both sides losing every match mid-season: +0.10 for form, -0.03 stage.
	history := formHistory(10, 0, 2, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if math.Abs(got-0.77) > 1e-9 {
		t.Fatalf("expected 0.77, got %v", got)
	}
}

func TestAdaptiveThresholdClampsHigh(t *testing.T) {
	pred := adaptiveTestPredictor(t, "total_over_1_5_goals", 0.88)
	pat, _ := pred.catalog.Get("total_over_1_5_goals")

	// Poor form plus early season pushes past the cap.
	history := formHistory(4, 0, 2, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if got != maxThreshold {
		t.Fatalf("expected clamp at %v, got %v", maxThreshold, got)
	}
}

func TestAdaptiveThresholdClampsLow(t *testing.T) {
	pred := adaptiveTestPredictor(t, "total_over_8_5_corners", 0.52)
	pat, _ := pred.catalog.Get("total_over_8_5_corners")

	// Dominant form, mid-season and the corner tweak stack below the floor.
	history := formHistory(10, 3, 0, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if got != minThreshold {
		t.Fatalf("expected clamp at %v, got %v", minThreshold, got)
	}
}

func TestAdaptiveThresholdCornerTweak(t *testing.T) {
	pred := adaptiveTestPredictor(t, "total_over_8_5_corners", 0.70)
	pat, _ := pred.catalog.Get("total_over_8_5_corners")

	// Form 3.4 for both sides: -0.05 form, -0.03 stage, -0.03 corner tweak.
	history := formHistory(10, 2, 0, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if math.Abs(got-0.59) > 1e-9 {
		t.Fatalf("expected 0.59, got %v", got)
	}
}

func TestAdaptiveThresholdCardTweak(t *testing.T) {
	pred := adaptiveTestPredictor(t, "total_over_3_5_cards", 0.70)
	pat, _ := pred.catalog.Get("total_over_3_5_cards")

	// Identical form on both sides triggers the competitive-match tweak:
	// -0.05 form, -0.03 stage, -0.02 card tweak.
	history := formHistory(10, 2, 0, "Alpha", "Beta")
	got := pred.adaptiveThreshold(pat, testFixture(), history)
	if math.Abs(got-0.60) > 1e-9 {
		t.Fatalf("expected 0.60, got %v", got)
	}
}
