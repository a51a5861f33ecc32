package predictor

import (
	"math"
	"strings"

	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
)

const (
	averageForm  = 1.5
	minThreshold = 0.50
	maxThreshold = 0.90
)

// baseThreshold returns the configured threshold for a pattern: the league
// override when present, otherwise the catalog default.
func (p *LeaguePredictor) baseThreshold(pat pattern.Pattern) float64 {
	if override, ok := p.settings.Thresholds[pat.Name]; ok {
		return override
	}
	return pat.DefaultThreshold
}

// adaptiveThreshold adjusts the base threshold for team form and season
// stage. Good combined form lowers the bar, poor form raises it; early
// season raises it because patterns are least reliable then. Result clamped
// to [0.50, 0.90].
func (p *LeaguePredictor) adaptiveThreshold(pat pattern.Pattern, fixture models.Fixture, history models.Corpus) float64 {
	base := p.baseThreshold(pat)
	if !p.settings.AdaptiveThresholds {
		return base
	}

	homeForm := teamRecentForm(fixture.HomeTeam, history)
	awayForm := teamRecentForm(fixture.AwayTeam, history)
	avgForm := (homeForm + awayForm) / 2

	var adjustment float64
	switch {
	case avgForm >= 2.0:
		adjustment = -0.05
	case avgForm >= 1.5:
		adjustment = -0.02
	case avgForm <= 0.8:
		adjustment = 0.10
	case avgForm <= 1.0:
		adjustment = 0.05
	}

	adjustment += seasonStageAdjustment(fixture, history)

	lower := strings.ToLower(pat.Name)
	if strings.Contains(lower, "corner") {
		// Attacking sides generate corners.
		if math.Max(homeForm, awayForm) >= 2.2 {
			adjustment -= 0.03
		}
	}
	if strings.Contains(lower, "card") {
		// Evenly matched sides play more competitive, cardier matches.
		if math.Abs(homeForm-awayForm) <= 0.3 {
			adjustment -= 0.02
		}
	}

	return clampThreshold(base + adjustment)
}

// seasonStageAdjustment raises the threshold in the early season when
// patterns are volatile, lowers it slightly at peak mid-season form, and
// stays cautious late when motivation distorts results.
func seasonStageAdjustment(fixture models.Fixture, history models.Corpus) float64 {
	homeMatches := 0
	awayMatches := 0
	for _, m := range history {
		if m.Involves(fixture.HomeTeam) {
			homeMatches++
		}
		if m.Involves(fixture.AwayTeam) {
			awayMatches++
		}
	}
	avgMatches := float64(homeMatches+awayMatches) / 2

	switch {
	case avgMatches <= 6:
		return 0.08
	case avgMatches <= 27:
		return -0.03
	default:
		return 0.02
	}
}

// teamRecentForm scores a team's last 10 matches on a 0-3.5 scale from
// points and goal difference, with the last 5 matches weighted three times
// as heavily. Teams without history read as average form.
func teamRecentForm(team string, history models.Corpus) float64 {
	var teamMatches models.Corpus
	for _, m := range history {
		if m.Involves(team) {
			teamMatches = append(teamMatches, m)
		}
	}
	teamMatches = teamMatches.Tail(10)
	if len(teamMatches) == 0 {
		return averageForm
	}

	var weightedPoints, weightedGoalDiff, totalWeight float64
	for i, m := range teamMatches {
		isHome := m.HomeTeam == team

		var goalsFor, goalsAgainst float64
		if isHome {
			goalsFor = m.Stat(models.StatHomeGoals)
			goalsAgainst = m.Stat(models.StatAwayGoals)
		} else {
			goalsFor = m.Stat(models.StatAwayGoals)
			goalsAgainst = m.Stat(models.StatHomeGoals)
		}

		var points float64
		switch {
		case goalsFor > goalsAgainst:
			points = 3
		case goalsFor == goalsAgainst:
			points = 1
		}

		weight := 1.0
		if i >= len(teamMatches)-5 {
			weight = 3.0
		}
		weightedPoints += points * weight
		weightedGoalDiff += (goalsFor - goalsAgainst) * weight
		totalWeight += weight
	}

	form := weightedPoints/totalWeight + (weightedGoalDiff/totalWeight)*0.2
	if form < 0 {
		return 0
	}
	if form > 3.5 {
		return 3.5
	}
	return form
}

func clampThreshold(t float64) float64 {
	if t < minThreshold {
		return minThreshold
	}
	if t > maxThreshold {
		return maxThreshold
	}
	return t
}
