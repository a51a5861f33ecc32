package pattern

import "github.com/yourusername/pitchside/internal/models"

// Predicate constructors shared by the league catalogs. Lines use the x.5
// convention so a predicate can never push on the boundary.

// TotalOver matches when the combined value of a home/away stat pair exceeds line.
func TotalOver(homeStat, awayStat string, line float64) Predicate {
	return func(m models.MatchRecord) bool {
		return m.Stat(homeStat)+m.Stat(awayStat) > line
	}
}

// TotalUnder matches when the combined value stays below line.
func TotalUnder(homeStat, awayStat string, line float64) Predicate {
	return func(m models.MatchRecord) bool {
		return m.Stat(homeStat)+m.Stat(awayStat) < line
	}
}

// SideOver matches when a single side's stat exceeds line.
func SideOver(stat string, line float64) Predicate {
	return func(m models.MatchRecord) bool {
		return m.Stat(stat) > line
	}
}

// SideUnder matches when a single side's stat stays below line.
func SideUnder(stat string, line float64) Predicate {
	return func(m models.MatchRecord) bool {
		return m.Stat(stat) < line
	}
}

// BothTeamsToScore matches when both sides score at least once.
func BothTeamsToScore() Predicate {
	return func(m models.MatchRecord) bool {
		return m.Stat(models.StatHomeGoals) > 0.5 && m.Stat(models.StatAwayGoals) > 0.5
	}
}

// ResultIs matches a full-time result code.
func ResultIs(result string) Predicate {
	return func(m models.MatchRecord) bool {
		return m.Result() == result
	}
}
