package models

import (
	"sort"
	"time"
)

// Standard statistic keys present on a MatchRecord. Any key referenced by a
// predicate but absent on a record reads as 0.
const (
	StatHomeGoals   = "home_goals"
	StatAwayGoals   = "away_goals"
	StatHomeCorners = "home_corners"
	StatAwayCorners = "away_corners"
	StatHomeCards   = "home_cards"
	StatAwayCards   = "away_cards"
	StatHomeShots   = "home_shots"
	StatAwayShots   = "away_shots"
)

// Match result codes.
const (
	ResultHomeWin = "H"
	ResultAwayWin = "A"
	ResultDraw    = "D"
)

// MatchRecord is one completed match with its named statistics.
// Records are treated as immutable once loaded.
type MatchRecord struct {
	League   string             `json:"league"`
	Date     time.Time          `json:"date"`
	HomeTeam string             `json:"home_team"`
	AwayTeam string             `json:"away_team"`
	Stats    map[string]float64 `json:"stats"`
}

// Stat returns a named statistic, defaulting to 0 when the statistic is
// absent on this record.
func (m MatchRecord) Stat(name string) float64 {
	if m.Stats == nil {
		return 0
	}
	return m.Stats[name]
}

// HasStat reports whether the statistic was actually recorded.
func (m MatchRecord) HasStat(name string) bool {
	if m.Stats == nil {
		return false
	}
	_, ok := m.Stats[name]
	return ok
}

// TotalGoals returns combined goals for both sides.
func (m MatchRecord) TotalGoals() float64 {
	return m.Stat(StatHomeGoals) + m.Stat(StatAwayGoals)
}

// TotalCorners returns combined corners for both sides.
func (m MatchRecord) TotalCorners() float64 {
	return m.Stat(StatHomeCorners) + m.Stat(StatAwayCorners)
}

// TotalCards returns combined cards for both sides.
func (m MatchRecord) TotalCards() float64 {
	return m.Stat(StatHomeCards) + m.Stat(StatAwayCards)
}

// Result derives the full-time result code from goals.
func (m MatchRecord) Result() string {
	home := m.Stat(StatHomeGoals)
	away := m.Stat(StatAwayGoals)
	switch {
	case home > away:
		return ResultHomeWin
	case away > home:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}

// Involves reports whether the given team played in this match.
func (m MatchRecord) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Corpus is a chronologically ordered sequence of completed matches for one
// competition. It is read-only for the duration of a run.
type Corpus []MatchRecord

// SortedByDate returns a copy of the corpus sorted ascending by date.
// Ties are broken by home team name so iteration order is deterministic.
func (c Corpus) SortedByDate() Corpus {
	sorted := make(Corpus, len(c))
	copy(sorted, c)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].HomeTeam < sorted[j].HomeTeam
	})
	return sorted
}

// Before returns the subset of the corpus dated strictly earlier than cutoff.
func (c Corpus) Before(cutoff time.Time) Corpus {
	subset := make(Corpus, 0, len(c))
	for _, m := range c {
		if m.Date.Before(cutoff) {
			subset = append(subset, m)
		}
	}
	return subset
}

// Window returns matches with date in [from, to).
func (c Corpus) Window(from, to time.Time) Corpus {
	subset := make(Corpus, 0, len(c))
	for _, m := range c {
		if !m.Date.Before(from) && m.Date.Before(to) {
			subset = append(subset, m)
		}
	}
	return subset
}

// Tail returns the most recent n matches of an already sorted corpus.
func (c Corpus) Tail(n int) Corpus {
	if n <= 0 || n >= len(c) {
		return c
	}
	return c[len(c)-n:]
}

// EarliestDate returns the date of the oldest record, or the zero time for an
// empty corpus.
func (c Corpus) EarliestDate() time.Time {
	var earliest time.Time
	for _, m := range c {
		if earliest.IsZero() || m.Date.Before(earliest) {
			earliest = m.Date
		}
	}
	return earliest
}
