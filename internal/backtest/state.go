package backtest

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records the outcome of one best-bet against the actual result.
type Settlement struct {
	MatchDate   time.Time       `json:"match_date"`
	HomeTeam    string          `json:"home_team"`
	AwayTeam    string          `json:"away_team"`
	PatternName string          `json:"pattern_name"`
	Category    string          `json:"category"`
	Confidence  float64         `json:"confidence"`
	RiskAdj     float64         `json:"risk_adjusted_confidence"`
	Threshold   float64         `json:"threshold_used"`
	PayoutOdds  float64         `json:"payout_odds"`
	Stake       decimal.Decimal `json:"stake"`
	Won         bool            `json:"won"`
	PnL         decimal.Decimal `json:"pnl"`
	NoBet       bool            `json:"no_bet"`
	SkipReason  string          `json:"skip_reason,omitempty"`
}

// patternStats accumulates per-pattern performance.
type patternStats struct {
	Bets  int             `json:"bets"`
	Wins  int             `json:"wins"`
	Units decimal.Decimal `json:"units"`
}

// State accumulates settlements across workers.
type State struct {
	mu          sync.Mutex
	settlements []Settlement
	perPattern  map[string]*patternStats
	skipped     int
}

// NewState returns an empty accumulator.
func NewState() *State {
	return &State{perPattern: make(map[string]*patternStats)}
}

// Record folds one settlement into the running state.
func (s *State) Record(st Settlement) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settlements = append(s.settlements, st)
	if st.NoBet {
		s.skipped++
		return
	}

	ps, ok := s.perPattern[st.PatternName]
	if !ok {
		ps = &patternStats{Units: decimal.Zero}
		s.perPattern[st.PatternName] = ps
	}
	ps.Bets++
	if st.Won {
		ps.Wins++
	}
	ps.Units = ps.Units.Add(st.PnL)
}

// Settlements returns all settlements sorted by match date, then home team,
// so repeated runs over the same corpus produce identical reports.
func (s *State) Settlements() []Settlement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Settlement, len(s.settlements))
	copy(out, s.settlements)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].HomeTeam < out[j].HomeTeam
	})
	return out
}
