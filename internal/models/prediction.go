package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation verdicts.
const (
	VerdictBet     = "BET"
	VerdictMonitor = "MONITOR"
	VerdictNoBet   = "NO BET"
)

// BestBet is the single winning pattern for a match, selected by maximum
// risk-adjusted confidence. Absent entirely when no pattern qualifies.
type BestBet struct {
	PatternName            string  `json:"pattern_name"`
	Category               string  `json:"category"`
	RawConfidence          float64 `json:"raw_confidence"`
	RiskAdjustedConfidence float64 `json:"risk_adjusted_confidence"`
	ThresholdUsed          float64 `json:"threshold_used"`
}

// Recommendation records the full evaluation of one pattern for one fixture.
type Recommendation struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FixtureID     string    `db:"fixture_id" json:"fixture_id"`
	League        string    `db:"league" json:"league"`
	HomeTeam      string    `db:"home_team" json:"home_team"`
	AwayTeam      string    `db:"away_team" json:"away_team"`
	MatchDate     time.Time `db:"match_date" json:"match_date"`
	PatternName   string    `db:"pattern_name" json:"pattern_name"`
	BetType       string    `db:"bet_type" json:"bet_type"`
	Confidence    float64   `db:"confidence" json:"confidence"`
	RiskAdjusted  float64   `db:"risk_adjusted" json:"risk_adjusted"`
	Threshold     float64   `db:"threshold" json:"threshold"`
	ExpectedOdds  float64   `db:"expected_odds" json:"expected_odds"`
	ExpectedValue float64   `db:"expected_value" json:"expected_value"`
	Verdict       string    `db:"verdict" json:"verdict"`
	Reasoning     string    `db:"reasoning" json:"reasoning"`
	KellyStake    float64   `db:"kelly_stake" json:"kelly_stake"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// MatchPrediction is the complete prediction output for one fixture.
type MatchPrediction struct {
	Fixture         Fixture          `json:"fixture"`
	Recommendations []Recommendation `json:"recommendations"`
	BestBet         *BestBet         `json:"best_bet,omitempty"`
	MeanConfidence  float64          `json:"mean_confidence"`
}

// MeetsThreshold checks if a recommendation clears the given threshold.
func (r *Recommendation) MeetsThreshold(threshold float64) bool {
	return r.RiskAdjusted >= threshold
}
