// Package predictor evaluates a pattern catalog against a fixture and picks
// at most one best bet per match.
package predictor

import (
	"time"

	"github.com/yourusername/pitchside/internal/confidence"
)

// Settings is the per-competition configuration value object. One generic
// predictor parameterized by Settings replaces per-league implementations.
type Settings struct {
	// TimeframeWeights overrides the engine's default window weighting.
	TimeframeWeights confidence.Weights

	// Thresholds holds per-pattern confidence threshold overrides. Patterns
	// without an override use their catalog default.
	Thresholds map[string]float64

	// Minimum match counts for sample-size validation.
	MinMatches7d  int
	MinMatches30d int

	// ExpectedOdds maps a bet line substring to advisory decimal odds used
	// for expected value. These are inputs, never computed.
	ExpectedOdds map[string]float64
	DefaultOdds  float64

	// MinEdge is the minimum expected value for a BET verdict; candidates
	// above threshold but below the edge are marked MONITOR.
	MinEdge float64

	// AdaptiveThresholds enables form and season-stage threshold adjustment.
	AdaptiveThresholds bool

	// HistoryCap limits the historical view to the most recent N records.
	// Zero means unlimited.
	HistoryCap int

	// CacheTTL enables breakdown caching when positive. Useful for backtests
	// that revisit nearby dates.
	CacheTTL time.Duration
}

// DefaultSettings returns the baseline league configuration.
func DefaultSettings() Settings {
	return Settings{
		TimeframeWeights: confidence.DefaultWeights(),
		MinMatches7d:     3,
		MinMatches30d:    10,
		ExpectedOdds:     DefaultExpectedOdds(),
		DefaultOdds:      1.80,
		MinEdge:          0.05,
	}
}

func (s Settings) engineParams() confidence.Params {
	return confidence.Params{
		Weights:           s.TimeframeWeights,
		MinMatches7d:      s.MinMatches7d,
		MinMatches30d:     s.MinMatches30d,
		IncludeAllHistory: true,
	}
}
