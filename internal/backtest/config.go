// Package backtest replays a historical corpus chronologically and measures
// how the best-bet selector would have performed.
package backtest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Config configures one backtest run.
type Config struct {
	League    string
	StartDate time.Time
	EndDate   time.Time

	// HistoryCap limits each match's historical view to the most recent N
	// earlier records. Zero means unlimited.
	HistoryCap int

	// Workers sets the evaluation worker count; zero falls back to the
	// number of CPUs.
	Workers int

	// FlatStake is the unit stake per bet.
	FlatStake decimal.Decimal

	// PayoutOdds assigns assumed decimal payout odds per pattern name;
	// patterns without an entry use DefaultPayout.
	PayoutOdds    map[string]float64
	DefaultPayout float64

	OutputPath string
}

// Validate checks the run parameters.
func (c Config) Validate() error {
	if c.League == "" {
		return fmt.Errorf("league is required")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if c.StartDate.After(c.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if c.FlatStake.Sign() <= 0 {
		return fmt.Errorf("flat stake must be positive")
	}
	if c.DefaultPayout <= 1 {
		return fmt.Errorf("default payout must be greater than 1.0")
	}
	if c.HistoryCap < 0 {
		return fmt.Errorf("history cap cannot be negative")
	}
	return nil
}

// payoutFor resolves the assumed payout odds for a settled pattern.
func (c Config) payoutFor(patternName string) float64 {
	if odds, ok := c.PayoutOdds[patternName]; ok {
		return odds
	}
	return c.DefaultPayout
}
