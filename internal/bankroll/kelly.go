// Package bankroll sizes stakes for recommended bets. It consumes a best bet
// and advisory odds; nothing here feeds back into selection.
package bankroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Staker computes fractional Kelly stakes with hard caps.
type Staker struct {
	// KellyFraction scales the full Kelly stake; 0.25 is the default.
	KellyFraction float64
	// MaxStakePct caps the stake at this fraction of bankroll.
	MaxStakePct float64
	// MinStakePct floors the stake at this fraction of bankroll.
	MinStakePct float64
}

// NewStaker returns a staker with the production calibration: quarter Kelly,
// capped at 3% of bankroll, floored at 0.5%.
func NewStaker() *Staker {
	return &Staker{
		KellyFraction: 0.25,
		MaxStakePct:   0.03,
		MinStakePct:   0.005,
	}
}

// Stake computes the recommended stake for a bet with the given win
// probability and decimal odds.
//
// Kelly: f = (b*p - q) / b with b = odds - 1, p = confidence, q = 1 - p.
// The fraction is scaled by KellyFraction and then clamped into
// [MinStakePct, MaxStakePct], so even a negative-edge bet that reached this
// point stakes the floor rather than zero; the selector is responsible for
// not recommending such bets.
func (s *Staker) Stake(confidence, odds float64, bankroll decimal.Decimal) (decimal.Decimal, error) {
	if confidence <= 0 || confidence > 1 {
		return decimal.Zero, fmt.Errorf("confidence must be in (0,1], got %v", confidence)
	}
	if odds <= 1 {
		return decimal.Zero, fmt.Errorf("odds must be greater than 1.0, got %v", odds)
	}
	if bankroll.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("bankroll must be positive")
	}

	b := odds - 1.0
	p := confidence
	q := 1.0 - confidence

	kelly := (b*p - q) / b
	fraction := kelly * s.KellyFraction

	if fraction > s.MaxStakePct {
		fraction = s.MaxStakePct
	}
	if fraction < s.MinStakePct {
		fraction = s.MinStakePct
	}

	stake := bankroll.Mul(decimal.NewFromFloat(fraction))
	return stake.Round(2), nil
}
