package bankroll

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/metrics"
)

// Limits are the run-level loss guards.
type Limits struct {
	MaxDailyLoss   decimal.Decimal
	MaxDrawdownPct float64
}

// Tracker enforces daily loss and drawdown limits across a run. Safe for
// concurrent use.
type Tracker struct {
	limits    Limits
	bankroll  decimal.Decimal
	peak      decimal.Decimal
	dailyLoss decimal.Decimal
	day       time.Time
	mu        sync.Mutex
	logger    *logrus.Logger
}

// NewTracker creates a tracker starting from the initial bankroll.
func NewTracker(initial decimal.Decimal, limits Limits, logger *logrus.Logger) *Tracker {
	if logger == nil {
		logger = logrus.New()
	}
	return &Tracker{
		limits:   limits,
		bankroll: initial,
		peak:     initial,
		logger:   logger,
	}
}

// Bankroll returns the current bankroll.
func (t *Tracker) Bankroll() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bankroll
}

// RecordSettlement applies a settled bet's profit or loss.
func (t *Tracker) RecordSettlement(pnl decimal.Decimal, settledAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := settledAt.Truncate(24 * time.Hour)
	if !day.Equal(t.day) {
		t.day = day
		t.dailyLoss = decimal.Zero
	}

	t.bankroll = t.bankroll.Add(pnl)
	if t.bankroll.GreaterThan(t.peak) {
		t.peak = t.bankroll
	}
	if pnl.Sign() < 0 {
		t.dailyLoss = t.dailyLoss.Sub(pnl)
	}

	current, _ := t.bankroll.Float64()
	metrics.UpdateBankroll(current)
}

// AllowBet reports whether another bet may be placed under the loss limits.
func (t *Tracker) AllowBet() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.limits.MaxDailyLoss.Sign() > 0 && t.dailyLoss.GreaterThanOrEqual(t.limits.MaxDailyLoss) {
		t.logger.WithFields(logrus.Fields{
			"daily_loss": t.dailyLoss.String(),
			"limit":      t.limits.MaxDailyLoss.String(),
		}).Warn("Daily loss limit reached, betting suspended")
		return false
	}

	if t.limits.MaxDrawdownPct > 0 && t.peak.Sign() > 0 {
		drawdown, _ := t.peak.Sub(t.bankroll).Div(t.peak).Float64()
		if drawdown >= t.limits.MaxDrawdownPct {
			t.logger.WithFields(logrus.Fields{
				"drawdown": drawdown,
				"limit":    t.limits.MaxDrawdownPct,
			}).Warn("Drawdown limit reached, betting suspended")
			return false
		}
	}

	return true
}
