package backtest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Aggregate combines metrics from several league runs into one summary.
type Aggregate struct {
	Leagues       []string        `json:"leagues"`
	MatchesTested int             `json:"matches_tested"`
	TotalBets     int             `json:"total_bets"`
	Wins          int             `json:"wins"`
	WinRate       float64         `json:"win_rate"`
	TotalStaked   decimal.Decimal `json:"total_staked"`
	NetUnits      decimal.Decimal `json:"net_units"`
	ROI           float64         `json:"roi"`
}

// Combine folds per-league metrics into a single aggregate. Leagues are
// listed in sorted order.
func Combine(runs ...*Metrics) Aggregate {
	agg := Aggregate{TotalStaked: decimal.Zero, NetUnits: decimal.Zero}
	for _, m := range runs {
		if m == nil {
			continue
		}
		agg.Leagues = append(agg.Leagues, m.League)
		agg.MatchesTested += m.MatchesTested
		agg.TotalBets += m.TotalBets
		agg.Wins += m.Wins
		agg.TotalStaked = agg.TotalStaked.Add(m.TotalStaked)
		agg.NetUnits = agg.NetUnits.Add(m.NetUnits)
	}
	sort.Strings(agg.Leagues)
	if agg.TotalBets > 0 {
		agg.WinRate = float64(agg.Wins) / float64(agg.TotalBets)
	}
	if agg.TotalStaked.Sign() > 0 {
		roi, _ := agg.NetUnits.Div(agg.TotalStaked).Float64()
		agg.ROI = roi
	}
	return agg
}

// Summary renders a one-block console view of the aggregate.
func (a Aggregate) Summary() string {
	return fmt.Sprintf(
		"Combined (%s): %d matches, %d bets, %.1f%% win rate, %s net units, %+.1f%% ROI",
		strings.Join(a.Leagues, ", "), a.MatchesTested, a.TotalBets,
		a.WinRate*100, a.NetUnits.StringFixed(2), a.ROI*100)
}
