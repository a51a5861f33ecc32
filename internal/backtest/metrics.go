package backtest

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/pitchside/internal/models"
)

// PatternResult summarises one pattern's settled bets.
type PatternResult struct {
	PatternName string          `json:"pattern_name"`
	Bets        int             `json:"bets"`
	Wins        int             `json:"wins"`
	WinRate     float64         `json:"win_rate"`
	NetUnits    decimal.Decimal `json:"net_units"`
}

// Metrics is the aggregated outcome of one backtest run.
type Metrics struct {
	League         string          `json:"league"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	MatchesTested  int             `json:"matches_tested"`
	TotalBets      int             `json:"total_bets"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	NoBets         int             `json:"no_bets"`
	WinRate        float64         `json:"win_rate"`
	TotalStaked    decimal.Decimal `json:"total_staked"`
	NetUnits       decimal.Decimal `json:"net_units"`
	ROI            float64         `json:"roi"`
	PatternResults []PatternResult `json:"pattern_results"`
	Settlements    []Settlement    `json:"settlements"`
}

// ComputeMetrics reduces the accumulated state to the final run metrics.
// Pattern results are sorted by net units descending, then name, so the
// report ordering is stable.
func ComputeMetrics(cfg Config, state *State, matchesTested int) *Metrics {
	settlements := state.Settlements()

	m := &Metrics{
		League:        cfg.League,
		StartDate:     cfg.StartDate,
		EndDate:       cfg.EndDate,
		MatchesTested: matchesTested,
		TotalStaked:   decimal.Zero,
		NetUnits:      decimal.Zero,
		Settlements:   settlements,
	}

	perPattern := make(map[string]*PatternResult)
	for _, st := range settlements {
		if st.NoBet {
			m.NoBets++
			continue
		}
		m.TotalBets++
		if st.Won {
			m.Wins++
		} else {
			m.Losses++
		}
		m.TotalStaked = m.TotalStaked.Add(st.Stake)
		m.NetUnits = m.NetUnits.Add(st.PnL)

		pr, ok := perPattern[st.PatternName]
		if !ok {
			pr = &PatternResult{PatternName: st.PatternName, NetUnits: decimal.Zero}
			perPattern[st.PatternName] = pr
		}
		pr.Bets++
		if st.Won {
			pr.Wins++
		}
		pr.NetUnits = pr.NetUnits.Add(st.PnL)
	}

	if m.TotalBets > 0 {
		m.WinRate = float64(m.Wins) / float64(m.TotalBets)
	}
	if m.TotalStaked.Sign() > 0 {
		roi, _ := m.NetUnits.Div(m.TotalStaked).Float64()
		m.ROI = roi
	}

	for _, pr := range perPattern {
		if pr.Bets > 0 {
			pr.WinRate = float64(pr.Wins) / float64(pr.Bets)
		}
		m.PatternResults = append(m.PatternResults, *pr)
	}
	sort.SliceStable(m.PatternResults, func(i, j int) bool {
		cmp := m.PatternResults[i].NetUnits.Cmp(m.PatternResults[j].NetUnits)
		if cmp != 0 {
			return cmp > 0
		}
		return m.PatternResults[i].PatternName < m.PatternResults[j].PatternName
	})

	return m
}

// ToRun converts the metrics to the persisted run summary.
func (m *Metrics) ToRun() models.BacktestRun {
	staked, _ := m.TotalStaked.Float64()
	returned, _ := m.TotalStaked.Add(m.NetUnits).Float64()
	return models.BacktestRun{
		ID:            uuid.New(),
		League:        m.League,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		TotalMatches:  m.MatchesTested,
		TotalBets:     m.TotalBets,
		WinningBets:   m.Wins,
		WinRate:       m.WinRate,
		UnitsStaked:   staked,
		UnitsReturned: returned,
		ROI:           m.ROI,
		CreatedAt:     time.Now().UTC(),
	}
}
