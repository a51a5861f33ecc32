package backtest

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
	"github.com/yourusername/pitchside/internal/predictor"
)

// Harness drives a walk-forward replay: for each match in the test range it
// predicts using only strictly earlier records, then settles the best bet
// against the match's actual statistics.
type Harness struct {
	config    Config
	predictor predictor.Predictor
	catalog   *pattern.Catalog
	logger    *logrus.Logger
}

// NewHarness validates the config and wires a predictor and catalog.
func NewHarness(cfg Config, pred predictor.Predictor, catalog *pattern.Catalog, logger *logrus.Logger) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if pred == nil {
		return nil, fmt.Errorf("predictor is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("pattern catalog is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Harness{config: cfg, predictor: pred, catalog: catalog, logger: logger}, nil
}

// Run replays the corpus and returns aggregated metrics. The corpus may be
// passed in any order; it is sorted once up front and every match sees only
// records dated strictly before its own kickoff.
func (h *Harness) Run(ctx context.Context, corpus models.Corpus) (*Metrics, error) {
	sorted := corpus.SortedByDate()

	var targets []models.MatchRecord
	for _, m := range sorted {
		if m.Date.Before(h.config.StartDate) || m.Date.After(h.config.EndDate) {
			continue
		}
		targets = append(targets, m)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no matches in range %s to %s",
			h.config.StartDate.Format("2006-01-02"), h.config.EndDate.Format("2006-01-02"))
	}

	h.logger.WithFields(logrus.Fields{
		"league":  h.config.League,
		"matches": len(targets),
		"corpus":  len(sorted),
	}).Info("Starting walk-forward backtest")

	workers := h.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	state := NewState()
	jobs := make(chan models.MatchRecord)
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if err := h.evaluateMatch(ctx, sorted, m, state); err != nil {
					select {
					case errCh <- err:
					default:
					}
				}
			}
		}()
	}

	started := time.Now()
dispatch:
	for _, m := range targets {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- m:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("backtest cancelled: %w", err)
	}
	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	metrics := ComputeMetrics(h.config, state, len(targets))
	h.logger.WithFields(logrus.Fields{
		"bets":     metrics.TotalBets,
		"wins":     metrics.Wins,
		"win_rate": fmt.Sprintf("%.1f%%", metrics.WinRate*100),
		"units":    metrics.NetUnits.StringFixed(2),
		"elapsed":  time.Since(started).Round(time.Millisecond).String(),
	}).Info("Backtest complete")

	return metrics, nil
}

// evaluateMatch predicts one match from its strictly earlier history, then
// settles the recommended predicate against the actual record.
func (h *Harness) evaluateMatch(ctx context.Context, sorted models.Corpus, m models.MatchRecord, state *State) error {
	history := sorted.Before(m.Date)
	if h.config.HistoryCap > 0 {
		history = history.Tail(h.config.HistoryCap)
	}

	fixture := models.Fixture{
		League:   m.League,
		Date:     m.Date,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
	}

	pred, err := h.predictor.Predict(ctx, fixture, history)
	if err != nil {
		return fmt.Errorf("predict %s vs %s on %s: %w",
			m.HomeTeam, m.AwayTeam, m.Date.Format("2006-01-02"), err)
	}

	st := Settlement{
		MatchDate: m.Date,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		Stake:     decimal.Zero,
		PnL:       decimal.Zero,
	}

	if pred.BestBet == nil {
		st.NoBet = true
		st.SkipReason = "no pattern cleared its threshold"
		state.Record(st)
		return nil
	}

	best := pred.BestBet
	pat, ok := h.catalog.Get(best.PatternName)
	if !ok {
		return fmt.Errorf("settle %s: %w", best.PatternName, models.ErrNotFound)
	}

	odds := h.config.payoutFor(best.PatternName)
	won := pat.Predicate(m)

	st.PatternName = best.PatternName
	st.Category = best.Category
	st.Confidence = best.RawConfidence
	st.RiskAdj = best.RiskAdjustedConfidence
	st.Threshold = best.ThresholdUsed
	st.PayoutOdds = odds
	st.Stake = h.config.FlatStake
	st.Won = won
	if won {
		st.PnL = h.config.FlatStake.Mul(decimal.NewFromFloat(odds - 1)).Round(4)
	} else {
		st.PnL = h.config.FlatStake.Neg()
	}

	state.Record(st)
	return nil
}
