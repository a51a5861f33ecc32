package backtest

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
)

// fakePredictor returns a fixed best bet and records every history slice it
// was handed so tests can check for lookahead.
type fakePredictor struct {
	mu          sync.Mutex
	betPattern  string
	err         error
	calls       int
	violations  int
	historyLens map[string]int
}

func (f *fakePredictor) Name() string { return "test_league" }

func (f *fakePredictor) Predict(ctx context.Context, fixture models.Fixture, history models.Corpus) (*models.MatchPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.historyLens == nil {
		f.historyLens = make(map[string]int)
	}
	f.historyLens[fixture.ID()] = len(history)
	for _, m := range history {
		if !m.Date.Before(fixture.Date) {
			f.violations++
		}
	}

	if f.err != nil {
		return nil, f.err
	}

	prediction := &models.MatchPrediction{Fixture: fixture}
	if f.betPattern != "" {
		prediction.BestBet = &models.BestBet{
			PatternName:            f.betPattern,
			Category:               "goals",
			RawConfidence:          0.78,
			RiskAdjustedConfidence: 0.72,
			ThresholdUsed:          0.65,
		}
	}
	return prediction, nil
}

var backtestEnd = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

// replayCorpus builds one match per day ending at backtestEnd, with total
// goals taken round-robin from the goals slice (oldest match first).
func replayCorpus(days int, goals []float64) models.Corpus {
	corpus := make(models.Corpus, 0, days)
	for i := 0; i < days; i++ {
		corpus = append(corpus, models.MatchRecord{
			League:   "test_league",
			Date:     backtestEnd.AddDate(0, 0, -(days - 1 - i)),
			HomeTeam: fmt.Sprintf("Home%02d", i),
			AwayTeam: fmt.Sprintf("Away%02d", i),
			Stats: map[string]float64{
				models.StatHomeGoals: goals[i%len(goals)],
				models.StatAwayGoals: 0,
			},
		})
	}
	return corpus
}

func testCatalog(t *testing.T) *pattern.Catalog {
	t.Helper()
	c := pattern.NewCatalog()
	err := c.Register(pattern.Pattern{
		Name:             "total_over_2_5_goals",
		Predicate:        pattern.TotalOver(models.StatHomeGoals, models.StatAwayGoals, 2.5),
		DefaultThreshold: 0.65,
		MinMatches:       5,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return c
}

func testConfig() Config {
	return Config{
		League:        "test_league",
		StartDate:     backtestEnd.AddDate(0, 0, -9),
		EndDate:       backtestEnd,
		FlatStake:     decimal.NewFromInt(1),
		PayoutOdds:    map[string]float64{"total_over_2_5_goals": 1.9},
		DefaultPayout: 1.8,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestHarnessSettlesAgainstActualResults(t *testing.T) {
	// 20-day corpus, last 10 days in range, alternating 3 and 1 total goals
	// starting with a hit on the oldest in-range match.
	corpus := replayCorpus(20, []float64{3, 1})
	pred := &fakePredictor{betPattern: "total_over_2_5_goals"}

	h, err := NewHarness(testConfig(), pred, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}

	metrics, err := h.Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if metrics.MatchesTested != 10 {
		t.Fatalf("expected 10 matches tested, got %d", metrics.MatchesTested)
	}
	if metrics.TotalBets != 10 || metrics.Wins != 5 || metrics.Losses != 5 {
		t.Fatalf("expected 10 bets 5/5, got bets=%d wins=%d losses=%d",
			metrics.TotalBets, metrics.Wins, metrics.Losses)
	}
	if metrics.WinRate != 0.5 {
		t.Fatalf("expected win rate 0.5, got %v", metrics.WinRate)
	}

	// 5 wins at 1.9 payout return 0.9 each; 5 losses cost the full stake.
	wantNet := decimal.NewFromFloat(-0.5)
	if !metrics.NetUnits.Equal(wantNet) {
		t.Fatalf("expected net units %s, got %s", wantNet, metrics.NetUnits)
	}
	if !metrics.TotalStaked.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected 10 units staked, got %s", metrics.TotalStaked)
	}
	if metrics.ROI != -0.05 {
		t.Fatalf("expected ROI -0.05, got %v", metrics.ROI)
	}
}

func TestHarnessNeverLeaksFutureMatches(t *testing.T) {
	corpus := replayCorpus(30, []float64{3})
	pred := &fakePredictor{betPattern: "total_over_2_5_goals"}

	h, err := NewHarness(testConfig(), pred, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	if _, err := h.Run(context.Background(), corpus); err != nil {
		t.Fatalf("run: %v", err)
	}

	if pred.violations != 0 {
		t.Fatalf("%d history records dated at or after their fixture", pred.violations)
	}
	// Every in-range match must have seen exactly the matches before it:
	// the corpus has one match per day, so the oldest in-range match (day 21
	// of 30) sees 20 and each later one sees one more.
	for i := 0; i < 10; i++ {
		m := corpus[20+i]
		fixture := models.Fixture{Date: m.Date, HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
		if got := pred.historyLens[fixture.ID()]; got != 20+i {
			t.Fatalf("fixture %s saw %d historical matches, want %d", fixture.ID(), got, 20+i)
		}
	}
}

func TestHarnessHistoryCap(t *testing.T) {
	corpus := replayCorpus(30, []float64{3})
	pred := &fakePredictor{betPattern: "total_over_2_5_goals"}

	cfg := testConfig()
	cfg.HistoryCap = 5
	h, err := NewHarness(cfg, pred, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	if _, err := h.Run(context.Background(), corpus); err != nil {
		t.Fatalf("run: %v", err)
	}

	for id, n := range pred.historyLens {
		if n != 5 {
			t.Fatalf("fixture %s saw %d historical matches, cap is 5", id, n)
		}
	}
}

func TestHarnessRecordsNoBets(t *testing.T) {
	corpus := replayCorpus(20, []float64{3})
	pred := &fakePredictor{}

	h, err := NewHarness(testConfig(), pred, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	metrics, err := h.Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if metrics.TotalBets != 0 || metrics.NoBets != 10 {
		t.Fatalf("expected 0 bets and 10 no-bets, got %d and %d", metrics.TotalBets, metrics.NoBets)
	}
	if metrics.WinRate != 0 || metrics.ROI != 0 {
		t.Fatalf("empty run must report zero rate and ROI, got %v and %v", metrics.WinRate, metrics.ROI)
	}
	for _, st := range metrics.Settlements {
		if !st.NoBet || st.SkipReason == "" {
			t.Fatalf("expected skip settlements, got %+v", st)
		}
		if !st.Stake.IsZero() || !st.PnL.IsZero() {
			t.Fatalf("no-bet settlement must not move money: %+v", st)
		}
	}
}

func TestHarnessSettlementsAreOrdered(t *testing.T) {
	corpus := replayCorpus(20, []float64{3, 1})
	pred := &fakePredictor{betPattern: "total_over_2_5_goals"}

	cfg := testConfig()
	cfg.Workers = 4
	h, err := NewHarness(cfg, pred, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	metrics, err := h.Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for i := 1; i < len(metrics.Settlements); i++ {
		prev, cur := metrics.Settlements[i-1], metrics.Settlements[i]
		if cur.MatchDate.Before(prev.MatchDate) {
			t.Fatalf("settlements out of order at %d: %s before %s", i, cur.MatchDate, prev.MatchDate)
		}
	}
}

func TestHarnessPropagatesPredictorErrors(t *testing.T) {
	corpus := replayCorpus(20, []float64{3})
	pred := &fakePredictor{err: fmt.Errorf("boom")}

	h, err := NewHarness(testConfig(), pred, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	if _, err := h.Run(context.Background(), corpus); err == nil {
		t.Fatal("expected predictor error to surface")
	}
}

func TestHarnessEmptyRangeFails(t *testing.T) {
	corpus := replayCorpus(5, []float64{3})
	cfg := testConfig()
	cfg.StartDate = backtestEnd.AddDate(1, 0, 0)
	cfg.EndDate = backtestEnd.AddDate(1, 0, 1)

	h, err := NewHarness(cfg, &fakePredictor{}, testCatalog(t), testLogger())
	if err != nil {
		t.Fatalf("new harness: %v", err)
	}
	if _, err := h.Run(context.Background(), corpus); err == nil {
		t.Fatal("expected error for empty test range")
	}
}

func TestNewHarnessValidation(t *testing.T) {
	catalog := testCatalog(t)
	pred := &fakePredictor{}

	if _, err := NewHarness(Config{}, pred, catalog, testLogger()); err == nil {
		t.Fatal("expected invalid config error")
	}
	if _, err := NewHarness(testConfig(), nil, catalog, testLogger()); err == nil {
		t.Fatal("expected missing predictor error")
	}
	if _, err := NewHarness(testConfig(), pred, nil, testLogger()); err == nil {
		t.Fatal("expected missing catalog error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing league", func(c *Config) { c.League = "" }},
		{"missing dates", func(c *Config) { c.StartDate, c.EndDate = time.Time{}, time.Time{} }},
		{"inverted dates", func(c *Config) { c.StartDate, c.EndDate = c.EndDate, c.StartDate.AddDate(0, 0, -20) }},
		{"zero stake", func(c *Config) { c.FlatStake = decimal.Zero }},
		{"payout at evens", func(c *Config) { c.DefaultPayout = 1.0 }},
		{"negative cap", func(c *Config) { c.HistoryCap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	if err := testConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestConfigPayoutFor(t *testing.T) {
	cfg := testConfig()
	if got := cfg.payoutFor("total_over_2_5_goals"); got != 1.9 {
		t.Fatalf("expected configured payout 1.9, got %v", got)
	}
	if got := cfg.payoutFor("unlisted_pattern"); got != cfg.DefaultPayout {
		t.Fatalf("expected default payout, got %v", got)
	}
}
