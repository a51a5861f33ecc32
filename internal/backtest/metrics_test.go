package backtest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func settledState() *State {
	state := NewState()
	day := func(n int) time.Time { return backtestEnd.AddDate(0, 0, -n) }

	state.Record(Settlement{MatchDate: day(3), HomeTeam: "A", AwayTeam: "B",
		PatternName: "total_over_2_5_goals", Stake: decimal.NewFromInt(1), Won: true, PnL: decimal.NewFromFloat(0.9)})
	state.Record(Settlement{MatchDate: day(2), HomeTeam: "C", AwayTeam: "D",
		PatternName: "total_over_2_5_goals", Stake: decimal.NewFromInt(1), Won: false, PnL: decimal.NewFromInt(-1)})
	state.Record(Settlement{MatchDate: day(1), HomeTeam: "E", AwayTeam: "F",
		PatternName: "total_over_8_5_corners", Stake: decimal.NewFromInt(1), Won: true, PnL: decimal.NewFromFloat(0.85)})
	state.Record(Settlement{MatchDate: day(1), HomeTeam: "B", AwayTeam: "A",
		NoBet: true, SkipReason: "no pattern cleared its threshold", Stake: decimal.Zero, PnL: decimal.Zero})
	return state
}

func TestComputeMetrics(t *testing.T) {
	metrics := ComputeMetrics(testConfig(), settledState(), 4)

	if metrics.TotalBets != 3 || metrics.Wins != 2 || metrics.Losses != 1 || metrics.NoBets != 1 {
		t.Fatalf("unexpected counts: %+v", metrics)
	}
	if !metrics.NetUnits.Equal(decimal.NewFromFloat(0.75)) {
		t.Fatalf("expected net units 0.75, got %s", metrics.NetUnits)
	}
	if len(metrics.PatternResults) != 2 {
		t.Fatalf("expected 2 pattern results, got %d", len(metrics.PatternResults))
	}
	// Corners netted +0.85, goals netted -0.10: descending net units.
	if metrics.PatternResults[0].PatternName != "total_over_8_5_corners" {
		t.Fatalf("expected corners first, got %s", metrics.PatternResults[0].PatternName)
	}
	if metrics.PatternResults[1].Bets != 2 || metrics.PatternResults[1].Wins != 1 {
		t.Fatalf("unexpected goals stats: %+v", metrics.PatternResults[1])
	}
}

func TestMetricsToRun(t *testing.T) {
	metrics := ComputeMetrics(testConfig(), settledState(), 4)
	run := metrics.ToRun()

	if run.League != "test_league" || run.TotalMatches != 4 || run.TotalBets != 3 || run.WinningBets != 2 {
		t.Fatalf("unexpected run summary: %+v", run)
	}
	if run.UnitsStaked != 3 {
		t.Fatalf("expected 3 units staked, got %v", run.UnitsStaked)
	}
	if run.UnitsReturned != 3.75 {
		t.Fatalf("expected 3.75 units returned, got %v", run.UnitsReturned)
	}
	if run.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("run must carry a generated id")
	}
}

func TestStateSettlementsSorted(t *testing.T) {
	settlements := settledState().Settlements()
	for i := 1; i < len(settlements); i++ {
		prev, cur := settlements[i-1], settlements[i]
		if cur.MatchDate.Before(prev.MatchDate) {
			t.Fatalf("out of date order at %d", i)
		}
		if cur.MatchDate.Equal(prev.MatchDate) && cur.HomeTeam < prev.HomeTeam {
			t.Fatalf("out of team order at %d", i)
		}
	}
}

func TestCombine(t *testing.T) {
	a := ComputeMetrics(testConfig(), settledState(), 4)
	bCfg := testConfig()
	bCfg.League = "another_league"
	b := ComputeMetrics(bCfg, settledState(), 4)

	agg := Combine(a, nil, b)
	if len(agg.Leagues) != 2 || agg.Leagues[0] != "another_league" {
		t.Fatalf("expected sorted league list, got %v", agg.Leagues)
	}
	if agg.TotalBets != 6 || agg.Wins != 4 || agg.MatchesTested != 8 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
	if !agg.NetUnits.Equal(decimal.NewFromFloat(1.5)) {
		t.Fatalf("expected net units 1.50, got %s", agg.NetUnits)
	}
	if agg.Summary() == "" {
		t.Fatal("expected summary text")
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(dir)
	metrics := ComputeMetrics(testConfig(), settledState(), 4)

	path, err := reporter.ExportJSON(metrics)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written outside output dir: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded Metrics
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if decoded.League != metrics.League || decoded.TotalBets != metrics.TotalBets {
		t.Fatalf("report does not round-trip: %+v", decoded)
	}
}
