package pattern

import (
	"math"
	"testing"
)

func TestRiskPenaltyExactEntries(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"over_3_5_goals", 0.10},
		{"home_over_0_5_goals", 0.02},
		{"both_teams_to_score", 0.06},
		{"draw", 0.10},
		{"away_win", 0.09},
		{"total_over_9_5_corners", 0.03},
	}
	for _, tt := range tests {
		if got := RiskPenalty(tt.name); got != tt.want {
			t.Errorf("RiskPenalty(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRiskPenaltyCategoryFallback(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"total_over_12_5_corners", 0.03},
		{"total_over_6_5_goals", 0.06},
		{"away_over_3_5_cards", 0.04},
		{"total_over_30_5_shots", 0.04},
		{"home_win_to_nil", 0.08},
	}
	for _, tt := range tests {
		if _, exact := riskPenalties[tt.name]; exact {
			t.Fatalf("%s has an exact entry, test assumes fallback", tt.name)
		}
		if got := RiskPenalty(tt.name); got != tt.want {
			t.Errorf("RiskPenalty(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRiskPenaltyDefault(t *testing.T) {
	if got := RiskPenalty("mystery_market"); got != DefaultRiskPenalty {
		t.Fatalf("expected default penalty %v, got %v", DefaultRiskPenalty, got)
	}
}

func TestRiskAdjusted(t *testing.T) {
	if got := RiskAdjusted(0.80, "over_3_5_goals"); math.Abs(got-0.70) > 1e-9 {
		t.Fatalf("expected 0.70, got %v", got)
	}
	if got := RiskAdjusted(0.05, "draw"); got != 0 {
		t.Fatalf("expected clamp at 0, got %v", got)
	}
	if got := RiskAdjusted(0, "draw"); got != 0 {
		t.Fatalf("expected 0 to stay 0, got %v", got)
	}
}

func TestRiskAdjustedDeterministic(t *testing.T) {
	a := RiskAdjusted(0.731, "total_over_8_5_corners")
	b := RiskAdjusted(0.731, "total_over_8_5_corners")
	if a != b {
		t.Fatalf("risk adjustment not deterministic: %v vs %v", a, b)
	}
}
