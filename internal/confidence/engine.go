// Package confidence implements the multi-timeframe ensemble confidence
// calculation. The engine is stateless and purely functional: identical
// inputs always produce identical outputs.
package confidence

import (
	"math"
	"sort"
	"time"

	"github.com/yourusername/pitchside/internal/models"
)

// allHistoryDays is the sentinel for the zero-weight "entire available
// history" window. It never contributes to the weighted sum; it exists only
// as a trend reference.
const allHistoryDays = 99999

// Trend categories.
const (
	TrendStrongUptrend = "strong_uptrend"
	TrendDowntrend     = "downtrend"
	TrendStable        = "stable"
)

// Consistency categories.
const (
	ConsistencyHigh     = "high"
	ConsistencyModerate = "moderate"
	ConsistencyLow      = "low"
)

// Sample quality categories.
const (
	SampleSufficient   = "sufficient"
	SampleAdequate     = "adequate"
	SampleInsufficient = "insufficient"
)

// Weights maps a trailing window length in days to its ensemble weight.
type Weights map[int]float64

// DefaultWeights returns the baseline timeframe weighting. Short windows
// capture current form, long windows anchor against noise. Tunable per
// competition.
func DefaultWeights() Weights {
	return Weights{
		7:   0.30,
		14:  0.23,
		30:  0.18,
		90:  0.14,
		365: 0.10,
		730: 0.05,
	}
}

// Params configures one confidence calculation.
type Params struct {
	Weights           Weights
	MinMatches7d      int
	MinMatches30d     int
	IncludeAllHistory bool
}

// DefaultParams returns the baseline calibration.
func DefaultParams() Params {
	return Params{
		Weights:           DefaultWeights(),
		MinMatches7d:      3,
		MinMatches30d:     10,
		IncludeAllHistory: true,
	}
}

// TimeframeResult is the hit rate observed inside one trailing window.
type TimeframeResult struct {
	Days    int     `json:"days"`
	Matches int     `json:"matches"`
	HitRate float64 `json:"hit_rate"`
	Weight  float64 `json:"weight"`
}

// Breakdown explains how a final confidence was assembled. Produced fresh per
// query and never persisted by this engine.
type Breakdown struct {
	Timeframes            []TimeframeResult `json:"timeframes"`
	Ensemble              float64           `json:"ensemble_confidence"`
	Trend                 string            `json:"trend"`
	TrendAdjustment       float64           `json:"trend_adjustment"`
	Consistency           string            `json:"consistency"`
	ConsistencyAdjustment float64           `json:"consistency_adjustment"`
	StdDev                float64           `json:"std_dev"`
	SampleQuality         string            `json:"sample_quality"`
	SampleAdjustment      float64           `json:"sample_adjustment"`
	Matches7d             int               `json:"matches_7d"`
	Matches30d            int               `json:"matches_30d"`
	Final                 float64           `json:"final_confidence"`
	NoData                bool              `json:"no_data"`
}

// Calculate computes a pattern's confidence for a match at asOf, using only
// corpus records dated strictly earlier than asOf. The ensemble combines hit
// rates across trailing windows weighted toward recent form, then applies
// trend, consistency and sample-size adjustments.
//
// A window with zero matches is omitted from the weighted sum and its weight
// does not count toward the normalization denominator: missing history is
// never treated as 0% confidence. When no window anywhere has matches the
// result is a neutral 0.5 with the NoData flag set.
func Calculate(corpus models.Corpus, asOf time.Time, predicate func(models.MatchRecord) bool, p Params) (float64, Breakdown) {
	weights := p.Weights
	if len(weights) == 0 {
		weights = DefaultWeights()
	}

	windows := windowSet(weights, corpus, asOf, p.IncludeAllHistory)

	results := make(map[int]TimeframeResult, len(windows))
	var rates []float64
	for _, w := range windows {
		var subset models.Corpus
		if w.days == allHistoryDays {
			subset = corpus.Before(asOf)
		} else {
			subset = corpus.Window(asOf.AddDate(0, 0, -w.days), asOf)
		}
		if len(subset) == 0 {
			continue
		}
		hits := 0
		for _, m := range subset {
			if predicate(m) {
				hits++
			}
		}
		result := TimeframeResult{
			Days:    w.days,
			Matches: len(subset),
			HitRate: float64(hits) / float64(len(subset)),
			Weight:  w.weight,
		}
		results[w.days] = result
		if w.weight > 0 {
			rates = append(rates, result.HitRate)
		}
	}

	if len(results) == 0 {
		return 0.5, Breakdown{Final: 0.5, Trend: TrendStable, SampleQuality: SampleInsufficient, NoData: true}
	}

	ensemble := weightedEnsemble(results)
	breakdown := Breakdown{
		Timeframes: sortedTimeframes(results),
		Ensemble:   ensemble,
	}

	breakdown.Trend, breakdown.TrendAdjustment = classifyTrend(results, ensemble)
	breakdown.Consistency, breakdown.ConsistencyAdjustment, breakdown.StdDev = classifyConsistency(rates)
	breakdown.Matches7d = results[7].Matches
	breakdown.Matches30d = results[30].Matches
	breakdown.SampleQuality, breakdown.SampleAdjustment = classifySample(breakdown.Matches7d, breakdown.Matches30d, p.MinMatches7d, p.MinMatches30d)

	final := ensemble + breakdown.TrendAdjustment + breakdown.ConsistencyAdjustment + breakdown.SampleAdjustment
	breakdown.Final = clamp01(final)

	return breakdown.Final, breakdown
}

type window struct {
	days   int
	weight float64
}

func windowSet(weights Weights, corpus models.Corpus, asOf time.Time, includeAllHistory bool) []window {
	days := make([]int, 0, len(weights)+1)
	for d := range weights {
		days = append(days, d)
	}
	sort.Ints(days)

	windows := make([]window, 0, len(days)+1)
	for _, d := range days {
		windows = append(windows, window{days: d, weight: weights[d]})
	}

	// The all-history window carries zero weight and is only added when the
	// corpus reaches further back than the longest configured window.
	if includeAllHistory && len(days) > 0 {
		earliest := corpus.EarliestDate()
		longest := days[len(days)-1]
		if !earliest.IsZero() && int(asOf.Sub(earliest).Hours()/24) > longest {
			windows = append(windows, window{days: allHistoryDays, weight: 0})
		}
	}
	return windows
}

func weightedEnsemble(results map[int]TimeframeResult) float64 {
	sum := 0.0
	totalWeight := 0.0
	for _, r := range results {
		if r.Weight > 0 {
			sum += r.HitRate * r.Weight
			totalWeight += r.Weight
		}
	}
	if totalWeight == 0 {
		return 0.5
	}
	return sum / totalWeight
}

// classifyTrend compares short-window form against longer anchors. Missing
// windows substitute the ensemble value so a sparse corpus reads as stable.
func classifyTrend(results map[int]TimeframeResult, ensemble float64) (string, float64) {
	rate := func(days int) float64 {
		if r, ok := results[days]; ok {
			return r.HitRate
		}
		return ensemble
	}

	deltaShort := rate(7) - rate(30)
	deltaLong := rate(30) - rate(365)

	switch {
	case deltaShort > 0.03 && deltaLong >= -0.02:
		return TrendStrongUptrend, 0.02
	case deltaShort < -0.03 && deltaLong <= 0.02:
		return TrendDowntrend, -0.02
	default:
		return TrendStable, 0
	}
}

func classifyConsistency(rates []float64) (string, float64, float64) {
	std := 0.0
	if len(rates) > 1 {
		std = stdDev(rates)
	}
	switch {
	case std < 0.03:
		return ConsistencyHigh, 0.01, std
	case std < 0.05:
		return ConsistencyModerate, 0, std
	default:
		return ConsistencyLow, -0.02, std
	}
}

// classifySample validates the 7 and 30 day match counts against the
// configured minimums. The adequate band tolerates being one short on the
// weekly count and two short on the monthly count, with absolute floors of 2
// and 8 matches.
func classifySample(matches7d, matches30d, min7d, min30d int) (string, float64) {
	if matches7d >= min7d && matches30d >= min30d {
		return SampleSufficient, 0
	}
	if matches7d >= maxInt(2, min7d-1) && matches30d >= maxInt(8, min30d-2) {
		return SampleAdequate, -0.02
	}
	return SampleInsufficient, -0.05
}

func sortedTimeframes(results map[int]TimeframeResult) []TimeframeResult {
	timeframes := make([]TimeframeResult, 0, len(results))
	for _, r := range results {
		timeframes = append(timeframes, r)
	}
	sort.Slice(timeframes, func(i, j int) bool { return timeframes[i].Days < timeframes[j].Days })
	return timeframes
}

func stdDev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
