// Package metrics provides the centralized Prometheus metrics registry for
// the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "predictions_total",
		Help:      "Total number of match predictions produced",
	})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "recommendations_total",
		Help:      "Total recommendations emitted by verdict",
	}, []string{"verdict"})
	PatternEvaluationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "pattern_evaluations_total",
		Help:      "Total number of pattern evaluations",
	})
	PatternPanicsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "pattern_panics_total",
		Help:      "Total pattern evaluations recovered from a panic",
	})
	IngestedMatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "ingested_matches_total",
		Help:      "Total matches ingested by source",
	}, []string{"source"})
	BacktestRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitchside",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs executed",
	})
)

// Gauge metrics
var (
	CorpusSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pitchside",
		Name:      "corpus_size",
		Help:      "Number of historical matches loaded per league",
	}, []string{"league"})
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pitchside",
		Name:      "current_bankroll",
		Help:      "Current bankroll in currency units",
	})
	LastBacktestWinRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pitchside",
		Name:      "last_backtest_win_rate",
		Help:      "Win rate of the most recent backtest per league",
	}, []string{"league"})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitchside",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of single-match predictions in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitchside",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(PatternEvaluationsTotal)
		registry.MustRegister(PatternPanicsTotal)
		registry.MustRegister(IngestedMatchesTotal)
		registry.MustRegister(BacktestRunsTotal)

		registry.MustRegister(CorpusSize)
		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(LastBacktestWinRate)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records one completed match prediction.
func RecordPrediction(durationSeconds float64) {
	PredictionsTotal.Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordRecommendation records an emitted recommendation by verdict.
func RecordRecommendation(verdict string) {
	RecommendationsTotal.WithLabelValues(verdict).Inc()
}

// RecordPatternEvaluation records a pattern evaluation.
func RecordPatternEvaluation() {
	PatternEvaluationsTotal.Inc()
}

// RecordPatternPanic records a recovered pattern panic.
func RecordPatternPanic() {
	PatternPanicsTotal.Inc()
}

// RecordIngestedMatches records matches loaded from a source.
func RecordIngestedMatches(source string, count int) {
	IngestedMatchesTotal.WithLabelValues(source).Add(float64(count))
}

// RecordBacktest records a completed backtest run.
func RecordBacktest(league string, winRate, durationSeconds float64) {
	BacktestRunsTotal.Inc()
	LastBacktestWinRate.WithLabelValues(league).Set(winRate)
	BacktestDuration.Observe(durationSeconds)
}

// UpdateCorpusSize updates the loaded corpus size gauge for a league.
func UpdateCorpusSize(league string, size int) {
	CorpusSize.WithLabelValues(league).Set(float64(size))
}

// UpdateBankroll updates the current bankroll gauge.
func UpdateBankroll(amount float64) {
	CurrentBankroll.Set(amount)
}
