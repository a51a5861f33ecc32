package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/confidence"
	"github.com/yourusername/pitchside/internal/metrics"
	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
)

// Predictor is the stable prediction interface implemented identically by
// every competition. The historical corpus passed to Predict must only
// contain matches dated strictly before the fixture; Predict re-filters the
// corpus against the fixture date before scoring.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, fixture models.Fixture, history models.Corpus) (*models.MatchPrediction, error)
}

// LeaguePredictor is the generic per-competition predictor. It is stateless
// per call apart from an optional read-through breakdown cache; concurrent
// Predict calls are safe once the catalog is frozen.
type LeaguePredictor struct {
	league   string
	catalog  *pattern.Catalog
	settings Settings
	logger   *logrus.Logger
	cache    *breakdownCache
}

// NewLeaguePredictor builds a predictor over a catalog. The catalog is
// frozen here; registration after this point is a configuration error.
func NewLeaguePredictor(league string, catalog *pattern.Catalog, settings Settings, logger *logrus.Logger) (*LeaguePredictor, error) {
	if league == "" {
		return nil, fmt.Errorf("league is required")
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("league %s: catalog is empty", league)
	}
	if logger == nil {
		logger = logrus.New()
	}
	catalog.Freeze()

	return &LeaguePredictor{
		league:   league,
		catalog:  catalog,
		settings: settings,
		logger:   logger,
		cache:    newBreakdownCache(settings.CacheTTL),
	}, nil
}

// Name returns the league key.
func (p *LeaguePredictor) Name() string {
	return p.league
}

// Predict evaluates every cataloged pattern for one fixture and selects at
// most one best bet. "No bet" is an expected, non-error outcome.
func (p *LeaguePredictor) Predict(ctx context.Context, fixture models.Fixture, history models.Corpus) (*models.MatchPrediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fixture.Date.IsZero() {
		return nil, fmt.Errorf("fixture date is required")
	}

	history = history.Before(fixture.Date).SortedByDate()
	if p.settings.HistoryCap > 0 {
		history = history.Tail(p.settings.HistoryCap)
	}

	recommendations := make([]models.Recommendation, 0, p.catalog.Len())
	for _, pat := range p.catalog.All() {
		rec, err := p.evaluatePattern(pat, fixture, history)
		if err != nil {
			// One failing pattern must not abort the rest of the match.
			p.logger.WithFields(logrus.Fields{
				"league":  p.league,
				"pattern": pat.Name,
				"fixture": fixture.ID(),
			}).WithError(err).Warn("Pattern evaluation failed, skipping")
			continue
		}
		recommendations = append(recommendations, rec)
	}

	best := selectBest(recommendations)

	prediction := &models.MatchPrediction{
		Fixture:         fixture,
		Recommendations: recommendations,
		BestBet:         best,
		MeanConfidence:  meanConfidence(recommendations),
	}

	return prediction, nil
}

// evaluatePattern computes one pattern's recommendation. Predicate panics
// are converted to errors so the caller can isolate them.
func (p *LeaguePredictor) evaluatePattern(pat pattern.Pattern, fixture models.Fixture, history models.Corpus) (rec models.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordPatternPanic()
			err = fmt.Errorf("predicate panic: %v", r)
		}
	}()
	metrics.RecordPatternEvaluation()

	raw, breakdown := p.confidenceFor(pat, fixture.Date, history)
	if breakdown.NoData {
		raw = priorFor(pat.Name, pat.Category)
	}

	threshold := p.adaptiveThreshold(pat, fixture, history)
	riskAdjusted := pattern.RiskAdjusted(raw, pat.Name)
	odds := p.expectedOddsFor(pat.Name)
	ev := expectedValue(raw, odds)

	verdict, reasoning := p.classify(pat, riskAdjusted, threshold, ev, len(history))

	rec = models.Recommendation{
		ID:            uuid.New(),
		FixtureID:     fixture.ID(),
		League:        p.league,
		HomeTeam:      fixture.HomeTeam,
		AwayTeam:      fixture.AwayTeam,
		MatchDate:     fixture.Date,
		PatternName:   pat.Name,
		BetType:       betDescription(pat),
		Confidence:    raw,
		RiskAdjusted:  riskAdjusted,
		Threshold:     threshold,
		ExpectedOdds:  odds,
		ExpectedValue: ev,
		Verdict:       verdict,
		Reasoning:     reasoning,
		CreatedAt:     time.Now().UTC(),
	}
	return rec, nil
}

func (p *LeaguePredictor) classify(pat pattern.Pattern, riskAdjusted, threshold, ev float64, historyLen int) (string, string) {
	if historyLen < pat.MinMatches {
		return models.VerdictNoBet, fmt.Sprintf("only %d historical matches, pattern requires %d", historyLen, pat.MinMatches)
	}
	if riskAdjusted < threshold {
		return models.VerdictNoBet, fmt.Sprintf("risk-adjusted confidence %.1f%% below threshold %.1f%%", riskAdjusted*100, threshold*100)
	}
	if ev <= p.settings.MinEdge {
		return models.VerdictMonitor, fmt.Sprintf("confidence clears threshold but expected value %.2f%% is below the edge minimum", ev*100)
	}
	return models.VerdictBet, fmt.Sprintf("risk-adjusted confidence %.1f%% exceeds threshold %.1f%%, EV %.2f%%", riskAdjusted*100, threshold*100, ev*100)
}

func (p *LeaguePredictor) confidenceFor(pat pattern.Pattern, asOf time.Time, history models.Corpus) (float64, confidence.Breakdown) {
	key := cacheKey(p.league, pat.Name, asOf, len(history))
	if entry, ok := p.cache.get(key); ok {
		return entry.confidence, entry.breakdown
	}

	conf, breakdown := confidence.Calculate(history, asOf, pat.Predicate, p.settings.engineParams())
	p.cache.put(key, cachedBreakdown{confidence: conf, breakdown: breakdown})
	return conf, breakdown
}

// selectBest picks the candidate with the maximum risk-adjusted confidence.
// Exact ties break toward the lexicographically smaller pattern name so the
// choice never depends on iteration order.
func selectBest(recommendations []models.Recommendation) *models.BestBet {
	var best *models.Recommendation
	for i := range recommendations {
		rec := &recommendations[i]
		if rec.Verdict != models.VerdictBet {
			continue
		}
		if best == nil ||
			rec.RiskAdjusted > best.RiskAdjusted ||
			(rec.RiskAdjusted == best.RiskAdjusted && rec.PatternName < best.PatternName) {
			best = rec
		}
	}
	if best == nil {
		return nil
	}
	return &models.BestBet{
		PatternName:            best.PatternName,
		Category:               string(pattern.Categorize(best.PatternName)),
		RawConfidence:          best.Confidence,
		RiskAdjustedConfidence: best.RiskAdjusted,
		ThresholdUsed:          best.Threshold,
	}
}

func meanConfidence(recommendations []models.Recommendation) float64 {
	if len(recommendations) == 0 {
		return 0
	}
	sum := 0.0
	for _, rec := range recommendations {
		sum += rec.Confidence
	}
	return sum / float64(len(recommendations))
}

func betDescription(pat pattern.Pattern) string {
	if pat.Description != "" {
		return pat.Description
	}
	return pat.Name
}
