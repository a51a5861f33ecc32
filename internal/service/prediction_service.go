package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/bankroll"
	"github.com/yourusername/pitchside/internal/logger"
	"github.com/yourusername/pitchside/internal/metrics"
	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
	"github.com/yourusername/pitchside/internal/predictor"
	"github.com/yourusername/pitchside/internal/repository"
)

// PredictionService builds per-league predictors, runs them against
// fixtures and persists the resulting recommendations.
type PredictionService struct {
	predictors map[string]predictor.Predictor
	matchRepo  repository.MatchRepository
	recRepo    repository.RecommendationRepository
	staker     *bankroll.Staker
	bankroll   decimal.Decimal
	audit      *logger.AuditLogger
	log        *logrus.Logger
}

// NewPredictionService wires one predictor per configured league. Settings
// are keyed by league name; leagues without a pattern set fall back to the
// default catalog.
func NewPredictionService(
	settings map[string]predictor.Settings,
	matchRepo repository.MatchRepository,
	recRepo repository.RecommendationRepository,
	initialBankroll decimal.Decimal,
	log *logrus.Logger,
) (*PredictionService, error) {
	if log == nil {
		log = logrus.New()
	}

	predictors := make(map[string]predictor.Predictor, len(settings))
	for league, s := range settings {
		catalog := pattern.NewCatalog()
		if err := pattern.RegisterLeague(catalog, league); err != nil {
			return nil, fmt.Errorf("failed to register patterns for %s: %w", league, err)
		}
		pred, err := predictor.NewLeaguePredictor(league, catalog, s, log)
		if err != nil {
			return nil, fmt.Errorf("failed to build predictor for %s: %w", league, err)
		}
		predictors[league] = pred
	}

	return &PredictionService{
		predictors: predictors,
		matchRepo:  matchRepo,
		recRepo:    recRepo,
		staker:     bankroll.NewStaker(),
		bankroll:   initialBankroll,
		audit:      logger.NewAuditLogger(log),
		log:        log,
	}, nil
}

// PredictorFor returns the predictor for a league.
func (s *PredictionService) PredictorFor(league string) (predictor.Predictor, error) {
	pred, ok := s.predictors[league]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrLeagueNotConfigured, league)
	}
	return pred, nil
}

// PredictFixture loads the league corpus before the fixture date, produces
// the prediction and persists every recommendation.
func (s *PredictionService) PredictFixture(ctx context.Context, fixture models.Fixture) (*models.MatchPrediction, error) {
	pred, err := s.PredictorFor(fixture.League)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	history, err := s.matchRepo.LoadCorpusBefore(ctx, fixture.League, fixture.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", fixture.League, err)
	}
	metrics.UpdateCorpusSize(fixture.League, len(history))

	prediction, err := pred.Predict(ctx, fixture, history)
	if err != nil {
		return nil, err
	}
	metrics.RecordPrediction(time.Since(started).Seconds())

	s.applyStakes(prediction)

	if s.recRepo != nil {
		if err := s.recRepo.CreateBatch(ctx, prediction.Recommendations); err != nil {
			s.log.WithError(err).Warn("Failed to persist recommendations")
		}
	}

	for _, rec := range prediction.Recommendations {
		metrics.RecordRecommendation(rec.Verdict)
		s.audit.LogRecommendation(rec.ID.String(), rec.League, rec.FixtureID,
			rec.PatternName, rec.Verdict, rec.Confidence, rec.RiskAdjusted,
			rec.Threshold, rec.CreatedAt)
	}
	if prediction.BestBet == nil {
		s.audit.LogNoBet(fixture.League, fixture.ID(), "no pattern cleared its threshold")
	}

	return prediction, nil
}

// PredictFixtures runs PredictFixture for each fixture in order, skipping
// failures so one bad fixture does not abort the batch.
func (s *PredictionService) PredictFixtures(ctx context.Context, fixtures []models.Fixture) ([]*models.MatchPrediction, error) {
	var predictions []*models.MatchPrediction
	for _, fixture := range fixtures {
		if err := ctx.Err(); err != nil {
			return predictions, err
		}
		prediction, err := s.PredictFixture(ctx, fixture)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"fixture": fixture.ID(),
				"league":  fixture.League,
			}).WithError(err).Warn("Fixture prediction failed, skipping")
			continue
		}
		predictions = append(predictions, prediction)
	}
	if len(predictions) == 0 && len(fixtures) > 0 {
		return nil, fmt.Errorf("all %d fixture predictions failed", len(fixtures))
	}
	return predictions, nil
}

// applyStakes fills the Kelly stake on BET recommendations. Staking errors
// leave the stake at zero.
func (s *PredictionService) applyStakes(prediction *models.MatchPrediction) {
	if s.bankroll.Sign() <= 0 {
		return
	}
	for i := range prediction.Recommendations {
		rec := &prediction.Recommendations[i]
		if rec.Verdict != models.VerdictBet {
			continue
		}
		stake, err := s.staker.Stake(rec.RiskAdjusted, rec.ExpectedOdds, s.bankroll)
		if err != nil {
			s.log.WithField("pattern", rec.PatternName).WithError(err).Debug("Stake calculation failed")
			continue
		}
		rec.KellyStake, _ = stake.Float64()
	}
}
