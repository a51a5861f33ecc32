package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/datasource"
	"github.com/yourusername/pitchside/internal/metrics"
	"github.com/yourusername/pitchside/internal/repository"
)

// IngestionSummary reports the outcome of one ingestion pass.
type IngestionSummary struct {
	Fetched  int
	Written  int
	Rejected int
	Errors   int
	Elapsed  time.Duration
}

func (s IngestionSummary) String() string {
	return fmt.Sprintf("fetched=%d written=%d rejected=%d errors=%d elapsed=%s",
		s.Fetched, s.Written, s.Rejected, s.Errors, s.Elapsed.Round(time.Millisecond))
}

// IngestionService handles the data ingestion workflow
type IngestionService struct {
	sources   []datasource.MatchSource
	matchRepo repository.MatchRepository
	validator *DataValidator
	logger    *logrus.Logger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.MatchSource,
	matchRepo repository.MatchRepository,
	validator *DataValidator,
	logger *logrus.Logger,
) *IngestionService {
	if validator == nil {
		validator = NewDataValidator()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &IngestionService{
		sources:   sources,
		matchRepo: matchRepo,
		validator: validator,
		logger:    logger,
	}
}

// IngestSeason fetches one league season from every enabled source and
// upserts the validated records.
func (s *IngestionService) IngestSeason(ctx context.Context, league, season string) (*IngestionSummary, error) {
	started := time.Now()
	summary := &IngestionSummary{}

	for _, source := range s.sources {
		if !source.IsEnabled() {
			continue
		}

		records, err := source.FetchMatches(ctx, league, season)
		if err != nil {
			summary.Errors++
			s.logger.WithFields(logrus.Fields{
				"source": source.Name(),
				"league": league,
				"season": season,
			}).WithError(err).Warn("Source fetch failed")
			continue
		}
		summary.Fetched += len(records)

		valid, rejected := s.validator.FilterValid(records)
		summary.Rejected += rejected
		if rejected > 0 {
			s.logger.WithFields(logrus.Fields{
				"source":   source.Name(),
				"rejected": rejected,
			}).Warn("Rejected invalid match records")
		}

		written, err := s.matchRepo.UpsertBatch(ctx, valid)
		if err != nil {
			summary.Errors++
			s.logger.WithError(err).Error("Failed to persist matches")
			continue
		}
		summary.Written += written
		metrics.RecordIngestedMatches(source.Name(), written)
	}

	summary.Elapsed = time.Since(started)
	if summary.Errors > 0 && summary.Written == 0 {
		return summary, fmt.Errorf("ingestion failed for %s season %s", league, season)
	}

	s.logger.WithFields(logrus.Fields{
		"league":  league,
		"season":  season,
		"summary": summary.String(),
	}).Info("Season ingestion complete")
	return summary, nil
}

// IngestAll runs IngestSeason for every league and season combination.
func (s *IngestionService) IngestAll(ctx context.Context, leagues, seasons []string) (*IngestionSummary, error) {
	started := time.Now()
	total := &IngestionSummary{}

	for _, league := range leagues {
		for _, season := range seasons {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			summary, err := s.IngestSeason(ctx, league, season)
			if summary != nil {
				total.Fetched += summary.Fetched
				total.Written += summary.Written
				total.Rejected += summary.Rejected
				total.Errors += summary.Errors
			}
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"league": league,
					"season": season,
				}).WithError(err).Warn("Season ingestion failed, continuing")
			}
		}
	}

	total.Elapsed = time.Since(started)
	return total, nil
}
