// Package scheduler runs recurring ingestion and prediction jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/service"
)

// FixtureProvider supplies the fixtures to predict on a scheduled run.
type FixtureProvider func(ctx context.Context) ([]models.Fixture, error)

// Scheduler manages scheduled ingestion and prediction jobs
type Scheduler struct {
	cron            *cron.Cron
	ingestionSvc    *service.IngestionService
	predictionSvc   *service.PredictionService
	logger          *logrus.Logger
	mu              sync.Mutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(ingestionSvc *service.IngestionService, predictionSvc *service.PredictionService, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc:    ingestionSvc,
		predictionSvc:   predictionSvc,
		logger:          logger,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleHistoricalSync schedules recurring season synchronization for the
// given leagues and seasons.
func (s *Scheduler) ScheduleHistoricalSync(cronExpression string, leagues, seasons []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
		defer cancel()

		s.logger.WithFields(logrus.Fields{
			"leagues": leagues,
			"seasons": seasons,
		}).Info("Starting scheduled historical sync")

		summary, err := s.ingestionSvc.IngestAll(ctx, leagues, seasons)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled historical sync failed")
			return
		}
		s.logger.WithField("summary", summary.String()).Info("Scheduled historical sync completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled historical sync job")
	return nil
}

// ScheduleDailyPredictions schedules prediction runs over fixtures supplied
// by the provider.
func (s *Scheduler) ScheduleDailyPredictions(cronExpression string, provider FixtureProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if provider == nil {
		return fmt.Errorf("fixture provider is required")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		fixtures, err := provider(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Failed to load fixtures for scheduled prediction")
			return
		}
		if len(fixtures) == 0 {
			s.logger.Info("No fixtures to predict")
			return
		}

		predictions, err := s.predictionSvc.PredictFixtures(ctx, fixtures)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled prediction run failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"fixtures":    len(fixtures),
			"predictions": len(predictions),
		}).Info("Scheduled prediction run completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled daily prediction job")
	return nil
}

// Start begins executing scheduled jobs
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish, bounded by
// the graceful timeout.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("Scheduler stopped")
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}
	s.isRunning = false
	return nil
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
