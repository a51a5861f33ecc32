// Package repository provides data access for matches, recommendations and
// backtest runs.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/pitchside/internal/models"
)

// MatchRepository persists and loads the historical match corpus.
type MatchRepository interface {
	// Upsert inserts a match or replaces its statistics when the same
	// league/date/teams row already exists.
	Upsert(ctx context.Context, match models.MatchRecord) error

	// UpsertBatch upserts a slice of matches in one transaction and returns
	// the number of rows written.
	UpsertBatch(ctx context.Context, matches []models.MatchRecord) (int, error)

	// LoadCorpus loads all matches for a league ordered by date.
	LoadCorpus(ctx context.Context, league string) (models.Corpus, error)

	// LoadCorpusBefore loads matches for a league dated strictly before cutoff.
	LoadCorpusBefore(ctx context.Context, league string, cutoff time.Time) (models.Corpus, error)
}

// RecommendationRepository persists emitted recommendations.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	CreateBatch(ctx context.Context, recs []models.Recommendation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
	GetByFixture(ctx context.Context, fixtureID string) ([]*models.Recommendation, error)
}

// BacktestRunRepository persists backtest run summaries.
type BacktestRunRepository interface {
	Create(ctx context.Context, run *models.BacktestRun) error
	GetRecent(ctx context.Context, league string, limit int) ([]*models.BacktestRun, error)
}
