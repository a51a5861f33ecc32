package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pitchside/internal/database"
	"github.com/yourusername/pitchside/internal/models"
)

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

const insertRecommendationQuery = `
	INSERT INTO recommendations (id, fixture_id, league, home_team, away_team, match_date,
	                             pattern_name, bet_type, confidence, risk_adjusted, threshold,
	                             expected_odds, expected_value, verdict, reasoning, kelly_stake, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`

const selectRecommendationColumns = `
	SELECT id, fixture_id, league, home_team, away_team, match_date,
	       pattern_name, bet_type, confidence, risk_adjusted, threshold,
	       expected_odds, expected_value, verdict, reasoning, kelly_stake, created_at
	FROM recommendations
`

// Create inserts a new recommendation
func (r *PostgresRecommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	_, err := r.db.GetPool().Exec(ctx, insertRecommendationQuery,
		rec.ID, rec.FixtureID, rec.League, rec.HomeTeam, rec.AwayTeam, rec.MatchDate,
		rec.PatternName, rec.BetType, rec.Confidence, rec.RiskAdjusted, rec.Threshold,
		rec.ExpectedOdds, rec.ExpectedValue, rec.Verdict, rec.Reasoning, rec.KellyStake, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}
	return nil
}

// CreateBatch inserts recommendations in one transaction
func (r *PostgresRecommendationRepository) CreateBatch(ctx context.Context, recs []models.Recommendation) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context) error {
		for i := range recs {
			if err := r.Create(ctx, &recs[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a recommendation by ID
func (r *PostgresRecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	rec := &models.Recommendation{}
	err := r.db.GetPool().QueryRow(ctx, selectRecommendationColumns+" WHERE id = $1", id).Scan(
		&rec.ID, &rec.FixtureID, &rec.League, &rec.HomeTeam, &rec.AwayTeam, &rec.MatchDate,
		&rec.PatternName, &rec.BetType, &rec.Confidence, &rec.RiskAdjusted, &rec.Threshold,
		&rec.ExpectedOdds, &rec.ExpectedValue, &rec.Verdict, &rec.Reasoning, &rec.KellyStake, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	return rec, nil
}

// GetByFixture retrieves all recommendations for a fixture
func (r *PostgresRecommendationRepository) GetByFixture(ctx context.Context, fixtureID string) ([]*models.Recommendation, error) {
	rows, err := r.db.GetPool().Query(ctx,
		selectRecommendationColumns+" WHERE fixture_id = $1 ORDER BY risk_adjusted DESC, pattern_name", fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec := &models.Recommendation{}
		if err := rows.Scan(
			&rec.ID, &rec.FixtureID, &rec.League, &rec.HomeTeam, &rec.AwayTeam, &rec.MatchDate,
			&rec.PatternName, &rec.BetType, &rec.Confidence, &rec.RiskAdjusted, &rec.Threshold,
			&rec.ExpectedOdds, &rec.ExpectedValue, &rec.Verdict, &rec.Reasoning, &rec.KellyStake, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
