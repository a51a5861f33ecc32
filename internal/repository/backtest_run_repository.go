package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/pitchside/internal/database"
	"github.com/yourusername/pitchside/internal/models"
)

// PostgresBacktestRunRepository implements BacktestRunRepository for PostgreSQL
type PostgresBacktestRunRepository struct {
	db *database.DB
}

// NewPostgresBacktestRunRepository creates a new backtest run repository
func NewPostgresBacktestRunRepository(db *database.DB) BacktestRunRepository {
	return &PostgresBacktestRunRepository{db: db}
}

// Create inserts a new backtest run summary
func (r *PostgresBacktestRunRepository) Create(ctx context.Context, run *models.BacktestRun) error {
	query := `
		INSERT INTO backtest_runs (id, league, start_date, end_date, total_matches, total_bets,
		                           winning_bets, win_rate, units_staked, units_returned, roi, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		run.ID, run.League, run.StartDate, run.EndDate, run.TotalMatches, run.TotalBets,
		run.WinningBets, run.WinRate, run.UnitsStaked, run.UnitsReturned, run.ROI, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create backtest run: %w", err)
	}
	return nil
}

// GetRecent retrieves the most recent runs for a league
func (r *PostgresBacktestRunRepository) GetRecent(ctx context.Context, league string, limit int) ([]*models.BacktestRun, error) {
	query := `
		SELECT id, league, start_date, end_date, total_matches, total_bets,
		       winning_bets, win_rate, units_staked, units_returned, roi, created_at
		FROM backtest_runs
		WHERE league = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.GetPool().Query(ctx, query, league, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.BacktestRun
	for rows.Next() {
		run := &models.BacktestRun{}
		if err := rows.Scan(
			&run.ID, &run.League, &run.StartDate, &run.EndDate, &run.TotalMatches, &run.TotalBets,
			&run.WinningBets, &run.WinRate, &run.UnitsStaked, &run.UnitsReturned, &run.ROI, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan backtest run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
