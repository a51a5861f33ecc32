package database

import (
	"context"
	"fmt"

	"github.com/yourusername/pitchside/internal/config"
)

// schema holds the DDL applied on startup. Statements are idempotent so
// repeated initialization is safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS matches (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		league      TEXT NOT NULL,
		match_date  DATE NOT NULL,
		home_team   TEXT NOT NULL,
		away_team   TEXT NOT NULL,
		stats       JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (league, match_date, home_team, away_team)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_league_date ON matches (league, match_date)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id              UUID PRIMARY KEY,
		fixture_id      TEXT NOT NULL,
		league          TEXT NOT NULL,
		home_team       TEXT NOT NULL,
		away_team       TEXT NOT NULL,
		match_date      DATE NOT NULL,
		pattern_name    TEXT NOT NULL,
		bet_type        TEXT NOT NULL,
		confidence      DOUBLE PRECISION NOT NULL,
		risk_adjusted   DOUBLE PRECISION NOT NULL,
		threshold       DOUBLE PRECISION NOT NULL,
		expected_odds   DOUBLE PRECISION NOT NULL,
		expected_value  DOUBLE PRECISION NOT NULL,
		verdict         TEXT NOT NULL,
		reasoning       TEXT NOT NULL DEFAULT '',
		kelly_stake     DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_fixture ON recommendations (fixture_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_league_date ON recommendations (league, match_date)`,
	`CREATE TABLE IF NOT EXISTS backtest_runs (
		id              UUID PRIMARY KEY,
		league          TEXT NOT NULL,
		start_date      DATE NOT NULL,
		end_date        DATE NOT NULL,
		total_matches   INTEGER NOT NULL,
		total_bets      INTEGER NOT NULL,
		winning_bets    INTEGER NOT NULL,
		win_rate        DOUBLE PRECISION NOT NULL,
		units_staked    DOUBLE PRECISION NOT NULL,
		units_returned  DOUBLE PRECISION NOT NULL,
		roi             DOUBLE PRECISION NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_backtest_runs_league ON backtest_runs (league, created_at)`,
}

// Initialize creates a database connection pool and applies the schema.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return db, nil
}
