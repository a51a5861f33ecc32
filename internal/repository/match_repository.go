package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourusername/pitchside/internal/database"
	"github.com/yourusername/pitchside/internal/models"
)

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

const upsertMatchQuery = `
	INSERT INTO matches (league, match_date, home_team, away_team, stats)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (league, match_date, home_team, away_team)
	DO UPDATE SET stats = EXCLUDED.stats
`

// Upsert inserts or replaces one match record
func (r *PostgresMatchRepository) Upsert(ctx context.Context, match models.MatchRecord) error {
	stats, err := json.Marshal(match.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal match stats: %w", err)
	}

	_, err = r.db.GetPool().Exec(ctx, upsertMatchQuery,
		match.League, match.Date, match.HomeTeam, match.AwayTeam, stats,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}
	return nil
}

// UpsertBatch upserts matches in one transaction
func (r *PostgresMatchRepository) UpsertBatch(ctx context.Context, matches []models.MatchRecord) (int, error) {
	written := 0
	err := r.db.WithTransaction(ctx, func(ctx context.Context) error {
		for _, match := range matches {
			if err := r.Upsert(ctx, match); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// LoadCorpus loads all matches for a league ordered by date
func (r *PostgresMatchRepository) LoadCorpus(ctx context.Context, league string) (models.Corpus, error) {
	query := `
		SELECT league, match_date, home_team, away_team, stats
		FROM matches
		WHERE league = $1
		ORDER BY match_date, home_team
	`
	return r.queryCorpus(ctx, query, league)
}

// LoadCorpusBefore loads matches strictly before cutoff
func (r *PostgresMatchRepository) LoadCorpusBefore(ctx context.Context, league string, cutoff time.Time) (models.Corpus, error) {
	query := `
		SELECT league, match_date, home_team, away_team, stats
		FROM matches
		WHERE league = $1 AND match_date < $2
		ORDER BY match_date, home_team
	`
	return r.queryCorpus(ctx, query, league, cutoff)
}

func (r *PostgresMatchRepository) queryCorpus(ctx context.Context, query string, args ...interface{}) (models.Corpus, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var corpus models.Corpus
	for rows.Next() {
		var m models.MatchRecord
		var stats []byte
		if err := rows.Scan(&m.League, &m.Date, &m.HomeTeam, &m.AwayTeam, &stats); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if err := json.Unmarshal(stats, &m.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match stats: %w", err)
		}
		corpus = append(corpus, m)
	}
	return corpus, rows.Err()
}
