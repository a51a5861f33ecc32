package repository

import (
	"fmt"

	"github.com/yourusername/pitchside/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Match          MatchRepository
	Recommendation RecommendationRepository
	BacktestRun    BacktestRunRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Match:          NewPostgresMatchRepository(db),
		Recommendation: NewPostgresRecommendationRepository(db),
		BacktestRun:    NewPostgresBacktestRunRepository(db),
	}, nil
}
