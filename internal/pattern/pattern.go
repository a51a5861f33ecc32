// Package pattern provides the bet pattern catalog and risk penalty table.
package pattern

import (
	"fmt"

	"github.com/yourusername/pitchside/internal/models"
)

// Predicate is a pure boolean function over a single match record. Predicates
// must not access anything beyond the record passed in, so evaluation across
// many (pattern, match) pairs is safe from any goroutine.
type Predicate func(models.MatchRecord) bool

// Pattern is a named bet predicate with its metadata.
type Pattern struct {
	Name             string
	Category         Category
	Predicate        Predicate
	DefaultThreshold float64
	MinMatches       int
	Description      string
}

// Validate checks pattern metadata. Violations are configuration errors,
// fatal at catalog build time.
func (p Pattern) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pattern name is required")
	}
	if p.Predicate == nil {
		return fmt.Errorf("pattern %q: predicate is required", p.Name)
	}
	if p.DefaultThreshold < 0 || p.DefaultThreshold > 1 {
		return fmt.Errorf("pattern %q: %w", p.Name, models.ErrInvalidThreshold)
	}
	if p.MinMatches < 1 {
		return fmt.Errorf("pattern %q: %w", p.Name, models.ErrInvalidMinMatches)
	}
	return nil
}
