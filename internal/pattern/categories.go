package pattern

import "strings"

// Category classifies bet patterns by market type. The set is open; unknown
// names fall into CategoryOther.
type Category string

const (
	CategoryGoals   Category = "goals"
	CategoryCorners Category = "corners"
	CategoryCards   Category = "cards"
	CategoryShots   Category = "shots"
	CategoryResult  Category = "result"
	CategoryOther   Category = "other"
)

// Categorize infers a category from a pattern name.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "goal") || strings.Contains(lower, "btts") || strings.Contains(lower, "to_score"):
		return CategoryGoals
	case strings.Contains(lower, "corner"):
		return CategoryCorners
	case strings.Contains(lower, "card") || strings.Contains(lower, "yellow") || strings.Contains(lower, "red"):
		return CategoryCards
	case strings.Contains(lower, "shot"):
		return CategoryShots
	case strings.Contains(lower, "win") || strings.Contains(lower, "draw"):
		return CategoryResult
	default:
		return CategoryOther
	}
}
