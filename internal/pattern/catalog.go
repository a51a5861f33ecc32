package pattern

import (
	"fmt"
	"sort"

	"github.com/yourusername/pitchside/internal/models"
)

// Catalog holds the patterns for one competition. A catalog is built once at
// startup and frozen before being handed to a predictor; registration after
// freezing is rejected so concurrent evaluation never races registration.
//
// Each run constructs its own catalog instance. There is deliberately no
// process-wide catalog.
type Catalog struct {
	patterns map[string]Pattern
	frozen   bool
}

// NewCatalog creates an empty pattern catalog.
func NewCatalog() *Catalog {
	return &Catalog{patterns: make(map[string]Pattern)}
}

// Register adds a pattern to the catalog. Duplicate names, thresholds outside
// [0,1] and min matches below 1 are configuration errors; the run must not
// start with an invalid catalog.
func (c *Catalog) Register(p Pattern) error {
	if c.frozen {
		return fmt.Errorf("pattern %q: %w", p.Name, models.ErrCatalogFrozen)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := c.patterns[p.Name]; exists {
		return fmt.Errorf("pattern %q: %w", p.Name, models.ErrDuplicatePattern)
	}
	if p.Category == "" {
		p.Category = Categorize(p.Name)
	}
	c.patterns[p.Name] = p
	return nil
}

// Freeze marks the catalog immutable. Idempotent.
func (c *Catalog) Freeze() {
	c.frozen = true
}

// Frozen reports whether the catalog has been frozen.
func (c *Catalog) Frozen() bool {
	return c.frozen
}

// Get returns the pattern with the given name.
func (c *Catalog) Get(name string) (Pattern, bool) {
	p, ok := c.patterns[name]
	return p, ok
}

// List returns all pattern names sorted lexicographically.
func (c *Catalog) List() []string {
	names := make([]string, 0, len(c.patterns))
	for name := range c.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered pattern in name order.
func (c *Catalog) All() []Pattern {
	patterns := make([]Pattern, 0, len(c.patterns))
	for _, name := range c.List() {
		patterns = append(patterns, c.patterns[name])
	}
	return patterns
}

// AllOf returns patterns of the given category in name order.
func (c *Catalog) AllOf(category Category) []Pattern {
	patterns := make([]Pattern, 0)
	for _, p := range c.All() {
		if p.Category == category {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// Len returns the number of registered patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}
