// Package service orchestrates ingestion and prediction workflows.
package service

import (
	"fmt"
	"time"

	"github.com/yourusername/pitchside/internal/models"
)

// DataValidator checks normalized match records before persistence.
type DataValidator struct {
	// MaxFutureDays rejects records dated further in the future than this.
	MaxFutureDays int
}

// NewDataValidator returns a validator with default limits.
func NewDataValidator() *DataValidator {
	return &DataValidator{MaxFutureDays: 1}
}

// ValidateMatch checks a single match record.
func (v *DataValidator) ValidateMatch(m models.MatchRecord) error {
	if m.League == "" {
		return fmt.Errorf("match has no league")
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match has missing team names")
	}
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("match has identical home and away teams: %s", m.HomeTeam)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match has no date")
	}
	if m.Date.After(time.Now().AddDate(0, 0, v.MaxFutureDays)) {
		return fmt.Errorf("match date %s is in the future", m.Date.Format("2006-01-02"))
	}
	for name, value := range m.Stats {
		if value < 0 {
			return fmt.Errorf("statistic %s is negative: %v", name, value)
		}
	}
	return nil
}

// FilterValid splits records into valid and rejected sets.
func (v *DataValidator) FilterValid(records []models.MatchRecord) (valid []models.MatchRecord, rejected int) {
	for _, m := range records {
		if err := v.ValidateMatch(m); err != nil {
			rejected++
			continue
		}
		valid = append(valid, m)
	}
	return valid, rejected
}
