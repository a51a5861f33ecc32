package models

import (
	"fmt"
	"time"
)

// Fixture is an upcoming match to be predicted.
type Fixture struct {
	League   string    `json:"league"`
	Date     time.Time `json:"date"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
}

// ID returns a stable identifier for the fixture.
func (f Fixture) ID() string {
	return fmt.Sprintf("%s_%s_%s", f.Date.Format("2006-01-02"), f.HomeTeam, f.AwayTeam)
}
