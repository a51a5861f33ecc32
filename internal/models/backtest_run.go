package models

import (
	"time"

	"github.com/google/uuid"
)

// BacktestRun is the persisted summary of one backtest execution.
type BacktestRun struct {
	ID            uuid.UUID `db:"id" json:"id"`
	League        string    `db:"league" json:"league"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
	TotalMatches  int       `db:"total_matches" json:"total_matches"`
	TotalBets     int       `db:"total_bets" json:"total_bets"`
	WinningBets   int       `db:"winning_bets" json:"winning_bets"`
	WinRate       float64   `db:"win_rate" json:"win_rate"`
	UnitsStaked   float64   `db:"units_staked" json:"units_staked"`
	UnitsReturned float64   `db:"units_returned" json:"units_returned"`
	ROI           float64   `db:"roi" json:"roi"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
