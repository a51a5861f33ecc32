package models

import "errors"

// Custom errors
var (
	ErrDuplicatePattern    = errors.New("pattern name is already registered")
	ErrInvalidThreshold    = errors.New("threshold must be between 0 and 1")
	ErrInvalidMinMatches   = errors.New("min matches must be >= 1")
	ErrCatalogFrozen       = errors.New("catalog is frozen")
	ErrNotFound            = errors.New("record not found")
	ErrNoHistoricalData    = errors.New("no historical data available")
	ErrLeagueNotConfigured = errors.New("league is not configured")
)
