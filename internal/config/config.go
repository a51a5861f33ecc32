// Package config provides configuration management for the Pitchside application.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/yourusername/pitchside/internal/confidence"
	"github.com/yourusername/pitchside/internal/predictor"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig               `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig          `mapstructure:"database" validate:"required"`
	Leagues   map[string]LeagueConfig `mapstructure:"leagues" validate:"required,min=1,dive"`
	Backtest  BacktestConfig          `mapstructure:"backtest" validate:"required"`
	Ingestion IngestionConfig         `mapstructure:"ingestion" validate:"required"`
	Bankroll  BankrollConfig          `mapstructure:"bankroll"`
	Metrics   MetricsConfig           `mapstructure:"metrics" validate:"required"`
	Stream    StreamConfig            `mapstructure:"stream"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// LeagueConfig represents the per-competition tuning for the predictor.
// Weight keys are window lengths in days.
type LeagueConfig struct {
	TimeframeWeights   map[string]float64 `mapstructure:"timeframe_weights"`
	Thresholds         map[string]float64 `mapstructure:"thresholds" validate:"omitempty,dive,gte=0,lte=1"`
	MinMatches7d       int                `mapstructure:"min_matches_7d" validate:"omitempty,gt=0"`
	MinMatches30d      int                `mapstructure:"min_matches_30d" validate:"omitempty,gt=0"`
	ExpectedOdds       map[string]float64 `mapstructure:"expected_odds" validate:"omitempty,dive,gt=1"`
	DefaultOdds        float64            `mapstructure:"default_odds" validate:"omitempty,gt=1"`
	MinEdge            float64            `mapstructure:"min_edge" validate:"gte=0"`
	AdaptiveThresholds bool               `mapstructure:"adaptive_thresholds"`
	HistoryCap         int                `mapstructure:"history_cap" validate:"gte=0"`
	CacheTTLSeconds    int                `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate     string  `mapstructure:"start_date" validate:"required,dateformat"`
	EndDate       string  `mapstructure:"end_date" validate:"required,dateformat"`
	FlatStake     float64 `mapstructure:"flat_stake" validate:"required,gt=0"`
	DefaultPayout float64 `mapstructure:"default_payout" validate:"required,gt=1"`
	Workers       int     `mapstructure:"workers" validate:"gte=0"`
	OutputPath    string  `mapstructure:"output_path" validate:"required"`
}

// IngestionConfig represents data ingestion configuration
type IngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1,dive"`
	Seasons  []string           `mapstructure:"seasons" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url"`
	Directory string `mapstructure:"directory"`
	APIKey    string `mapstructure:"api_key"`
}

// ScheduleConfig represents scheduled job expressions
type ScheduleConfig struct {
	HistoricalSync  string `mapstructure:"historical_sync"`
	DailyPrediction string `mapstructure:"daily_prediction"`
}

// BankrollConfig represents staking configuration
type BankrollConfig struct {
	Initial        float64 `mapstructure:"initial" validate:"omitempty,gt=0"`
	MaxDailyLoss   float64 `mapstructure:"max_daily_loss" validate:"omitempty,gt=0"`
	MaxDrawdownPct float64 `mapstructure:"max_drawdown_pct" validate:"omitempty,gt=0,lt=1"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// StreamConfig represents the live results feed configuration
type StreamConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" validate:"required_if=Enabled true"`
	APIKey  string `mapstructure:"api_key"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LeagueNames returns the configured league keys in sorted order.
func (c *Config) LeagueNames() []string {
	names := make([]string, 0, len(c.Leagues))
	for name := range c.Leagues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Settings converts the league configuration to predictor settings,
// filling unset fields from the defaults.
func (lc LeagueConfig) Settings() (predictor.Settings, error) {
	s := predictor.DefaultSettings()

	if len(lc.TimeframeWeights) > 0 {
		weights := make(confidence.Weights, len(lc.TimeframeWeights))
		for key, w := range lc.TimeframeWeights {
			days, err := strconv.Atoi(key)
			if err != nil || days <= 0 {
				return predictor.Settings{}, fmt.Errorf("invalid timeframe weight key %q", key)
			}
			weights[days] = w
		}
		s.TimeframeWeights = weights
	}
	if len(lc.Thresholds) > 0 {
		s.Thresholds = lc.Thresholds
	}
	if lc.MinMatches7d > 0 {
		s.MinMatches7d = lc.MinMatches7d
	}
	if lc.MinMatches30d > 0 {
		s.MinMatches30d = lc.MinMatches30d
	}
	if len(lc.ExpectedOdds) > 0 {
		s.ExpectedOdds = lc.ExpectedOdds
	}
	if lc.DefaultOdds > 0 {
		s.DefaultOdds = lc.DefaultOdds
	}
	if lc.MinEdge > 0 {
		s.MinEdge = lc.MinEdge
	}
	s.AdaptiveThresholds = lc.AdaptiveThresholds
	s.HistoryCap = lc.HistoryCap
	s.CacheTTL = time.Duration(lc.CacheTTLSeconds) * time.Second

	return s, nil
}

// BacktestDates parses the configured backtest date range.
func (c *Config) BacktestDates() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Backtest.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid backtest start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Backtest.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid backtest end_date: %w", err)
	}
	return start, end, nil
}
