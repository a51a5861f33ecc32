// Package main provides the entry point for the walk-forward backtest CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/backtest"
	"github.com/yourusername/pitchside/internal/config"
	"github.com/yourusername/pitchside/internal/database"
	"github.com/yourusername/pitchside/internal/datasource"
	"github.com/yourusername/pitchside/internal/logger"
	"github.com/yourusername/pitchside/internal/metrics"
	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/pattern"
	"github.com/yourusername/pitchside/internal/predictor"
	"github.com/yourusername/pitchside/internal/repository"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		league     = flag.String("league", "liga_one", "League to backtest")
		startDate  = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate    = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		csvPath    = flag.String("csv", "", "Load corpus from a local CSV instead of the database")
		output     = flag.String("output", "", "Override output directory for reports")
		workers    = flag.Int("workers", 0, "Worker count (0 = number of CPUs)")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	btConfig, err := buildBacktestConfig(cfg, *league, *startDate, *endDate, *output, *workers)
	if err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}

	corpus, runRepo := loadCorpus(ctx, cfg, *league, *csvPath, log)

	catalog := pattern.NewCatalog()
	if err := pattern.RegisterLeague(catalog, *league); err != nil {
		log.Fatalf("Failed to register patterns: %v", err)
	}

	settings, err := leagueSettings(cfg, *league)
	if err != nil {
		log.Fatalf("Invalid league settings: %v", err)
	}

	pred, err := predictor.NewLeaguePredictor(*league, catalog, settings, log)
	if err != nil {
		log.Fatalf("Failed to build predictor: %v", err)
	}

	harness, err := backtest.NewHarness(btConfig, pred, catalog, log)
	if err != nil {
		log.Fatalf("Failed to build harness: %v", err)
	}

	started := time.Now()
	result, err := harness.Run(ctx, corpus)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}
	metrics.RecordBacktest(*league, result.WinRate, time.Since(started).Seconds())

	reporter := backtest.NewReporter(btConfig.OutputPath)
	fmt.Print(reporter.GenerateConsoleReport(result))

	path, err := reporter.ExportJSON(result)
	if err != nil {
		log.Fatalf("Failed to export report: %v", err)
	}
	log.WithField("path", path).Info("Report written")

	if runRepo != nil {
		run := result.ToRun()
		if err := runRepo.Create(ctx, &run); err != nil {
			log.WithError(err).Warn("Failed to persist backtest run")
		}
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	bootstrap := logrus.New()

	cfg, err := config.Load(path)
	if err != nil {
		bootstrap.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			bootstrap.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, region, secretName); err != nil {
			bootstrap.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		bootstrap.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildBacktestConfig(cfg *config.Config, league, startOverride, endOverride, outputOverride string, workers int) (backtest.Config, error) {
	start, end, err := cfg.BacktestDates()
	if err != nil {
		return backtest.Config{}, err
	}
	if startOverride != "" {
		if start, err = time.Parse("2006-01-02", startOverride); err != nil {
			return backtest.Config{}, fmt.Errorf("invalid start-date: %w", err)
		}
	}
	if endOverride != "" {
		if end, err = time.Parse("2006-01-02", endOverride); err != nil {
			return backtest.Config{}, fmt.Errorf("invalid end-date: %w", err)
		}
	}

	lc := cfg.Leagues[league]
	payouts := make(map[string]float64, len(lc.ExpectedOdds))
	for line, odds := range lc.ExpectedOdds {
		payouts[line] = odds
	}

	output := cfg.Backtest.OutputPath
	if outputOverride != "" {
		output = outputOverride
	}

	btConfig := backtest.Config{
		League:        league,
		StartDate:     start,
		EndDate:       end,
		HistoryCap:    lc.HistoryCap,
		Workers:       workers,
		FlatStake:     decimal.NewFromFloat(cfg.Backtest.FlatStake),
		PayoutOdds:    payouts,
		DefaultPayout: cfg.Backtest.DefaultPayout,
		OutputPath:    output,
	}
	if workers == 0 {
		btConfig.Workers = cfg.Backtest.Workers
	}
	return btConfig, btConfig.Validate()
}

func leagueSettings(cfg *config.Config, league string) (predictor.Settings, error) {
	lc, ok := cfg.Leagues[league]
	if !ok {
		return predictor.DefaultSettings(), nil
	}
	return lc.Settings()
}

// loadCorpus reads the historical corpus from a CSV file when -csv is given,
// otherwise from the database. The run repository is nil in CSV mode.
func loadCorpus(ctx context.Context, cfg *config.Config, league, csvPath string, log *logrus.Logger) (models.Corpus, repository.BacktestRunRepository) {
	if csvPath != "" {
		f, err := os.Open(csvPath)
		if err != nil {
			log.Fatalf("Failed to open CSV: %v", err)
		}
		defer f.Close()

		records, err := datasource.ParseMatchCSV(f, league, log)
		if err != nil {
			log.Fatalf("Failed to parse CSV: %v", err)
		}
		log.WithFields(logrus.Fields{"path": csvPath, "matches": len(records)}).Info("Corpus loaded from CSV")
		return records, nil
	}

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to build repositories: %v", err)
	}

	corpus, err := repos.Match.LoadCorpus(ctx, league)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	if len(corpus) == 0 {
		log.Fatalf("No matches found for league %s, run data-ingestion first", league)
	}
	log.WithFields(logrus.Fields{"league": league, "matches": len(corpus)}).Info("Corpus loaded from database")
	return corpus, repos.BacktestRun
}
