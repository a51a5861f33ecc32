// Package main provides the prediction CLI: single-fixture and batch
// prediction plus a long-running scheduled mode.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pitchside/internal/config"
	"github.com/yourusername/pitchside/internal/database"
	"github.com/yourusername/pitchside/internal/health"
	"github.com/yourusername/pitchside/internal/logger"
	"github.com/yourusername/pitchside/internal/metrics"
	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/predictor"
	"github.com/yourusername/pitchside/internal/repository"
	"github.com/yourusername/pitchside/internal/scheduler"
	"github.com/yourusername/pitchside/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
	predSvc    *service.PredictionService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(fixtureCmd)
	rootCmd.AddCommand(serveCmd)

	fixtureCmd.Flags().String("league", "liga_one", "League of the fixture")
	fixtureCmd.Flags().String("date", "", "Fixture date (YYYY-MM-DD), defaults to today")
	fixtureCmd.Flags().String("home", "", "Home team name")
	fixtureCmd.Flags().String("away", "", "Away team name")
	fixtureCmd.Flags().Bool("json", false, "Print the full prediction as JSON")
	_ = fixtureCmd.MarkFlagRequired("home")
	_ = fixtureCmd.MarkFlagRequired("away")
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Produce best-bet recommendations for upcoming fixtures",
	Long:  `Evaluates the pattern catalog against historical match data and emits at most one best bet per fixture.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Predict a single fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		league, _ := cmd.Flags().GetString("league")
		dateStr, _ := cmd.Flags().GetString("date")
		home, _ := cmd.Flags().GetString("home")
		away, _ := cmd.Flags().GetString("away")
		asJSON, _ := cmd.Flags().GetBool("json")

		date := time.Now().UTC().Truncate(24 * time.Hour)
		if dateStr != "" {
			var err error
			date, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
		}

		fixture := models.Fixture{League: league, Date: date, HomeTeam: home, AwayTeam: away}
		prediction, err := predSvc.PredictFixture(cmd.Context(), fixture)
		if err != nil {
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(prediction)
		}
		printPrediction(prediction)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled ingestion and daily predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		healthServer := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Logger:      appLogger,
			DB:          db,
		})
		if err := healthServer.Start(ctx); err != nil {
			return err
		}

		if cfg.Metrics.Enabled {
			go serveMetrics()
		}

		sched, err := buildScheduler()
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		healthServer.SetReady(true)

		appLogger.Info("Prediction service running, waiting for shutdown signal")
		<-ctx.Done()

		healthServer.SetReady(false)
		return sched.Stop()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, region, secretName); err != nil {
			return err
		}
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	settings := make(map[string]predictor.Settings, len(cfg.Leagues))
	for league, lc := range cfg.Leagues {
		s, err := lc.Settings()
		if err != nil {
			return fmt.Errorf("league %s: %w", league, err)
		}
		settings[league] = s
	}

	predSvc, err = service.NewPredictionService(
		settings,
		repos.Match,
		repos.Recommendation,
		decimal.NewFromFloat(cfg.Bankroll.Initial),
		appLogger,
	)
	if err != nil {
		return fmt.Errorf("failed to build prediction service: %w", err)
	}
	return nil
}

func buildScheduler() (*scheduler.Scheduler, error) {
	sched := scheduler.NewScheduler(nil, predSvc, appLogger)

	expr := cfg.Ingestion.Schedule.DailyPrediction
	if expr == "" {
		expr = "0 6 * * *"
	}

	// Scheduled runs predict tomorrow's stored fixtures per league. Leagues
	// without pending fixtures are skipped.
	provider := func(ctx context.Context) ([]models.Fixture, error) {
		return upcomingFixtures(ctx)
	}
	if err := sched.ScheduleDailyPredictions(expr, provider); err != nil {
		return nil, err
	}
	return sched, nil
}

// upcomingFixtures derives tomorrow's fixtures from the most recent corpus
// entries. A dedicated fixtures feed can replace this.
func upcomingFixtures(ctx context.Context) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	tomorrow := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 1)

	for _, league := range cfg.LeagueNames() {
		corpus, err := repos.Match.LoadCorpus(ctx, league)
		if err != nil {
			return nil, err
		}
		for _, m := range corpus {
			if m.Date.Equal(tomorrow) {
				fixtures = append(fixtures, models.Fixture{
					League:   m.League,
					Date:     m.Date,
					HomeTeam: m.HomeTeam,
					AwayTeam: m.AwayTeam,
				})
			}
		}
	}
	return fixtures, nil
}

func serveMetrics() {
	metrics.InitRegistry()
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	mux := newMetricsMux()
	appLogger.WithField("addr", addr).Info("Metrics server starting")
	if err := listenAndServe(addr, mux); err != nil {
		appLogger.WithError(err).Error("Metrics server error")
	}
}

func printPrediction(p *models.MatchPrediction) {
	fmt.Printf("\n%s vs %s (%s, %s)\n", p.Fixture.HomeTeam, p.Fixture.AwayTeam,
		p.Fixture.League, p.Fixture.Date.Format("2006-01-02"))
	fmt.Printf("Mean confidence: %.3f across %d patterns\n\n", p.MeanConfidence, len(p.Recommendations))

	if p.BestBet == nil {
		fmt.Println("NO BET: no pattern cleared its threshold")
		return
	}

	fmt.Printf("BEST BET: %s (%s)\n", p.BestBet.PatternName, p.BestBet.Category)
	fmt.Printf("  confidence        %.3f\n", p.BestBet.RawConfidence)
	fmt.Printf("  risk-adjusted     %.3f\n", p.BestBet.RiskAdjustedConfidence)
	fmt.Printf("  threshold used    %.3f\n", p.BestBet.ThresholdUsed)

	for _, rec := range p.Recommendations {
		if rec.PatternName != p.BestBet.PatternName {
			continue
		}
		fmt.Printf("  expected odds     %.2f\n", rec.ExpectedOdds)
		fmt.Printf("  expected value    %+.3f\n", rec.ExpectedValue)
		if rec.KellyStake > 0 {
			fmt.Printf("  suggested stake   %.2f\n", rec.KellyStake)
		}
	}
}
