// Package main provides the entry point for the data ingestion service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/config"
	"github.com/yourusername/pitchside/internal/database"
	"github.com/yourusername/pitchside/internal/datasource"
	"github.com/yourusername/pitchside/internal/logger"
	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/repository"
	"github.com/yourusername/pitchside/internal/scheduler"
	"github.com/yourusername/pitchside/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		once       = flag.Bool("once", false, "Run a single ingestion pass and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to build repositories: %v", err)
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), log)
	defer httpClient.Close()

	factory := datasource.NewFactory(log)
	sources, err := factory.NewMatchSources(cfg.Ingestion, httpClient)
	if err != nil {
		log.Fatalf("Failed to create data sources: %v", err)
	}

	ingestionSvc := service.NewIngestionService(sources, repos.Match, service.NewDataValidator(), log)
	leagues := cfg.LeagueNames()

	if *once {
		summary, err := ingestionSvc.IngestAll(ctx, leagues, cfg.Ingestion.Seasons)
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		log.WithField("summary", summary.String()).Info("Ingestion complete")
		return
	}

	sched := scheduler.NewScheduler(ingestionSvc, nil, log)
	expr := cfg.Ingestion.Schedule.HistoricalSync
	if expr == "" {
		expr = "0 3 * * *"
	}
	if err := sched.ScheduleHistoricalSync(expr, leagues, cfg.Ingestion.Seasons); err != nil {
		log.Fatalf("Failed to schedule sync: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	if cfg.Stream.Enabled {
		stream := datasource.NewResultsStream(cfg.Stream.URL, cfg.Stream.APIKey, log)
		stream.AddHandler(func(m models.MatchRecord) error {
			return repos.Match.Upsert(ctx, m)
		})
		go func() {
			if err := stream.Run(ctx); err != nil && ctx.Err() == nil {
				log.WithError(err).Error("Results stream stopped")
			}
		}()
	}

	log.WithField("leagues", leagues).Info("Data ingestion service running")
	<-ctx.Done()

	if err := sched.Stop(); err != nil {
		log.WithError(err).Warn("Scheduler stop failed")
	}
}
