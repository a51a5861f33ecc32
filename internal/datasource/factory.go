package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/config"
)

// Factory creates MatchSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new data source factory
func NewFactory(logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{logger: logger}
}

// NewMatchSource creates a single MatchSource from its configuration.
func (f *Factory) NewMatchSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (MatchSource, error) {
	switch cfg.Name {
	case "football_data":
		if httpClient == nil {
			return nil, fmt.Errorf("HTTP client is required for %s", cfg.Name)
		}
		return NewFootballDataClient(httpClient, cfg.BaseURL, cfg.Enabled, f.logger), nil

	case "local_csv":
		if cfg.Directory == "" {
			return nil, fmt.Errorf("local_csv source requires a directory")
		}
		return NewLocalCSVSource(cfg.Directory, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// NewMatchSources creates all enabled data sources from configuration
func (f *Factory) NewMatchSources(ing config.IngestionConfig, httpClient *RateLimitedHTTPClient) ([]MatchSource, error) {
	var sources []MatchSource

	for _, srcCfg := range ing.Sources {
		if !srcCfg.Enabled {
			f.logger.WithField("source", srcCfg.Name).Info("Skipping disabled data source")
			continue
		}

		source, err := f.NewMatchSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		f.logger.WithField("source", srcCfg.Name).Info("Created data source")
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}
	return sources, nil
}
