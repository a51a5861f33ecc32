package datasource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
)

// league code mapping for football-data.co.uk downloads.
var footballDataCodes = map[string]string{
	"premier_league": "E0",
	"championship":   "E1",
	"la_liga":        "SP1",
	"serie_a":        "I1",
	"bundesliga":     "D1",
	"ligue_1":        "F1",
}

// FootballDataClient downloads season CSVs from football-data.co.uk.
type FootballDataClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	logger     *logrus.Logger
}

// NewFootballDataClient creates a football-data.co.uk source. An empty
// baseURL falls back to the public site.
func NewFootballDataClient(httpClient *RateLimitedHTTPClient, baseURL string, enabled bool, logger *logrus.Logger) *FootballDataClient {
	if baseURL == "" {
		baseURL = "https://www.football-data.co.uk/mmz4281"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &FootballDataClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *FootballDataClient) Name() string { return "football_data" }

// IsEnabled returns whether this data source is currently enabled
func (c *FootballDataClient) IsEnabled() bool { return c.enabled }

// FetchMatches downloads and parses one season CSV for the given league.
func (c *FootballDataClient) FetchMatches(ctx context.Context, league, season string) ([]models.MatchRecord, error) {
	code, ok := footballDataCodes[league]
	if !ok {
		return nil, NewSourceError(c.Name(), ErrCodeNotFound,
			fmt.Sprintf("no download code for league %q", league), models.ErrLeagueNotConfigured)
	}

	url := fmt.Sprintf("%s/%s/%s.csv", c.baseURL, season, code)
	c.logger.WithFields(logrus.Fields{"league": league, "season": season, "url": url}).
		Info("Fetching season data")

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewSourceError(c.Name(), ErrCodeNetworkError, "download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewSourceError(c.Name(), ErrCodeNotFound,
			fmt.Sprintf("season %s not available for %s", season, league), ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewSourceError(c.Name(), ErrCodeServerError,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	records, err := ParseMatchCSV(resp.Body, league, c.logger)
	if err != nil {
		return nil, NewSourceError(c.Name(), ErrCodeInvalidData, "failed to parse season CSV", err)
	}

	c.logger.WithFields(logrus.Fields{"league": league, "season": season, "matches": len(records)}).
		Info("Season data fetched")
	return records, nil
}
