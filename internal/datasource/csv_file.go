package datasource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
)

// LocalCSVSource loads season CSVs from a local directory laid out as
// <dir>/<league>/<season>.csv.
type LocalCSVSource struct {
	dir     string
	enabled bool
	logger  *logrus.Logger
}

// NewLocalCSVSource creates a source reading from dir.
func NewLocalCSVSource(dir string, enabled bool, logger *logrus.Logger) *LocalCSVSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &LocalCSVSource{dir: dir, enabled: enabled, logger: logger}
}

// Name returns the name of the data source
func (s *LocalCSVSource) Name() string { return "local_csv" }

// IsEnabled returns whether this data source is currently enabled
func (s *LocalCSVSource) IsEnabled() bool { return s.enabled }

// FetchMatches parses <dir>/<league>/<season>.csv.
func (s *LocalCSVSource) FetchMatches(ctx context.Context, league, season string) ([]models.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, league, season+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewSourceError(s.Name(), ErrCodeNotFound,
				fmt.Sprintf("no file for %s season %s", league, season), ErrNotFound)
		}
		return nil, NewSourceError(s.Name(), ErrCodeInvalidData, "failed to open file", err)
	}
	defer f.Close()

	records, err := ParseMatchCSV(f, league, s.logger)
	if err != nil {
		return nil, NewSourceError(s.Name(), ErrCodeInvalidData, "failed to parse file", err)
	}
	return records, nil
}
