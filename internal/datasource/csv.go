package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
)

// Column headers used by football-data.co.uk exports.
const (
	colDate        = "Date"
	colHomeTeam    = "HomeTeam"
	colAwayTeam    = "AwayTeam"
	colHomeGoals   = "FTHG"
	colAwayGoals   = "FTAG"
	colHomeShots   = "HS"
	colAwayShots   = "AS"
	colHomeCorners = "HC"
	colAwayCorners = "AC"
	colHomeYellow  = "HY"
	colAwayYellow  = "AY"
	colHomeRed     = "HR"
	colAwayRed     = "AR"
)

var csvDateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

// ParseMatchCSV reads a football-data.co.uk style CSV stream and normalizes
// each row into a MatchRecord. Rows missing the date or either team name are
// skipped with a warning; missing statistic columns read as 0.
func ParseMatchCSV(r io.Reader, league string, logger *logrus.Logger) ([]models.MatchRecord, error) {
	if logger == nil {
		logger = logrus.New()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDate, colHomeTeam, colAwayTeam, colHomeGoals, colAwayGoals} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrInvalidData, required)
		}
	}

	var records []models.MatchRecord
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		date, err := parseMatchDate(field(colDate))
		if err != nil {
			logger.WithFields(logrus.Fields{"line": line, "date": field(colDate)}).
				Warn("Skipping row with unparseable date")
			continue
		}
		home, away := field(colHomeTeam), field(colAwayTeam)
		if home == "" || away == "" {
			logger.WithField("line", line).Warn("Skipping row with missing team name")
			continue
		}

		stat := func(name string) float64 {
			v := field(name)
			if v == "" {
				return 0
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				logger.WithFields(logrus.Fields{"line": line, "column": name, "value": v}).
					Warn("Unparseable statistic, treating as 0")
				return 0
			}
			return f
		}

		records = append(records, models.MatchRecord{
			League:   league,
			Date:     date,
			HomeTeam: home,
			AwayTeam: away,
			Stats: map[string]float64{
				models.StatHomeGoals:   stat(colHomeGoals),
				models.StatAwayGoals:   stat(colAwayGoals),
				models.StatHomeShots:   stat(colHomeShots),
				models.StatAwayShots:   stat(colAwayShots),
				models.StatHomeCorners: stat(colHomeCorners),
				models.StatAwayCorners: stat(colAwayCorners),
				models.StatHomeCards:   stat(colHomeYellow) + stat(colHomeRed),
				models.StatAwayCards:   stat(colAwayYellow) + stat(colAwayRed),
			},
		})
	}
	return records, nil
}

func parseMatchDate(s string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
