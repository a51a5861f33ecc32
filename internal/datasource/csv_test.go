package datasource

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

const sampleCSV = `Div,Date,HomeTeam,AwayTeam,FTHG,FTAG,HS,AS,HC,AC,HY,AY,HR,AR
E0,17/08/2024,Arsenal,Wolves,2,0,18,7,9,2,1,2,0,0
E0,18/08/2024,Brentford,Palace,1,1,11,12,5,6,2,3,1,0
`

func TestParseMatchCSV(t *testing.T) {
	records, err := ParseMatchCSV(strings.NewReader(sampleCSV), "premier_league", discardLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.League != "premier_league" || first.HomeTeam != "Arsenal" || first.AwayTeam != "Wolves" {
		t.Fatalf("unexpected record: %+v", first)
	}
	want := time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Fatalf("expected date %s, got %s", want, first.Date)
	}
	if first.Stat(models.StatHomeGoals) != 2 || first.Stat(models.StatAwayGoals) != 0 {
		t.Fatalf("unexpected goals: %+v", first.Stats)
	}
	if first.TotalCorners() != 11 {
		t.Fatalf("expected 11 corners, got %v", first.TotalCorners())
	}

	// Cards combine yellows and reds per side.
	second := records[1]
	if second.Stat(models.StatHomeCards) != 3 || second.Stat(models.StatAwayCards) != 3 {
		t.Fatalf("unexpected cards: home %v away %v",
			second.Stat(models.StatHomeCards), second.Stat(models.StatAwayCards))
	}
}

func TestParseMatchCSVMissingRequiredColumn(t *testing.T) {
	input := "Div,Date,HomeTeam,AwayTeam,FTHG\nE0,17/08/2024,Arsenal,Wolves,2\n"
	_, err := ParseMatchCSV(strings.NewReader(input), "premier_league", discardLogger())
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestParseMatchCSVSkipsBadRows(t *testing.T) {
	input := `Date,HomeTeam,AwayTeam,FTHG,FTAG
not-a-date,Arsenal,Wolves,2,0
17/08/2024,,Wolves,2,0
17/08/2024,Arsenal,Wolves,2,0
`
	records, err := ParseMatchCSV(strings.NewReader(input), "premier_league", discardLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the single valid row, got %d", len(records))
	}
}

func TestParseMatchCSVUnparseableStatReadsAsZero(t *testing.T) {
	input := `Date,HomeTeam,AwayTeam,FTHG,FTAG,HC
17/08/2024,Arsenal,Wolves,2,0,N/A
`
	records, err := ParseMatchCSV(strings.NewReader(input), "premier_league", discardLogger())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if records[0].Stat(models.StatHomeCorners) != 0 {
		t.Fatalf("expected unparseable corner count to read as 0, got %v",
			records[0].Stat(models.StatHomeCorners))
	}
}

func TestParseMatchCSVDateLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"17/08/2024", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)},
		{"17/08/24", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)},
		{"2024-08-17", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseMatchDate(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("parse %q = %s, want %s", tt.raw, got, tt.want)
		}
	}

	if _, err := parseMatchDate("August 17th"); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestLocalCSVSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "premier_league"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "premier_league", "2425.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	source := NewLocalCSVSource(dir, true, discardLogger())
	if source.Name() != "local_csv" || !source.IsEnabled() {
		t.Fatalf("unexpected source identity: %s enabled=%v", source.Name(), source.IsEnabled())
	}

	records, err := source.FetchMatches(context.Background(), "premier_league", "2425")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	_, err = source.FetchMatches(context.Background(), "premier_league", "9999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing season, got %v", err)
	}
}

func TestSourceErrorWrapping(t *testing.T) {
	err := NewSourceError("football_data", ErrCodeNotFound, "season file missing", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("source error must unwrap to its sentinel")
	}
	if !strings.Contains(err.Error(), "football_data") {
		t.Fatalf("error text should name the source: %s", err.Error())
	}
}
