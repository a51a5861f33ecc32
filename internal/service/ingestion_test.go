package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/datasource"
	"github.com/yourusername/pitchside/internal/models"
)

func sources(ss ...*fakeSource) []datasource.MatchSource {
	out := make([]datasource.MatchSource, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeSource returns canned records or a canned error.
type fakeSource struct {
	name    string
	enabled bool
	records []models.MatchRecord
	err     error
	calls   int
}

func (f *fakeSource) Name() string    { return f.name }
func (f *fakeSource) IsEnabled() bool { return f.enabled }

func (f *fakeSource) FetchMatches(ctx context.Context, league, season string) ([]models.MatchRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

// fakeMatchRepo stores matches in memory.
type fakeMatchRepo struct {
	matches []models.MatchRecord
	err     error
}

func (f *fakeMatchRepo) Upsert(ctx context.Context, match models.MatchRecord) error {
	if f.err != nil {
		return f.err
	}
	f.matches = append(f.matches, match)
	return nil
}

func (f *fakeMatchRepo) UpsertBatch(ctx context.Context, matches []models.MatchRecord) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.matches = append(f.matches, matches...)
	return len(matches), nil
}

func (f *fakeMatchRepo) LoadCorpus(ctx context.Context, league string) (models.Corpus, error) {
	return models.Corpus(f.matches).SortedByDate(), nil
}

func (f *fakeMatchRepo) LoadCorpusBefore(ctx context.Context, league string, cutoff time.Time) (models.Corpus, error) {
	return models.Corpus(f.matches).Before(cutoff).SortedByDate(), nil
}

func validRecord(home, away string) models.MatchRecord {
	return models.MatchRecord{
		League:   "premier_league",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		HomeTeam: home,
		AwayTeam: away,
		Stats:    map[string]float64{models.StatHomeGoals: 1, models.StatAwayGoals: 0},
	}
}

func TestIngestSeasonWritesValidRecords(t *testing.T) {
	bad := validRecord("Chelsea", "Chelsea")
	source := &fakeSource{
		name:    "football_data",
		enabled: true,
		records: []models.MatchRecord{validRecord("Arsenal", "Wolves"), bad},
	}
	repo := &fakeMatchRepo{}
	svc := NewIngestionService(sources(source), repo, nil, discardLogger())

	summary, err := svc.IngestSeason(context.Background(), "premier_league", "2324")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if summary.Fetched != 2 || summary.Written != 1 || summary.Rejected != 1 {
		t.Fatalf("unexpected summary: %s", summary)
	}
	if len(repo.matches) != 1 || repo.matches[0].HomeTeam != "Arsenal" {
		t.Fatalf("unexpected persisted matches: %+v", repo.matches)
	}
}

func TestIngestSeasonSkipsDisabledSources(t *testing.T) {
	disabled := &fakeSource{name: "local_csv", enabled: false, records: []models.MatchRecord{validRecord("A", "B")}}
	svc := NewIngestionService(sources(disabled), &fakeMatchRepo{}, nil, discardLogger())

	summary, err := svc.IngestSeason(context.Background(), "premier_league", "2324")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if disabled.calls != 0 {
		t.Fatal("disabled source must not be queried")
	}
	if summary.Fetched != 0 {
		t.Fatalf("unexpected summary: %s", summary)
	}
}

func TestIngestSeasonFailsWhenNothingWritten(t *testing.T) {
	broken := &fakeSource{name: "football_data", enabled: true, err: fmt.Errorf("upstream down")}
	svc := NewIngestionService(sources(broken), &fakeMatchRepo{}, nil, discardLogger())

	if _, err := svc.IngestSeason(context.Background(), "premier_league", "2324"); err == nil {
		t.Fatal("expected error when every source fails")
	}
}

func TestIngestSeasonToleratesOneFailingSource(t *testing.T) {
	broken := &fakeSource{name: "football_data", enabled: true, err: fmt.Errorf("upstream down")}
	healthy := &fakeSource{name: "local_csv", enabled: true, records: []models.MatchRecord{validRecord("A", "B")}}
	svc := NewIngestionService(sources(broken, healthy), &fakeMatchRepo{}, nil, discardLogger())

	summary, err := svc.IngestSeason(context.Background(), "premier_league", "2324")
	if err != nil {
		t.Fatalf("one healthy source should carry the run: %v", err)
	}
	if summary.Errors != 1 || summary.Written != 1 {
		t.Fatalf("unexpected summary: %s", summary)
	}
}
