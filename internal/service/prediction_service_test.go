package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/pitchside/internal/models"
	"github.com/yourusername/pitchside/internal/predictor"
)

// fakeRecRepo records persisted recommendations in memory.
type fakeRecRepo struct {
	created []models.Recommendation
	err     error
}

func (f *fakeRecRepo) Create(ctx context.Context, rec *models.Recommendation) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *rec)
	return nil
}

func (f *fakeRecRepo) CreateBatch(ctx context.Context, recs []models.Recommendation) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, recs...)
	return nil
}

func (f *fakeRecRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			return &f.created[i], nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRecRepo) GetByFixture(ctx context.Context, fixtureID string) ([]*models.Recommendation, error) {
	var out []*models.Recommendation
	for i := range f.created {
		if f.created[i].FixtureID == fixtureID {
			out = append(out, &f.created[i])
		}
	}
	return out, nil
}

func seededMatchRepo(days int) *fakeMatchRepo {
	repo := &fakeMatchRepo{}
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for d := 1; d <= days; d++ {
		repo.matches = append(repo.matches, models.MatchRecord{
			League:   "premier_league",
			Date:     end.AddDate(0, 0, -d),
			HomeTeam: "Arsenal",
			AwayTeam: "Wolves",
			Stats: map[string]float64{
				models.StatHomeGoals:   2,
				models.StatAwayGoals:   1,
				models.StatHomeCorners: 6,
				models.StatAwayCorners: 4,
				models.StatHomeCards:   2,
				models.StatAwayCards:   1,
				models.StatHomeShots:   14,
				models.StatAwayShots:   8,
			},
		})
	}
	return repo
}

func testService(t *testing.T, matchRepo *fakeMatchRepo, recRepo *fakeRecRepo) *PredictionService {
	t.Helper()
	settings := map[string]predictor.Settings{"premier_league": predictor.DefaultSettings()}
	svc, err := NewPredictionService(settings, matchRepo, recRepo, decimal.NewFromInt(1000), discardLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestPredictFixturePersistsRecommendations(t *testing.T) {
	matchRepo := seededMatchRepo(800)
	recRepo := &fakeRecRepo{}
	svc := testService(t, matchRepo, recRepo)

	fixture := models.Fixture{
		League:   "premier_league",
		Date:     time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		HomeTeam: "Arsenal",
		AwayTeam: "Wolves",
	}

	prediction, err := svc.PredictFixture(context.Background(), fixture)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(prediction.Recommendations) == 0 {
		t.Fatal("expected recommendations for a populated corpus")
	}
	if len(recRepo.created) != len(prediction.Recommendations) {
		t.Fatalf("persisted %d of %d recommendations", len(recRepo.created), len(prediction.Recommendations))
	}

	// BET verdicts carry a positive Kelly stake; everything else stays 0.
	for _, rec := range prediction.Recommendations {
		if rec.Verdict == models.VerdictBet && rec.KellyStake <= 0 {
			t.Fatalf("BET recommendation without a stake: %+v", rec)
		}
		if rec.Verdict != models.VerdictBet && rec.KellyStake != 0 {
			t.Fatalf("non-BET recommendation with a stake: %+v", rec)
		}
	}
}

func TestPredictFixtureUnknownLeague(t *testing.T) {
	svc := testService(t, seededMatchRepo(10), &fakeRecRepo{})

	fixture := models.Fixture{League: "serie_z", Date: time.Now(), HomeTeam: "A", AwayTeam: "B"}
	_, err := svc.PredictFixture(context.Background(), fixture)
	if !errors.Is(err, models.ErrLeagueNotConfigured) {
		t.Fatalf("expected ErrLeagueNotConfigured, got %v", err)
	}
}

func TestPredictFixtureSurvivesPersistenceFailure(t *testing.T) {
	matchRepo := seededMatchRepo(800)
	recRepo := &fakeRecRepo{err: errors.New("db down")}
	svc := testService(t, matchRepo, recRepo)

	fixture := models.Fixture{
		League:   "premier_league",
		Date:     time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		HomeTeam: "Arsenal",
		AwayTeam: "Wolves",
	}
	if _, err := svc.PredictFixture(context.Background(), fixture); err != nil {
		t.Fatalf("persistence failure must not fail the prediction: %v", err)
	}
}

func TestPredictFixturesSkipsFailures(t *testing.T) {
	svc := testService(t, seededMatchRepo(800), &fakeRecRepo{})

	fixtures := []models.Fixture{
		{League: "serie_z", Date: time.Now(), HomeTeam: "A", AwayTeam: "B"},
		{League: "premier_league", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), HomeTeam: "Arsenal", AwayTeam: "Wolves"},
	}

	predictions, err := svc.PredictFixtures(context.Background(), fixtures)
	if err != nil {
		t.Fatalf("batch predict: %v", err)
	}
	if len(predictions) != 1 {
		t.Fatalf("expected the healthy fixture only, got %d", len(predictions))
	}
}

func TestPredictFixturesAllFailed(t *testing.T) {
	svc := testService(t, seededMatchRepo(10), &fakeRecRepo{})

	fixtures := []models.Fixture{
		{League: "serie_z", Date: time.Now(), HomeTeam: "A", AwayTeam: "B"},
	}
	if _, err := svc.PredictFixtures(context.Background(), fixtures); err == nil {
		t.Fatal("expected error when every fixture fails")
	}
}
