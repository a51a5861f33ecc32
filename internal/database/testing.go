package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/yourusername/pitchside/internal/config"
)

// SetupTestDB connects to the database described by the PITCHSIDE_TEST_DB_*
// environment variables and applies the schema. Integration tests call
// t.Skip when the variables are unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	host := os.Getenv("PITCHSIDE_TEST_DB_HOST")
	if host == "" {
		t.Skip("PITCHSIDE_TEST_DB_HOST not set, skipping database test")
	}

	port := 5432
	if p := os.Getenv("PITCHSIDE_TEST_DB_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			t.Fatalf("invalid PITCHSIDE_TEST_DB_PORT: %v", err)
		}
		port = parsed
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:               host,
			Port:               port,
			Name:               envOr("PITCHSIDE_TEST_DB_NAME", "pitchside_test"),
			User:               envOr("PITCHSIDE_TEST_DB_USER", "pitchside"),
			Password:           os.Getenv("PITCHSIDE_TEST_DB_PASSWORD"),
			SSLMode:            envOr("PITCHSIDE_TEST_DB_SSLMODE", "disable"),
			MaxConnections:     5,
			MaxIdleConnections: 2,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to set up test database: %v", err)
	}
	return db
}

// TeardownTestDB closes the test connection pool.
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
