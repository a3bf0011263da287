package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/db"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutri.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func floatPtr(v float64) *float64 {
	return &v
}

func sampleInput(t *testing.T) projection.Input {
	t.Helper()
	in, err := projection.FormInput{
		Sex:           "male",
		Age:           "30",
		Height:        "175",
		Weight:        "80",
		DesiredWeight: "75",
		Activity:      "1.55",
		SleepHours:    "8",
		Goal:          "loss",
	}.Parse()
	if err != nil {
		t.Fatalf("parse sample input: %v", err)
	}
	return in
}
