package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

func TestSaveGetListDeleteProjection(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	in := sampleInput(t)
	res, err := in.Project()
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	saved, err := service.SaveProjection(db, " cut phase ", in, res)
	if err != nil {
		t.Fatalf("save projection: %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", saved.ID)
	}
	if saved.Label != "cut phase" {
		t.Fatalf("expected trimmed label, got %q", saved.Label)
	}

	got, err := service.GetProjection(db, saved.ID)
	if err != nil {
		t.Fatalf("get projection: %v", err)
	}
	if got.Result.WeeksToGoal != 23 || got.Result.MacrosGrams != res.MacrosGrams {
		t.Fatalf("stored result differs: %+v", got.Result)
	}
	if got.Input.Profile.WeightKg != 80 {
		t.Fatalf("stored input differs: %+v", got.Input.Profile)
	}

	if _, err := service.SaveProjection(db, "", in, res); err != nil {
		t.Fatalf("save second projection: %v", err)
	}
	items, err := service.ListProjections(db, 10)
	if err != nil {
		t.Fatalf("list projections: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(items))
	}

	if err := service.DeleteProjection(db, saved.ID); err != nil {
		t.Fatalf("delete projection: %v", err)
	}
	if _, err := service.GetProjection(db, saved.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := service.DeleteProjection(db, saved.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestGetProjectionRejectsMalformedID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.GetProjection(db, "not-a-uuid"); !errors.Is(err, service.ErrInvalidID) {
		t.Fatalf("expected malformed id error, got %v", err)
	}
}
