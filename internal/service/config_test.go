package service_test

import (
	"testing"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

func TestConfigSetGetAndValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, "DEFAULT_UNITS", " imperial "); err != nil {
		t.Fatalf("set units: %v", err)
	}
	v, ok, err := service.GetConfig(db, service.ConfigDefaultUnits)
	if err != nil || !ok || v != "imperial" {
		t.Fatalf("expected imperial, got %q ok=%v err=%v", v, ok, err)
	}
	if err := service.SetConfig(db, service.ConfigDefaultMealsPerDay, "5"); err == nil {
		t.Fatalf("expected meals per day validation error")
	}
	if err := service.SetConfig(db, "barcode_provider", "usda"); err == nil {
		t.Fatalf("expected unknown key error")
	}

	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if len(all) != 1 || all[service.ConfigDefaultUnits] != "imperial" {
		t.Fatalf("expected only the units preference, got %v", all)
	}
}

func TestApplyFormDefaults(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigDefaultMealsPerDay, "6"); err != nil {
		t.Fatalf("set meals: %v", err)
	}
	f, err := service.ApplyFormDefaults(db, projection.FormInput{Units: "imperial"})
	if err != nil {
		t.Fatalf("apply defaults: %v", err)
	}
	if f.Units != "imperial" || f.MealsPerDay != "6" {
		t.Fatalf("expected explicit units kept and meals defaulted, got %+v", f)
	}
}
