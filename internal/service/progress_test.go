package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

func TestProgressRangeComparesTrendWithProjection(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetProfile(db, service.SetProfileInput{Input: sampleInput(t), EffectiveDate: "2026-01-01"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	// half a pound a week
	for i, day := range []int{5, 12, 19} {
		_, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{
			Weight:     80 - float64(i)*projection.PoundsToKg(0.5),
			Unit:       "kg",
			MeasuredAt: time.Date(2026, 1, day, 7, 0, 0, 0, time.Local),
		})
		if err != nil {
			t.Fatalf("add measurement %d: %v", i, err)
		}
	}

	report, err := service.ProgressRange(db, "2026-01-01", "2026-01-31", 0)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if report.Measurements != 3 || len(report.Points) != 3 {
		t.Fatalf("expected 3 measurements, got %d", report.Measurements)
	}
	if !report.Points[0].MeasuredAt.Before(report.Points[2].MeasuredAt) {
		t.Fatalf("expected points oldest first")
	}
	if math.Abs(report.ActualWeeklyRateLbs+0.5) > 1e-6 {
		t.Fatalf("expected -0.5 lb/week trend, got %.6f", report.ActualWeeklyRateLbs)
	}
	if report.Goal != projection.GoalLoss || report.ProjectedWeeklyRateLbs != -0.5 {
		t.Fatalf("unexpected projected rate %+v", report)
	}
	if !report.OnTrack {
		t.Fatalf("expected on-track report")
	}
	if report.EstimatedWeeksLeft == nil || *report.EstimatedWeeksLeft != 21 {
		t.Fatalf("expected 21 weeks left, got %v", report.EstimatedWeeksLeft)
	}
}

func TestProgressRangeWithoutProfile(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	for i, day := range []int{5, 19} {
		if _, err := service.AddBodyMeasurement(db, service.BodyMeasurementInput{
			Weight:     80 + float64(i),
			Unit:       "kg",
			MeasuredAt: time.Date(2026, 1, day, 7, 0, 0, 0, time.Local),
		}); err != nil {
			t.Fatalf("add measurement: %v", err)
		}
	}
	report, err := service.ProgressRange(db, "2026-01-01", "2026-01-31", 0)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if report.Goal != "" || report.OnTrack || report.EstimatedWeeksLeft != nil {
		t.Fatalf("expected trend-only report, got %+v", report)
	}
	if report.ChangeKg != 1 {
		t.Fatalf("expected +1 kg change, got %.3f", report.ChangeKg)
	}
}

func TestProgressRangeNeedsTwoMeasurements(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.ProgressRange(db, "2026-01-01", "2026-01-31", 0); err == nil {
		t.Fatalf("expected error without measurements")
	}
	if _, err := service.ProgressRange(db, "2026-02-01", "2026-01-01", 0); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}
