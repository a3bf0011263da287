package service_test

import (
	"testing"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

func TestGoalVersioningByEffectiveDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetGoal(db, service.SetGoalInput{
		Calories:      2000,
		ProteinG:      150,
		CarbsG:        220,
		FatG:          70,
		EffectiveDate: "2026-01-01",
	}); err != nil {
		t.Fatalf("set first goal: %v", err)
	}
	if err := service.SetGoal(db, service.SetGoalInput{
		Calories:      1800,
		ProteinG:      160,
		CarbsG:        180,
		FatG:          60,
		EffectiveDate: "2026-02-01",
	}); err != nil {
		t.Fatalf("set second goal: %v", err)
	}

	january, err := service.CurrentGoal(db, "2026-01-15")
	if err != nil {
		t.Fatalf("current january goal: %v", err)
	}
	if january == nil || january.Calories != 2000 || january.Source != service.GoalSourceManual {
		t.Fatalf("expected manual january goal calories 2000, got %+v", january)
	}

	february, err := service.CurrentGoal(db, "2026-02-10")
	if err != nil {
		t.Fatalf("current february goal: %v", err)
	}
	if february == nil || february.Calories != 1800 {
		t.Fatalf("expected february goal calories 1800, got %+v", february)
	}

	history, err := service.GoalHistory(db)
	if err != nil {
		t.Fatalf("goal history: %v", err)
	}
	if len(history) != 2 || history[0].EffectiveDate != "2026-02-01" {
		t.Fatalf("expected newest-first history of 2, got %+v", history)
	}
}

func TestGoalFromProjection(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	res, err := sampleInput(t).Project()
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if err := service.ApplyProjectionGoal(db, res, "2026-03-01"); err != nil {
		t.Fatalf("apply projection goal: %v", err)
	}
	goal, err := service.CurrentGoal(db, "2026-03-02")
	if err != nil {
		t.Fatalf("current goal: %v", err)
	}
	if goal == nil {
		t.Fatalf("expected applied goal")
	}
	if goal.Calories != 2461 || goal.ProteinG != 123 || goal.CarbsG != 308 || goal.FatG != 82 {
		t.Fatalf("unexpected applied goal %+v", goal)
	}
	if goal.Source != service.GoalSourceProjection {
		t.Fatalf("expected projection source, got %q", goal.Source)
	}
}

func TestApplyProjectionGoalRejectsNegativeTarget(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// BMR 489, multiplier 1.05, deficit 750: target about -237 kcal.
	res, err := projection.Project(
		projection.PersonProfile{
			Sex:                projection.Female,
			AgeYears:           90,
			HeightCm:           120,
			WeightKg:           35,
			DesiredWeightKg:    10,
			ActivityMultiplier: 1.2,
		},
		projection.LifestyleFactors{WorkoutDaysPerWeek: 0, SleepHoursPerNight: 5, StressLevel: projection.StressHigh},
		projection.GoalSpec{Goal: projection.GoalLoss, MacroProfile: projection.MacroBalanced, MealsPerDay: 3},
	)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if res.TargetCalories >= 0 {
		t.Fatalf("expected a negative target, got %.2f", res.TargetCalories)
	}

	err = service.ApplyProjectionGoal(db, res, "2026-03-01")
	ve, ok := projection.AsValidationError(err)
	if !ok || ve.Field != "targetCalories" {
		t.Fatalf("expected targetCalories validation error, got %v", err)
	}
	goal, err := service.CurrentGoal(db, "2026-03-02")
	if err != nil {
		t.Fatalf("current goal: %v", err)
	}
	if goal != nil {
		t.Fatalf("expected no goal to be written, got %+v", goal)
	}
}

func TestGoalRejectsNegativeValues(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetGoal(db, service.SetGoalInput{Calories: -1}); err == nil {
		t.Fatalf("expected negative calories to fail")
	}
	if err := service.SetGoal(db, service.SetGoalInput{Calories: 2000, EffectiveDate: "03/01/2026"}); err == nil {
		t.Fatalf("expected bad date to fail")
	}
}
