package service

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

const (
	GoalSourceManual     = "manual"
	GoalSourceProjection = "projection"
)

type SetGoalInput struct {
	Calories      int
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	Source        string
	EffectiveDate string
}

// GoalFromProjection turns a projection into a daily goal using the
// displayed (rounded) calorie target and macro grams.
func GoalFromProjection(res projection.ProjectionResult, effectiveDate string) SetGoalInput {
	return SetGoalInput{
		Calories:      int(math.Round(res.TargetCalories)),
		ProteinG:      float64(res.MacrosGrams.Protein),
		CarbsG:        float64(res.MacrosGrams.Carbs),
		FatG:          float64(res.MacrosGrams.Fat),
		Source:        GoalSourceProjection,
		EffectiveDate: effectiveDate,
	}
}

// ApplyProjectionGoal stores res as the daily goal. Projections whose target
// falls below zero are rejected on the target field before anything is written.
func ApplyProjectionGoal(db *sql.DB, res projection.ProjectionResult, effectiveDate string) error {
	if res.TargetCalories < 0 {
		return &projection.ValidationError{
			Field:  "targetCalories",
			Reason: fmt.Sprintf("projected target %.0f kcal/day is below zero and cannot be applied as a goal", res.TargetCalories),
		}
	}
	return SetGoal(db, GoalFromProjection(res, effectiveDate))
}

func SetGoal(db *sql.DB, in SetGoalInput) error {
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", in.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", in.FatG); err != nil {
		return err
	}
	if in.Source == "" {
		in.Source = GoalSourceManual
	}
	date, err := resolveDate("effective date", in.EffectiveDate)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
INSERT INTO goals(calories, protein_g, carbs_g, fat_g, source, effective_date)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  source=excluded.source
`, in.Calories, in.ProteinG, in.CarbsG, in.FatG, in.Source, date)
	if err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	return nil
}

func CurrentGoal(db *sql.DB, date string) (*model.Goal, error) {
	date, err := resolveDate("date", date)
	if err != nil {
		return nil, err
	}

	var g model.Goal
	err = db.QueryRow(`
SELECT id, calories, protein_g, carbs_g, fat_g, source, effective_date, created_at
FROM goals
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, date).Scan(&g.ID, &g.Calories, &g.ProteinG, &g.CarbsG, &g.FatG, &g.Source, &g.EffectiveDate, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("current goal for %s: %w", date, err)
	}
	return &g, nil
}

func GoalHistory(db *sql.DB) ([]model.Goal, error) {
	rows, err := db.Query(`
SELECT id, calories, protein_g, carbs_g, fat_g, source, effective_date, created_at
FROM goals
ORDER BY effective_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list goal history: %w", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0)
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Calories, &g.ProteinG, &g.CarbsG, &g.FatG, &g.Source, &g.EffectiveDate, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal history: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal history: %w", err)
	}
	return goals, nil
}
