package nutri

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

// bindFormFlags registers one string flag per calculator field. Values stay
// strings so that parsing and validation happen in one place.
func bindFormFlags(cmd *cobra.Command, f *projection.FormInput) {
	flags := cmd.Flags()
	flags.StringVar(&f.Units, "units", "", "Unit system: metric (kg/cm) or imperial (lb/in)")
	flags.StringVar(&f.Sex, "sex", "", "Sex: male or female")
	flags.StringVar(&f.Age, "age", "", "Age in years")
	flags.StringVar(&f.Height, "height", "", "Height (cm, or inches when imperial)")
	flags.StringVar(&f.Weight, "weight", "", "Current weight (kg, or lb when imperial)")
	flags.StringVar(&f.DesiredWeight, "desired-weight", "", "Desired weight (default current weight)")
	flags.StringVar(&f.BodyFat, "body-fat", "", "Body fat percentage (estimated when omitted)")
	flags.StringVar(&f.Activity, "activity", "", "Activity multiplier 1.2-1.9")
	flags.StringVar(&f.WorkoutDays, "workout-days", "", "Workout days per week 0-7 (default 3)")
	flags.StringVar(&f.SleepHours, "sleep-hours", "", "Sleep hours per night 5-10 (default 7)")
	flags.StringVar(&f.Stress, "stress", "", "Stress level: low, moderate or high")
	flags.StringVar(&f.Goal, "goal", "", "Goal: maintenance, loss or gain")
	flags.StringVar(&f.MacroProfile, "macro-profile", "", "Macro profile: balanced, moderate-protein, high-protein, high-carb, keto, paleo")
	flags.StringVar(&f.MealsPerDay, "meals-per-day", "", "Meals per day: 3, 4 or 6")
	flags.StringVar(&f.SupplementGoals, "supplements", "", "Supplement goals (comma-separated): muscle-building, fat-loss, energy, recovery")
}

func applyConfigUnits(f projection.FormInput) projection.FormInput {
	if strings.TrimSpace(f.Units) == "" && cfg != nil {
		f.Units = string(cfg.Units)
	}
	return f
}
