package projection

import (
	"math"
	"strconv"
	"strings"
)

// FormInput is the raw, string-typed calculator form as it arrives from a
// request handler or command line. Weight and height follow Units.
type FormInput struct {
	Units           string `json:"units" yaml:"units"`
	Sex             string `json:"sex" yaml:"sex"`
	Age             string `json:"age" yaml:"age"`
	Height          string `json:"height" yaml:"height"`
	Weight          string `json:"weight" yaml:"weight"`
	DesiredWeight   string `json:"desiredWeight" yaml:"desired_weight"`
	BodyFat         string `json:"bodyFat" yaml:"body_fat"`
	Activity        string `json:"activity" yaml:"activity"`
	WorkoutDays     string `json:"workoutDays" yaml:"workout_days"`
	SleepHours      string `json:"sleepHours" yaml:"sleep_hours"`
	Stress          string `json:"stress" yaml:"stress"`
	Goal            string `json:"goal" yaml:"goal"`
	MacroProfile    string `json:"macroProfile" yaml:"macro_profile"`
	MealsPerDay     string `json:"mealsPerDay" yaml:"meals_per_day"`
	SupplementGoals string `json:"supplementGoals" yaml:"supplement_goals"`
}

// Input is a fully parsed and validated calculator request.
type Input struct {
	Profile   PersonProfile    `json:"profile"`
	Lifestyle LifestyleFactors `json:"lifestyle"`
	Goal      GoalSpec         `json:"goal"`
}

func (in Input) Project() (ProjectionResult, error) {
	return Project(in.Profile, in.Lifestyle, in.Goal)
}

// Lifestyle defaults trigger no multiplier adjustment.
const (
	defaultWorkoutDays = 3
	defaultSleepHours  = 7
	defaultMealsPerDay = 3
)

// Parse converts every field, rejecting the first invalid one. Imperial
// weights are pounds and imperial heights are inches.
func (f FormInput) Parse() (Input, error) {
	units, err := ParseUnitSystem(f.Units)
	if err != nil {
		return Input{}, err
	}
	sex, err := ParseSex(f.Sex)
	if err != nil {
		return Input{}, err
	}
	age, err := requiredInt("age", f.Age)
	if err != nil {
		return Input{}, err
	}
	height, err := requiredFloat("height", f.Height)
	if err != nil {
		return Input{}, err
	}
	weight, err := requiredFloat("weight", f.Weight)
	if err != nil {
		return Input{}, err
	}
	desired := weight
	if strings.TrimSpace(f.DesiredWeight) != "" {
		if desired, err = requiredFloat("desiredWeight", f.DesiredWeight); err != nil {
			return Input{}, err
		}
	}
	var bodyFat *float64
	if strings.TrimSpace(f.BodyFat) != "" {
		bf, err := requiredFloat("bodyFat", f.BodyFat)
		if err != nil {
			return Input{}, err
		}
		bodyFat = &bf
	}
	activity, err := requiredFloat("activity", f.Activity)
	if err != nil {
		return Input{}, err
	}
	workoutDays, err := optionalInt("workoutDays", f.WorkoutDays, defaultWorkoutDays)
	if err != nil {
		return Input{}, err
	}
	sleepHours, err := optionalInt("sleepHours", f.SleepHours, defaultSleepHours)
	if err != nil {
		return Input{}, err
	}
	stress, err := ParseStressLevel(f.Stress)
	if err != nil {
		return Input{}, err
	}
	goal, err := ParseGoal(f.Goal)
	if err != nil {
		return Input{}, err
	}
	macro, err := ParseMacroProfile(f.MacroProfile)
	if err != nil {
		return Input{}, err
	}
	meals, err := optionalInt("mealsPerDay", f.MealsPerDay, defaultMealsPerDay)
	if err != nil {
		return Input{}, err
	}
	supplements, err := parseSupplementList(f.SupplementGoals)
	if err != nil {
		return Input{}, err
	}

	in := Input{
		Profile: PersonProfile{
			Sex:                sex,
			AgeYears:           age,
			HeightCm:           heightToCm(height, units),
			WeightKg:           weightToKg(weight, units),
			DesiredWeightKg:    weightToKg(desired, units),
			BodyFatPercent:     bodyFat,
			ActivityMultiplier: activity,
		},
		Lifestyle: LifestyleFactors{
			WorkoutDaysPerWeek: workoutDays,
			SleepHoursPerNight: sleepHours,
			StressLevel:        stress,
		},
		Goal: GoalSpec{
			Goal:            goal,
			MacroProfile:    macro,
			MealsPerDay:     meals,
			SupplementGoals: supplements,
		},
	}
	if err := Validate(in.Profile, in.Lifestyle, in.Goal); err != nil {
		return Input{}, err
	}
	return in, nil
}

func requiredFloat(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(name, "is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(name, "%q is not a number", raw)
	}
	return v, nil
}

func requiredInt(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(name, "is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(name, "%q is not a whole number", raw)
	}
	return v, nil
}

func optionalInt(name, raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return requiredInt(name, raw)
}

func parseSupplementList(raw string) ([]SupplementGoal, error) {
	out := make([]SupplementGoal, 0)
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		g, err := ParseSupplementGoal(part)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
