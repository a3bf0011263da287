package projection

import "strings"

type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
)

type Goal string

const (
	GoalMaintenance Goal = "maintenance"
	GoalLoss        Goal = "loss"
	GoalGain        Goal = "gain"
)

type MacroProfile string

const (
	MacroBalanced        MacroProfile = "balanced"
	MacroModerateProtein MacroProfile = "moderate-protein"
	MacroHighProtein     MacroProfile = "high-protein"
	MacroHighCarb        MacroProfile = "high-carb"
	MacroKeto            MacroProfile = "keto"
	MacroPaleo           MacroProfile = "paleo"
)

type SupplementGoal string

const (
	SupplementMuscleBuilding SupplementGoal = "muscle-building"
	SupplementFatLoss        SupplementGoal = "fat-loss"
	SupplementEnergy         SupplementGoal = "energy"
	SupplementRecovery       SupplementGoal = "recovery"
)

// PersonProfile holds biometric inputs in metric units.
type PersonProfile struct {
	Sex                Sex      `json:"sex"`
	AgeYears           int      `json:"ageYears"`
	HeightCm           float64  `json:"heightCm"`
	WeightKg           float64  `json:"weightKg"`
	DesiredWeightKg    float64  `json:"desiredWeightKg"`
	BodyFatPercent     *float64 `json:"bodyFatPercent,omitempty"`
	ActivityMultiplier float64  `json:"activityMultiplier"`
}

type LifestyleFactors struct {
	WorkoutDaysPerWeek int         `json:"workoutDaysPerWeek"`
	SleepHoursPerNight int         `json:"sleepHoursPerNight"`
	StressLevel        StressLevel `json:"stressLevel"`
}

type GoalSpec struct {
	Goal            Goal             `json:"goal"`
	MacroProfile    MacroProfile     `json:"macroProfile"`
	MealsPerDay     int              `json:"mealsPerDay"`
	SupplementGoals []SupplementGoal `json:"supplementGoals,omitempty"`
}

type MacroGrams struct {
	Carbs   int `json:"carbs"`
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
}

// ProjectionResult is derived on every call and never stored by this package.
type ProjectionResult struct {
	BMR                   float64        `json:"bmr"`
	TDEE                  float64        `json:"tdee"`
	TargetCalories        float64        `json:"targetCalories"`
	ActivityMultiplier    float64        `json:"activityMultiplier"`
	ActivityLabel         string         `json:"activityLabel"`
	MacrosGrams           MacroGrams     `json:"macrosGrams"`
	WeeklyChangeRateLbs   float64        `json:"weeklyChangeRateLbs"`
	WeeksToGoal           int            `json:"weeksToGoal"`
	BodyFatPercent        float64        `json:"bodyFatPercent"`
	BodyFatEstimated      bool           `json:"bodyFatEstimated"`
	LeanBodyMassKg        float64        `json:"leanBodyMassKg"`
	DailyWaterMl          int            `json:"dailyWaterMl"`
	MealTimingCalories    map[string]int `json:"mealTimingCalories"`
	SupplementSuggestions []string       `json:"supplementSuggestions"`
}

func normalizeEnum(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}

func ParseSex(raw string) (Sex, error) {
	switch Sex(normalizeEnum(raw)) {
	case Male, "m":
		return Male, nil
	case Female, "f":
		return Female, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", invalid("sex", "is required")
	}
	return "", invalid("sex", "unknown value %q (use male or female)", raw)
}

func ParseStressLevel(raw string) (StressLevel, error) {
	switch s := StressLevel(normalizeEnum(raw)); s {
	case StressLow, StressModerate, StressHigh:
		return s, nil
	case "":
		return StressModerate, nil
	}
	return "", invalid("stress", "unknown value %q (use low, moderate or high)", raw)
}

func ParseGoal(raw string) (Goal, error) {
	switch g := Goal(normalizeEnum(raw)); g {
	case GoalMaintenance, GoalLoss, GoalGain:
		return g, nil
	case "maintain":
		return GoalMaintenance, nil
	case "":
		return "", invalid("goal", "is required")
	}
	return "", invalid("goal", "unknown value %q (use maintenance, loss or gain)", raw)
}

func ParseMacroProfile(raw string) (MacroProfile, error) {
	m := MacroProfile(normalizeEnum(raw))
	if m == "" {
		return MacroBalanced, nil
	}
	if _, ok := macroSplits[m]; ok {
		return m, nil
	}
	return "", invalid("macroProfile", "unknown value %q", raw)
}

func ParseSupplementGoal(raw string) (SupplementGoal, error) {
	switch s := SupplementGoal(normalizeEnum(raw)); s {
	case SupplementMuscleBuilding, SupplementFatLoss, SupplementEnergy, SupplementRecovery:
		return s, nil
	}
	return "", invalid("supplementGoals", "unknown value %q", raw)
}
