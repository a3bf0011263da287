// Package projection turns a person's biometrics, lifestyle and goal into a
// calorie target, macro split and derived metrics. Everything here is a pure
// function of its inputs.
package projection

import (
	"math"
)

func Project(p PersonProfile, l LifestyleFactors, g GoalSpec) (ProjectionResult, error) {
	if err := Validate(p, l, g); err != nil {
		return ProjectionResult{}, err
	}

	bmr := BMR(p.Sex, p.WeightKg, p.HeightCm, p.AgeYears)
	multiplier := AdjustedMultiplier(p.ActivityMultiplier, l)
	tdee := bmr * multiplier

	target, rate, weeks := goalTarget(tdee, p.WeightKg, p.DesiredWeightKg, g.Goal)

	bodyFat, estimated := p.bodyFat()
	out := ProjectionResult{
		BMR:                   bmr,
		TDEE:                  tdee,
		TargetCalories:        target,
		ActivityMultiplier:    multiplier,
		ActivityLabel:         ActivityLabel(p.ActivityMultiplier),
		MacrosGrams:           Macros(target, KgToPounds(p.WeightKg), g.MacroProfile),
		WeeklyChangeRateLbs:   rate,
		WeeksToGoal:           weeks,
		BodyFatPercent:        bodyFat,
		BodyFatEstimated:      estimated,
		LeanBodyMassKg:        p.WeightKg * (1 - bodyFat/100),
		DailyWaterMl:          int(math.Round(p.WeightKg*35 + target*0.5)),
		MealTimingCalories:    MealTiming(target, g.MealsPerDay),
		SupplementSuggestions: Supplements(g.SupplementGoals),
	}
	return out, nil
}

func Validate(p PersonProfile, l LifestyleFactors, g GoalSpec) error {
	if p.Sex != Male && p.Sex != Female {
		return invalid("sex", "unknown value %q", p.Sex)
	}
	if p.AgeYears <= 0 {
		return invalid("age", "must be > 0")
	}
	if !positive(p.HeightCm) {
		return invalid("height", "must be > 0")
	}
	if !positive(p.WeightKg) {
		return invalid("weight", "must be > 0")
	}
	if !positive(p.DesiredWeightKg) {
		return invalid("desiredWeight", "must be > 0")
	}
	if p.BodyFatPercent != nil {
		bf := *p.BodyFatPercent
		if math.IsNaN(bf) || bf < 0 || bf > 100 {
			return invalid("bodyFat", "must be between 0 and 100")
		}
	}
	if math.IsNaN(p.ActivityMultiplier) || p.ActivityMultiplier < minActivityMultiplier || p.ActivityMultiplier > maxActivityMultiplier {
		return invalid("activity", "must be between %.1f and %.1f", minActivityMultiplier, maxActivityMultiplier)
	}
	if l.WorkoutDaysPerWeek < 0 || l.WorkoutDaysPerWeek > 7 {
		return invalid("workoutDays", "must be between 0 and 7")
	}
	if l.SleepHoursPerNight < 5 || l.SleepHoursPerNight > 10 {
		return invalid("sleepHours", "must be between 5 and 10")
	}
	switch l.StressLevel {
	case StressLow, StressModerate, StressHigh:
	default:
		return invalid("stress", "unknown value %q", l.StressLevel)
	}
	switch g.Goal {
	case GoalMaintenance, GoalLoss, GoalGain:
	default:
		return invalid("goal", "unknown value %q", g.Goal)
	}
	if _, ok := macroSplits[g.MacroProfile]; !ok {
		return invalid("macroProfile", "unknown value %q", g.MacroProfile)
	}
	if _, ok := mealTimingSplits[g.MealsPerDay]; !ok {
		return invalid("mealsPerDay", "must be 3, 4 or 6")
	}
	for _, s := range g.SupplementGoals {
		if _, err := ParseSupplementGoal(string(s)); err != nil {
			return err
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// BMR uses the Mifflin-St Jeor equation.
func BMR(sex Sex, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == Male {
		return bmr + 5
	}
	return bmr - 161
}

func AdjustedMultiplier(base float64, l LifestyleFactors) float64 {
	m := base
	switch {
	case l.WorkoutDaysPerWeek > 5:
		m += 0.10
	case l.WorkoutDaysPerWeek < 2:
		m -= 0.05
	}
	switch {
	case l.SleepHoursPerNight < 7:
		m -= 0.05
	case l.SleepHoursPerNight > 8:
		m += 0.02
	}
	switch l.StressLevel {
	case StressHigh:
		m -= 0.05
	case StressLow:
		m += 0.02
	}
	return m
}

// goalTarget returns the calorie target, the signed weekly change in pounds
// and the whole weeks needed to reach the desired weight. The fixed deficit
// and surplus tiers keep the weekly rate non-zero for loss and gain.
func goalTarget(tdee, currentKg, desiredKg float64, goal Goal) (float64, float64, int) {
	switch goal {
	case GoalLoss:
		toLose := currentKg - desiredKg
		deficit := lossDeficit(toLose)
		rate := -(deficit * 7 / kcalPerPound)
		return tdee - deficit, rate, weeksFor(KgToPounds(toLose), math.Abs(rate))
	case GoalGain:
		toGain := desiredKg - currentKg
		surplus := gainSurplus(toGain)
		rate := surplus * 7 / kcalPerPound
		return tdee + surplus, rate, weeksFor(KgToPounds(toGain), rate)
	default:
		return tdee, 0, 0
	}
}

// weeksFor is zero when the desired weight is already reached.
func weeksFor(deltaLbs, ratePerWeek float64) int {
	if deltaLbs <= 0 {
		return 0
	}
	return int(math.Ceil(deltaLbs / ratePerWeek))
}

// Macros converts a calorie target into gram amounts. Each macro is rounded
// on its own, so the grams may miss the target by a few kcal.
func Macros(targetCalories, weightLbs float64, profile MacroProfile) MacroGrams {
	if profile == MacroHighProtein {
		proteinG := math.Round(weightLbs)
		remaining := math.Max(targetCalories-proteinG*kcalPerGramProtein, 0)
		return MacroGrams{
			Carbs:   roundGrams(remaining*highProteinRemainderCarbs, kcalPerGramCarbs),
			Protein: int(proteinG),
			Fat:     roundGrams(remaining*highProteinRemainderFat, kcalPerGramFat),
		}
	}
	split := macroSplits[profile]
	return MacroGrams{
		Carbs:   roundGrams(targetCalories*split.carbs/100, kcalPerGramCarbs),
		Protein: roundGrams(targetCalories*split.protein/100, kcalPerGramProtein),
		Fat:     roundGrams(targetCalories*split.fat/100, kcalPerGramFat),
	}
}

func roundGrams(kcal, kcalPerGram float64) int {
	return int(math.Round(kcal / kcalPerGram))
}

func (p PersonProfile) bodyFat() (float64, bool) {
	if p.BodyFatPercent != nil {
		return *p.BodyFatPercent, false
	}
	return EstimateBodyFat(p.Sex, p.WeightKg, p.HeightCm, p.AgeYears), true
}

// EstimateBodyFat derives body fat from BMI, clamped to [5, 50].
func EstimateBodyFat(sex Sex, weightKg, heightCm float64, age int) float64 {
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	offset := 5.4
	if sex == Male {
		offset = 16.2
	}
	bf := 1.20*bmi + 0.23*float64(age) - offset
	return math.Min(math.Max(bf, 5), 50)
}

func MealTiming(targetCalories float64, mealsPerDay int) map[string]int {
	split, ok := mealTimingSplits[mealsPerDay]
	if !ok {
		split = mealTimingSplits[6]
	}
	out := make(map[string]int, len(mealNames))
	for i, name := range mealNames {
		out[name] = int(math.Round(targetCalories * split[i]))
	}
	return out
}

func Supplements(goals []SupplementGoal) []string {
	want := make(map[SupplementGoal]bool, len(goals))
	for _, g := range goals {
		want[g] = true
	}
	out := make([]string, 0)
	for _, entry := range supplementTable {
		if want[entry.goal] {
			out = append(out, entry.names...)
		}
	}
	return out
}
