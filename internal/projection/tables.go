package projection

import "math"

const (
	kcalPerPound       = 3500.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramProtein = 4.0
	kcalPerGramFat     = 9.0

	minActivityMultiplier = 1.2
	maxActivityMultiplier = 1.9
)

type activityAnchor struct {
	multiplier float64
	label      string
}

var activityAnchors = []activityAnchor{
	{1.2, "sedentary"},
	{1.375, "lightly active"},
	{1.55, "moderately active"},
	{1.725, "very active"},
	{1.9, "extremely active"},
}

// ActivityLabel names the canonical anchor nearest to multiplier. Ties go to
// the lower anchor. It is used for display only.
func ActivityLabel(multiplier float64) string {
	best := activityAnchors[0]
	for _, a := range activityAnchors[1:] {
		if math.Abs(a.multiplier-multiplier) < math.Abs(best.multiplier-multiplier) {
			best = a
		}
	}
	return best.label
}

// macroSplit is a percentage-of-calories triple summing to 100.
type macroSplit struct {
	carbs, protein, fat float64
}

var macroSplits = map[MacroProfile]macroSplit{
	MacroBalanced:        {50, 20, 30},
	MacroModerateProtein: {35, 40, 25},
	MacroHighProtein:     {15, 70, 15},
	MacroHighCarb:        {70, 15, 15},
	MacroKeto:            {5, 25, 70},
	MacroPaleo:           {30, 35, 35},
}

// High-protein splits whatever is left after 1 g/lb protein by calorie share.
const (
	highProteinRemainderCarbs = 0.20
	highProteinRemainderFat   = 0.80
)

var mealNames = []string{"breakfast", "lunch", "dinner", "snacks"}

var mealTimingSplits = map[int][]float64{
	3: {0.25, 0.35, 0.30, 0.10},
	4: {0.25, 0.25, 0.25, 0.25},
	6: {0.20, 0.20, 0.20, 0.40},
}

type supplementEntry struct {
	goal  SupplementGoal
	names []string
}

var supplementTable = []supplementEntry{
	{SupplementMuscleBuilding, []string{"creatine monohydrate", "whey protein"}},
	{SupplementFatLoss, []string{"green tea extract", "L-carnitine"}},
	{SupplementEnergy, []string{"caffeine", "B-complex vitamins"}},
	{SupplementRecovery, []string{"magnesium glycinate", "omega-3 fish oil"}},
}

func lossDeficit(weightToLoseKg float64) float64 {
	switch {
	case weightToLoseKg > 20:
		return 750
	case weightToLoseKg > 10:
		return 500
	default:
		return 250
	}
}

func gainSurplus(weightToGainKg float64) float64 {
	if weightToGainKg > 5 {
		return 500
	}
	return 300
}

// MealNames lists the meal-timing buckets in display order.
func MealNames() []string {
	return append([]string(nil), mealNames...)
}
