package alcohol_test

import (
	"math"
	"testing"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/alcohol"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

func ptr(v float64) *float64 {
	return &v
}

func TestCalculateTwoBeers(t *testing.T) {
	t.Parallel()
	res, err := alcohol.Calculate(alcohol.Input{
		Sex:      projection.Male,
		WeightKg: 80,
		Drinks:   []alcohol.Drink{{Kind: alcohol.Beer, Count: 2}},
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// 710ml * 5% * 0.789 = 28.0095g ethanol
	if math.Abs(res.EthanolGrams-28.0095) > 1e-6 {
		t.Fatalf("expected 28.0095g ethanol, got %.6f", res.EthanolGrams)
	}
	if math.Abs(res.StandardDrinks-2.000679) > 1e-5 {
		t.Fatalf("expected ~2 standard drinks, got %.6f", res.StandardDrinks)
	}
	// 196.0665 alcohol kcal + 104 carb kcal
	if res.TotalCalories != 300 {
		t.Fatalf("expected 300 kcal, got %d", res.TotalCalories)
	}
	if res.WorkoutMinutes != 31 {
		t.Fatalf("expected 31 workout minutes, got %d", res.WorkoutMinutes)
	}
	// 28.0095 / (80000 * 0.68) * 100
	if math.Abs(res.PeakBACPercent-0.051488) > 1e-5 {
		t.Fatalf("expected ~0.0515 BAC, got %.6f", res.PeakBACPercent)
	}
	if math.Abs(res.HoursToSober-res.PeakBACPercent/0.015) > 1e-12 {
		t.Fatalf("hours to sober should follow BAC elimination")
	}
}

func TestCalculateIsLinearInVolume(t *testing.T) {
	t.Parallel()
	one, err := alcohol.Calculate(alcohol.Input{Sex: projection.Female, WeightKg: 60, Drinks: []alcohol.Drink{{Kind: alcohol.Wine, Count: 1}}})
	if err != nil {
		t.Fatalf("calculate one: %v", err)
	}
	three, err := alcohol.Calculate(alcohol.Input{Sex: projection.Female, WeightKg: 60, Drinks: []alcohol.Drink{{Kind: alcohol.Wine, Count: 3}}})
	if err != nil {
		t.Fatalf("calculate three: %v", err)
	}
	if math.Abs(three.EthanolGrams-3*one.EthanolGrams) > 1e-9 {
		t.Fatalf("expected ethanol to scale linearly: %.4f vs %.4f", three.EthanolGrams, one.EthanolGrams)
	}
	if math.Abs(three.PeakBACPercent-3*one.PeakBACPercent) > 1e-9 {
		t.Fatalf("expected BAC to scale linearly")
	}
}

func TestCalculateFluidOunces(t *testing.T) {
	t.Parallel()
	res, err := alcohol.Calculate(alcohol.Input{
		Sex:      projection.Male,
		WeightKg: 90,
		Drinks:   []alcohol.Drink{{Kind: alcohol.Spirit, Volume: ptr(1.5), VolumeUnit: "fl-oz", Count: 1}},
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if math.Abs(res.Drinks[0].VolumeMl-44.36029) > 1e-4 {
		t.Fatalf("expected ~44.36ml, got %.5f", res.Drinks[0].VolumeMl)
	}
	if res.CarbCalories != 0 {
		t.Fatalf("expected no carb calories for spirits, got %.2f", res.CarbCalories)
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	t.Parallel()
	cases := []struct {
		field string
		in    alcohol.Input
	}{
		{"weight", alcohol.Input{Sex: projection.Male, Drinks: []alcohol.Drink{{Kind: alcohol.Beer, Count: 1}}}},
		{"drinks", alcohol.Input{Sex: projection.Male, WeightKg: 70}},
		{"kind", alcohol.Input{Sex: projection.Male, WeightKg: 70, Drinks: []alcohol.Drink{{Kind: "mead", Count: 1}}}},
		{"count", alcohol.Input{Sex: projection.Male, WeightKg: 70, Drinks: []alcohol.Drink{{Kind: alcohol.Beer}}}},
		{"abvPercent", alcohol.Input{Sex: projection.Male, WeightKg: 70, Drinks: []alcohol.Drink{{Kind: alcohol.Beer, Count: 1, ABVPercent: ptr(140)}}}},
		{"volumeUnit", alcohol.Input{Sex: projection.Male, WeightKg: 70, Drinks: []alcohol.Drink{{Kind: alcohol.Beer, Count: 1, Volume: ptr(2), VolumeUnit: "pint"}}}},
		{"volume", alcohol.Input{Sex: projection.Male, WeightKg: 70, Drinks: []alcohol.Drink{{Kind: alcohol.Beer, Count: 1, Volume: ptr(0)}}}},
	}
	for _, tc := range cases {
		_, err := alcohol.Calculate(tc.in)
		ve, ok := projection.AsValidationError(err)
		if !ok {
			t.Fatalf("%s: expected validation error, got %v", tc.field, err)
		}
		if ve.Field != tc.field {
			t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
		}
	}
}

func TestCalculateNonAlcoholicDrink(t *testing.T) {
	t.Parallel()
	res, err := alcohol.Calculate(alcohol.Input{
		Sex:      projection.Male,
		WeightKg: 80,
		Drinks:   []alcohol.Drink{{Kind: alcohol.Beer, Volume: ptr(355), VolumeUnit: "ml", ABVPercent: ptr(0), Count: 1}},
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.EthanolGrams != 0 || res.StandardDrinks != 0 || res.AlcoholCalories != 0 {
		t.Fatalf("expected no ethanol for a 0%% beer, got %+v", res)
	}
	if res.PeakBACPercent != 0 || res.HoursToSober != 0 {
		t.Fatalf("expected zero BAC for a 0%% beer, got %.4f", res.PeakBACPercent)
	}
	// carbs still count: 13g * 4 kcal
	if res.TotalCalories != 52 {
		t.Fatalf("expected 52 carb kcal, got %d", res.TotalCalories)
	}
}
