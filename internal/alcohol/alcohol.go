// Package alcohol estimates the calorie and blood-alcohol impact of a set of
// drinks. All arithmetic is linear in the drink volumes.
package alcohol

import (
	"fmt"
	"math"
	"strings"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

const (
	ethanolDensityGPerMl = 0.789
	gramsPerStandard     = 14.0
	kcalPerGramAlcohol   = 7.0
	kcalPerGramCarbs     = 4.0
	mlPerFluidOunce      = 29.5735295625
	bacEliminationPerHr  = 0.015
	runningKcalPerMinute = 10.0

	widmarkMale   = 0.68
	widmarkFemale = 0.55
)

type Kind string

const (
	Beer     Kind = "beer"
	Wine     Kind = "wine"
	Spirit   Kind = "spirit"
	Cocktail Kind = "cocktail"
)

type kindDefaults struct {
	volumeMl     float64
	abvPercent   float64
	carbsPerServ float64
}

var kinds = map[Kind]kindDefaults{
	Beer:     {volumeMl: 355, abvPercent: 5, carbsPerServ: 13},
	Wine:     {volumeMl: 150, abvPercent: 12, carbsPerServ: 4},
	Spirit:   {volumeMl: 44, abvPercent: 40, carbsPerServ: 0},
	Cocktail: {volumeMl: 200, abvPercent: 12, carbsPerServ: 20},
}

// Drink is one line of the order. A nil Volume or ABVPercent falls back to
// the standard serving for Kind; an explicit 0% ABV is a non-alcoholic drink.
type Drink struct {
	Kind       Kind     `json:"kind"`
	Volume     *float64 `json:"volume,omitempty"`
	VolumeUnit string   `json:"volumeUnit,omitempty"`
	ABVPercent *float64 `json:"abvPercent,omitempty"`
	Count      int      `json:"count"`
}

type Input struct {
	Sex      projection.Sex `json:"sex"`
	WeightKg float64        `json:"weightKg"`
	Drinks   []Drink        `json:"drinks"`
}

type DrinkImpact struct {
	Kind           Kind    `json:"kind"`
	VolumeMl       float64 `json:"volumeMl"`
	EthanolGrams   float64 `json:"ethanolGrams"`
	StandardDrinks float64 `json:"standardDrinks"`
	Calories       float64 `json:"calories"`
}

type Result struct {
	Drinks          []DrinkImpact `json:"drinks"`
	EthanolGrams    float64       `json:"ethanolGrams"`
	StandardDrinks  float64       `json:"standardDrinks"`
	AlcoholCalories float64       `json:"alcoholCalories"`
	CarbCalories    float64       `json:"carbCalories"`
	TotalCalories   int           `json:"totalCalories"`
	PeakBACPercent  float64       `json:"peakBacPercent"`
	HoursToSober    float64       `json:"hoursToSober"`
	WorkoutMinutes  int           `json:"workoutMinutes"`
}

func invalid(field, format string, args ...any) error {
	return &projection.ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := kinds[k]; !ok {
		return "", invalid("kind", "unknown drink %q (use beer, wine, spirit or cocktail)", raw)
	}
	return k, nil
}

func volumeToMl(v float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "ml":
		return v, nil
	case "fl-oz", "floz", "oz":
		return v * mlPerFluidOunce, nil
	default:
		return 0, invalid("volumeUnit", "unsupported unit %q (use ml or fl-oz)", unit)
	}
}

func Calculate(in Input) (Result, error) {
	if in.Sex != projection.Male && in.Sex != projection.Female {
		return Result{}, invalid("sex", "unknown value %q", in.Sex)
	}
	if !(in.WeightKg > 0) || math.IsInf(in.WeightKg, 0) {
		return Result{}, invalid("weight", "must be > 0")
	}
	if len(in.Drinks) == 0 {
		return Result{}, invalid("drinks", "at least one drink is required")
	}

	out := Result{Drinks: make([]DrinkImpact, 0, len(in.Drinks))}
	for i, d := range in.Drinks {
		impact, carbKcal, err := drinkImpact(d)
		if err != nil {
			return Result{}, fmt.Errorf("drink %d: %w", i+1, err)
		}
		out.Drinks = append(out.Drinks, impact)
		out.EthanolGrams += impact.EthanolGrams
		out.CarbCalories += carbKcal
	}
	out.StandardDrinks = out.EthanolGrams / gramsPerStandard
	out.AlcoholCalories = out.EthanolGrams * kcalPerGramAlcohol
	total := out.AlcoholCalories + out.CarbCalories
	out.TotalCalories = int(math.Round(total))

	r := widmarkFemale
	if in.Sex == projection.Male {
		r = widmarkMale
	}
	out.PeakBACPercent = out.EthanolGrams / (in.WeightKg * 1000 * r) * 100
	out.HoursToSober = out.PeakBACPercent / bacEliminationPerHr
	out.WorkoutMinutes = int(math.Ceil(total / runningKcalPerMinute))
	return out, nil
}

func drinkImpact(d Drink) (DrinkImpact, float64, error) {
	k, err := ParseKind(string(d.Kind))
	if err != nil {
		return DrinkImpact{}, 0, err
	}
	def := kinds[k]
	if d.Count < 1 {
		return DrinkImpact{}, 0, invalid("count", "must be >= 1")
	}
	volume := def.volumeMl
	if d.Volume != nil {
		if !(*d.Volume > 0) || math.IsInf(*d.Volume, 0) {
			return DrinkImpact{}, 0, invalid("volume", "must be > 0")
		}
		if volume, err = volumeToMl(*d.Volume, d.VolumeUnit); err != nil {
			return DrinkImpact{}, 0, err
		}
	}
	abv := def.abvPercent
	if d.ABVPercent != nil {
		if !(*d.ABVPercent >= 0 && *d.ABVPercent <= 100) {
			return DrinkImpact{}, 0, invalid("abvPercent", "must be between 0 and 100")
		}
		abv = *d.ABVPercent
	}

	totalMl := volume * float64(d.Count)
	ethanol := totalMl * abv / 100 * ethanolDensityGPerMl
	carbKcal := def.carbsPerServ * kcalPerGramCarbs * totalMl / def.volumeMl
	return DrinkImpact{
		Kind:           k,
		VolumeMl:       totalMl,
		EthanolGrams:   ethanol,
		StandardDrinks: ethanol / gramsPerStandard,
		Calories:       ethanol*kcalPerGramAlcohol + carbKcal,
	}, carbKcal, nil
}
