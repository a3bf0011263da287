package projection

import (
	"strings"
)

const (
	KgPerPound = 0.453592
	CmPerInch  = 2.54
)

type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

func ParseUnitSystem(raw string) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "metric", "si":
		return Metric, nil
	case "imperial", "us":
		return Imperial, nil
	default:
		return "", invalid("units", "unknown unit system %q (use metric or imperial)", raw)
	}
}

func PoundsToKg(lb float64) float64 {
	return lb * KgPerPound
}

func KgToPounds(kg float64) float64 {
	return kg / KgPerPound
}

func InchesToCm(in float64) float64 {
	return in * CmPerInch
}

// weightToKg and heightToCm normalize a value in the caller's unit system.
func weightToKg(v float64, units UnitSystem) float64 {
	if units == Imperial {
		return PoundsToKg(v)
	}
	return v
}

func heightToCm(v float64, units UnitSystem) float64 {
	if units == Imperial {
		return InchesToCm(v)
	}
	return v
}
