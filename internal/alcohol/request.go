package alcohol

import (
	"strings"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

// Request is the caller-facing shape: sex as free text and weight in either
// kg or lb.
type Request struct {
	Sex        string  `json:"sex"`
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weightUnit,omitempty"`
	Drinks     []Drink `json:"drinks"`
}

func (r Request) Parse() (Input, error) {
	sex, err := projection.ParseSex(r.Sex)
	if err != nil {
		return Input{}, err
	}
	weight := r.Weight
	switch strings.ToLower(strings.TrimSpace(r.WeightUnit)) {
	case "", "kg":
	case "lb", "lbs":
		weight = projection.PoundsToKg(weight)
	default:
		return Input{}, invalid("weightUnit", "unsupported unit %q (use kg or lb)", r.WeightUnit)
	}
	return Input{Sex: sex, WeightKg: weight, Drinks: r.Drinks}, nil
}
