package model

import (
	"time"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

type Goal struct {
	ID            int64     `json:"-"`
	Calories      int       `json:"calories"`
	ProteinG      float64   `json:"proteinG"`
	CarbsG        float64   `json:"carbsG"`
	FatG          float64   `json:"fatG"`
	Source        string    `json:"source"`
	EffectiveDate string    `json:"effectiveDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BodyMeasurement struct {
	ID         int64     `json:"-"`
	MeasuredAt time.Time `json:"measuredAt"`
	WeightKg   float64   `json:"weightKg"`
	BodyFatPct *float64  `json:"bodyFatPct,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// Profile is a stored calculator input, versioned by effective date.
type Profile struct {
	ID            int64            `json:"-"`
	Input         projection.Input `json:"input"`
	EffectiveDate string           `json:"effectiveDate"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type SavedProjection struct {
	ID        string                      `json:"id"`
	Label     string                      `json:"label,omitempty"`
	Input     projection.Input            `json:"input"`
	Result    projection.ProjectionResult `json:"result"`
	CreatedAt time.Time                   `json:"createdAt"`
}
