package service

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

// DefaultProgressTolerance is how far, in lb/week, the measured trend may
// drift from the projected rate and still count as on track.
const DefaultProgressTolerance = 0.5

type WeightPoint struct {
	MeasuredAt time.Time `json:"measuredAt"`
	WeightKg   float64   `json:"weightKg"`
}

type ProgressReport struct {
	FromDate               string          `json:"fromDate"`
	ToDate                 string          `json:"toDate"`
	Measurements           int             `json:"measurements"`
	StartWeightKg          float64         `json:"startWeightKg"`
	EndWeightKg            float64         `json:"endWeightKg"`
	ChangeKg               float64         `json:"changeKg"`
	ActualWeeklyRateLbs    float64         `json:"actualWeeklyRateLbs"`
	Goal                   projection.Goal `json:"goal,omitempty"`
	DesiredWeightKg        float64         `json:"desiredWeightKg,omitempty"`
	ProjectedWeeklyRateLbs float64         `json:"projectedWeeklyRateLbs"`
	OnTrack                bool            `json:"onTrack"`
	EstimatedWeeksLeft     *int            `json:"estimatedWeeksLeft,omitempty"`
	Points                 []WeightPoint   `json:"points"`
}

// ProgressRange fits a least-squares line through the body measurements in
// [from, to] and compares its slope with the rate the profile in effect at
// `to` projects for the latest weight.
func ProgressRange(db *sql.DB, from, to string, tolerance float64) (*ProgressReport, error) {
	if tolerance <= 0 {
		tolerance = DefaultProgressTolerance
	}
	toDate, err := resolveDate("to date", to)
	if err != nil {
		return nil, err
	}
	if from == "" {
		t, _ := time.Parse(dateLayout, toDate)
		from = t.AddDate(0, 0, -27).Format(dateLayout)
	}
	fromDate, err := resolveDate("from date", from)
	if err != nil {
		return nil, err
	}
	if fromDate > toDate {
		return nil, fmt.Errorf("from date must be <= to date")
	}

	items, err := ListBodyMeasurements(db, BodyMeasurementFilter{FromDate: fromDate, ToDate: toDate, Limit: math.MaxInt32})
	if err != nil {
		return nil, err
	}
	if len(items) < 2 {
		return nil, fmt.Errorf("need at least two body measurements between %s and %s, found %d", fromDate, toDate, len(items))
	}
	// oldest first
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	report := &ProgressReport{
		FromDate:      fromDate,
		ToDate:        toDate,
		Measurements:  len(items),
		StartWeightKg: items[0].WeightKg,
		EndWeightKg:   items[len(items)-1].WeightKg,
		Points:        make([]WeightPoint, 0, len(items)),
	}
	report.ChangeKg = report.EndWeightKg - report.StartWeightKg

	xs := make([]float64, 0, len(items))
	ys := make([]float64, 0, len(items))
	origin := items[0].MeasuredAt
	for _, m := range items {
		report.Points = append(report.Points, WeightPoint{MeasuredAt: m.MeasuredAt, WeightKg: m.WeightKg})
		xs = append(xs, m.MeasuredAt.Sub(origin).Hours()/24)
		ys = append(ys, m.WeightKg)
	}
	kgPerDay := linearRegressionSlope(xs, ys)
	report.ActualWeeklyRateLbs = projection.KgToPounds(kgPerDay * 7)

	profile, err := CurrentProfile(db, toDate)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return report, nil
	}
	latest := items[len(items)-1]
	in := WithBodyMeasurement(profile.Input, &latest)
	res, err := in.Project()
	if err != nil {
		return nil, fmt.Errorf("project profile %s: %w", profile.EffectiveDate, err)
	}
	report.Goal = in.Goal.Goal
	report.DesiredWeightKg = in.Profile.DesiredWeightKg
	report.ProjectedWeeklyRateLbs = res.WeeklyChangeRateLbs
	report.OnTrack = math.Abs(report.ActualWeeklyRateLbs-report.ProjectedWeeklyRateLbs) <= tolerance
	report.EstimatedWeeksLeft = weeksLeft(latest, in.Profile.DesiredWeightKg, report.ActualWeeklyRateLbs)
	return report, nil
}

// weeksLeft is nil when the trend is flat or heads away from the target.
func weeksLeft(latest model.BodyMeasurement, desiredKg, rateLbs float64) *int {
	remainingLbs := projection.KgToPounds(desiredKg - latest.WeightKg)
	if remainingLbs == 0 {
		zero := 0
		return &zero
	}
	if rateLbs == 0 || math.Signbit(remainingLbs) != math.Signbit(rateLbs) {
		return nil
	}
	weeks := int(math.Ceil(remainingLbs / rateLbs))
	return &weeks
}

func linearRegressionSlope(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}
	denom := (float64(n) * sumX2) - (sumX * sumX)
	if denom == 0 {
		return 0
	}
	return ((float64(n) * sumXY) - (sumX * sumY)) / denom
}
