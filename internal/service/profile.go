package service

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

type SetProfileInput struct {
	Input         projection.Input
	EffectiveDate string
}

// SetProfile stores validated calculator inputs. A second profile on the same
// effective date replaces the first.
func SetProfile(db *sql.DB, in SetProfileInput) error {
	if err := projection.Validate(in.Input.Profile, in.Input.Lifestyle, in.Input.Goal); err != nil {
		return err
	}
	date, err := resolveDate("effective date", in.EffectiveDate)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(in.Input)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO profiles(input_json, effective_date)
VALUES(?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  input_json=excluded.input_json
`, string(raw), date)
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

func CurrentProfile(db *sql.DB, date string) (*model.Profile, error) {
	date, err := resolveDate("date", date)
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(`
SELECT id, input_json, effective_date, created_at
FROM profiles
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, date)
	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("current profile for %s: %w", date, err)
	}
	return &p, nil
}

func ProfileHistory(db *sql.DB) ([]model.Profile, error) {
	rows, err := db.Query(`
SELECT id, input_json, effective_date, created_at
FROM profiles
ORDER BY effective_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list profile history: %w", err)
	}
	defer rows.Close()
	items := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return items, nil
}

func scanProfile(row rowScanner) (model.Profile, error) {
	var p model.Profile
	var raw string
	if err := row.Scan(&p.ID, &raw, &p.EffectiveDate, &p.CreatedAt); err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(raw), &p.Input); err != nil {
		return p, fmt.Errorf("decode profile %d: %w", p.ID, err)
	}
	return p, nil
}

// WithBodyMeasurement replaces the stored weight, and body fat when one was
// measured, with a newer body measurement.
func WithBodyMeasurement(in projection.Input, m *model.BodyMeasurement) projection.Input {
	if m == nil {
		return in
	}
	in.Profile.WeightKg = m.WeightKg
	if m.BodyFatPct != nil {
		v := *m.BodyFatPct
		in.Profile.BodyFatPercent = &v
	}
	return in
}
