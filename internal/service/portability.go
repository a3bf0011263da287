package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

const exportVersion = 1

type ExportData struct {
	Version          int                     `json:"version"`
	ExportedAt       time.Time               `json:"exportedAt"`
	Profiles         []model.Profile         `json:"profiles"`
	Goals            []model.Goal            `json:"goals"`
	BodyMeasurements []model.BodyMeasurement `json:"bodyMeasurements"`
	Projections      []model.SavedProjection `json:"projections"`
	Config           map[string]string       `json:"config,omitempty"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

func ParseImportMode(raw string) (ImportMode, error) {
	switch m := ImportMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return ImportModeMerge, nil
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return m, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (use fail, skip, merge or replace)", raw)
	}
}

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	out := &ExportData{Version: exportVersion, ExportedAt: time.Now().UTC().Truncate(time.Second)}

	profiles, err := ProfileHistory(db)
	if err != nil {
		return nil, fmt.Errorf("export profiles: %w", err)
	}
	out.Profiles = profiles

	goals, err := GoalHistory(db)
	if err != nil {
		return nil, fmt.Errorf("export goals: %w", err)
	}
	out.Goals = goals

	bodyRows, err := db.Query(`SELECT id, measured_at, weight_kg, body_fat_pct, IFNULL(notes, '') FROM body_measurements ORDER BY measured_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export body measurements: %w", err)
	}
	out.BodyMeasurements = make([]model.BodyMeasurement, 0)
	for bodyRows.Next() {
		m, err := scanBodyMeasurement(bodyRows)
		if err != nil {
			_ = bodyRows.Close()
			return nil, fmt.Errorf("scan export body measurement: %w", err)
		}
		out.BodyMeasurements = append(out.BodyMeasurements, m)
	}
	_ = bodyRows.Close()

	projRows, err := db.Query(`SELECT id, label, input_json, result_json, created_at FROM projections ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("export projections: %w", err)
	}
	out.Projections = make([]model.SavedProjection, 0)
	for projRows.Next() {
		p, err := scanProjection(projRows)
		if err != nil {
			_ = projRows.Close()
			return nil, fmt.Errorf("scan export projection: %w", err)
		}
		out.Projections = append(out.Projections, p)
	}
	_ = projRows.Close()

	cfg, err := ListConfig(db)
	if err != nil {
		return nil, err
	}
	out.Config = cfg
	return out, nil
}

// ImportDataSnapshot loads an export inside one transaction. Rows are matched
// by natural key: profiles and goals by effective date, body measurements by
// timestamp, projections by id. Mode decides what happens on a match. A dry
// run reports the same counts and rolls back.
func ImportDataSnapshot(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	if data.Version > exportVersion {
		return report, fmt.Errorf("unsupported export version %d", data.Version)
	}
	mode, err := ParseImportMode(string(opts.Mode))
	if err != nil {
		return report, err
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}
	im := importer{tx: tx, mode: mode, report: &report}

	for _, p := range data.Profiles {
		if err := projection.Validate(p.Input.Profile, p.Input.Lifestyle, p.Input.Goal); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("profile %s skipped: %v", p.EffectiveDate, err))
			report.Skipped++
			continue
		}
		date, err := resolveDate("profile effective date", p.EffectiveDate)
		if err != nil {
			return report, err
		}
		raw, err := json.Marshal(p.Input)
		if err != nil {
			return report, fmt.Errorf("encode profile %s: %w", date, err)
		}
		err = im.row("profile "+date,
			`SELECT COUNT(1) FROM profiles WHERE effective_date = ?`, []any{date},
			`INSERT INTO profiles(input_json, effective_date) VALUES(?, ?)`, []any{string(raw), date},
			`UPDATE profiles SET input_json = ? WHERE effective_date = ?`, []any{string(raw), date})
		if err != nil {
			return report, err
		}
	}

	for _, g := range data.Goals {
		date, err := resolveDate("goal effective date", g.EffectiveDate)
		if err != nil {
			return report, err
		}
		if g.Source == "" {
			g.Source = GoalSourceManual
		}
		err = im.row("goal "+date,
			`SELECT COUNT(1) FROM goals WHERE effective_date = ?`, []any{date},
			`INSERT INTO goals(calories, protein_g, carbs_g, fat_g, source, effective_date) VALUES(?, ?, ?, ?, ?, ?)`,
			[]any{g.Calories, g.ProteinG, g.CarbsG, g.FatG, g.Source, date},
			`UPDATE goals SET calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, source = ? WHERE effective_date = ?`,
			[]any{g.Calories, g.ProteinG, g.CarbsG, g.FatG, g.Source, date})
		if err != nil {
			return report, err
		}
	}

	for _, b := range data.BodyMeasurements {
		if b.WeightKg <= 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("body measurement %s skipped: weight must be > 0", b.MeasuredAt.Format(time.RFC3339)))
			report.Skipped++
			continue
		}
		at := b.MeasuredAt.Format(time.RFC3339)
		err := im.row("body measurement "+at,
			`SELECT COUNT(1) FROM body_measurements WHERE measured_at = ?`, []any{at},
			`INSERT INTO body_measurements(measured_at, weight_kg, body_fat_pct, notes) VALUES(?, ?, ?, ?)`,
			[]any{at, b.WeightKg, b.BodyFatPct, b.Notes},
			`UPDATE body_measurements SET weight_kg = ?, body_fat_pct = ?, notes = ? WHERE measured_at = ?`,
			[]any{b.WeightKg, b.BodyFatPct, b.Notes, at})
		if err != nil {
			return report, err
		}
	}

	for _, p := range data.Projections {
		inputJSON, err := json.Marshal(p.Input)
		if err != nil {
			return report, fmt.Errorf("encode projection %s input: %w", p.ID, err)
		}
		resultJSON, err := json.Marshal(p.Result)
		if err != nil {
			return report, fmt.Errorf("encode projection %s result: %w", p.ID, err)
		}
		created := p.CreatedAt.UTC().Format(time.RFC3339)
		target := int(math.Round(p.Result.TargetCalories))
		err = im.row("projection "+p.ID,
			`SELECT COUNT(1) FROM projections WHERE id = ?`, []any{p.ID},
			`INSERT INTO projections(id, label, input_json, result_json, target_calories, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
			[]any{p.ID, p.Label, string(inputJSON), string(resultJSON), target, created},
			`UPDATE projections SET label = ?, input_json = ?, result_json = ?, target_calories = ? WHERE id = ?`,
			[]any{p.Label, string(inputJSON), string(resultJSON), target, p.ID})
		if err != nil {
			return report, err
		}
	}

	for key, value := range data.Config {
		validate, ok := configValidators[key]
		if !ok || validate(value) != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("config %s skipped", key))
			report.Skipped++
			continue
		}
		err := im.row("config "+key,
			`SELECT COUNT(1) FROM app_config WHERE key = ?`, []any{key},
			`INSERT INTO app_config(key, value) VALUES(?, ?)`, []any{key, value},
			`UPDATE app_config SET value = ?, updated_at = CURRENT_TIMESTAMP WHERE key = ?`, []any{value, key})
		if err != nil {
			return report, err
		}
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import tx: %w", err)
	}
	return report, nil
}

type importer struct {
	tx     *sql.Tx
	mode   ImportMode
	report *ImportReport
}

func (im importer) row(label, existsSQL string, existsArgs []any, insertSQL string, insertArgs []any, updateSQL string, updateArgs []any) error {
	var n int
	if err := im.tx.QueryRow(existsSQL, existsArgs...).Scan(&n); err != nil {
		return fmt.Errorf("check existing %s: %w", label, err)
	}
	if n == 0 {
		if _, err := im.tx.Exec(insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("import %s: %w", label, err)
		}
		im.report.Inserted++
		return nil
	}
	switch im.mode {
	case ImportModeFail:
		im.report.Conflicts++
		return fmt.Errorf("import conflict: %s already exists", label)
	case ImportModeSkip:
		im.report.Skipped++
		return nil
	default:
		if _, err := im.tx.Exec(updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("update %s: %w", label, err)
		}
		im.report.Updated++
		return nil
	}
}

func clearUserData(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM projections`,
		`DELETE FROM profiles`,
		`DELETE FROM goals`,
		`DELETE FROM body_measurements`,
		`DELETE FROM app_config`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("clear data for replace mode: %w", err)
		}
	}
	return nil
}
