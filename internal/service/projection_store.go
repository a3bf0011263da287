package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid projection id")
)

func SaveProjection(db *sql.DB, label string, in projection.Input, res projection.ProjectionResult) (model.SavedProjection, error) {
	saved := model.SavedProjection{
		ID:        uuid.NewString(),
		Label:     strings.TrimSpace(label),
		Input:     in,
		Result:    res,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	inputJSON, err := json.Marshal(in)
	if err != nil {
		return model.SavedProjection{}, fmt.Errorf("encode projection input: %w", err)
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return model.SavedProjection{}, fmt.Errorf("encode projection result: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO projections(id, label, input_json, result_json, target_calories, created_at)
VALUES(?, ?, ?, ?, ?, ?)
`, saved.ID, saved.Label, string(inputJSON), string(resultJSON), int(math.Round(res.TargetCalories)), saved.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return model.SavedProjection{}, fmt.Errorf("save projection: %w", err)
	}
	return saved, nil
}

func GetProjection(db *sql.DB, id string) (model.SavedProjection, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return model.SavedProjection{}, fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	row := db.QueryRow(`
SELECT id, label, input_json, result_json, created_at
FROM projections
WHERE id = ?
`, id)
	p, err := scanProjection(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.SavedProjection{}, fmt.Errorf("projection %s: %w", id, ErrNotFound)
		}
		return model.SavedProjection{}, fmt.Errorf("get projection %s: %w", id, err)
	}
	return p, nil
}

func ListProjections(db *sql.DB, limit int) ([]model.SavedProjection, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
SELECT id, label, input_json, result_json, created_at
FROM projections
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list projections: %w", err)
	}
	defer rows.Close()
	items := make([]model.SavedProjection, 0)
	for rows.Next() {
		p, err := scanProjection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projections: %w", err)
	}
	return items, nil
}

func DeleteProjection(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM projections WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete projection %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("projection %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanProjection(row rowScanner) (model.SavedProjection, error) {
	var p model.SavedProjection
	var inputJSON, resultJSON, createdRaw string
	if err := row.Scan(&p.ID, &p.Label, &inputJSON, &resultJSON, &createdRaw); err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(inputJSON), &p.Input); err != nil {
		return p, fmt.Errorf("decode projection input: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &p.Result); err != nil {
		return p, fmt.Errorf("decode projection result: %w", err)
	}
	created, err := time.Parse(time.RFC3339, createdRaw)
	if err != nil {
		return p, fmt.Errorf("parse created_at: %w", err)
	}
	p.CreatedAt = created
	return p, nil
}
