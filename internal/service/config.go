package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

const (
	ConfigDefaultUnits       = "default_units"
	ConfigDefaultMealsPerDay = "default_meals_per_day"
)

var configValidators = map[string]func(string) error{
	ConfigDefaultUnits: func(v string) error {
		_, err := projection.ParseUnitSystem(v)
		return err
	},
	ConfigDefaultMealsPerDay: func(v string) error {
		switch v {
		case "3", "4", "6":
			return nil
		}
		return fmt.Errorf("meals per day must be 3, 4 or 6")
	},
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	value = strings.TrimSpace(value)
	validate, ok := configValidators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := validate(value); err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ApplyFormDefaults fills unit system and meals per day from stored
// preferences when the form leaves them blank.
func ApplyFormDefaults(db *sql.DB, f projection.FormInput) (projection.FormInput, error) {
	if strings.TrimSpace(f.Units) == "" {
		v, ok, err := GetConfig(db, ConfigDefaultUnits)
		if err != nil {
			return f, err
		}
		if ok {
			f.Units = v
		}
	}
	if strings.TrimSpace(f.MealsPerDay) == "" {
		v, ok, err := GetConfig(db, ConfigDefaultMealsPerDay)
		if err != nil {
			return f, err
		}
		if ok {
			f.MealsPerDay = v
		}
	}
	return f, nil
}
