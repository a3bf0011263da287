package httpapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

const maxBodyBytes = 1 << 20

func formFields(f *projection.FormInput) map[string]*string {
	return map[string]*string{
		"units":           &f.Units,
		"sex":             &f.Sex,
		"age":             &f.Age,
		"height":          &f.Height,
		"weight":          &f.Weight,
		"desiredWeight":   &f.DesiredWeight,
		"bodyFat":         &f.BodyFat,
		"activity":        &f.Activity,
		"workoutDays":     &f.WorkoutDays,
		"sleepHours":      &f.SleepHours,
		"stress":          &f.Stress,
		"goal":            &f.Goal,
		"macroProfile":    &f.MacroProfile,
		"mealsPerDay":     &f.MealsPerDay,
		"supplementGoals": &f.SupplementGoals,
	}
}

// decodeForm accepts either a JSON object or a url-encoded form. JSON values
// may be strings, numbers or (for supplementGoals) arrays of strings.
func decodeForm(w http.ResponseWriter, r *http.Request) (projection.FormInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return projection.FormInput{}, &projection.ValidationError{Field: "body", Reason: fmt.Sprintf("malformed JSON: %v", err)}
		}
		return formFromMap(raw)
	}
	if err := r.ParseForm(); err != nil {
		return projection.FormInput{}, &projection.ValidationError{Field: "body", Reason: err.Error()}
	}
	return formFromValues(r.Form), nil
}

func formFromValues(values url.Values) projection.FormInput {
	var f projection.FormInput
	for key, dst := range formFields(&f) {
		vs := values[key]
		if len(vs) == 0 {
			continue
		}
		if key == "supplementGoals" {
			*dst = strings.Join(vs, ",")
			continue
		}
		*dst = vs[0]
	}
	return f
}

func formFromMap(raw map[string]any) (projection.FormInput, error) {
	var f projection.FormInput
	for key, dst := range formFields(&f) {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		s, err := stringify(v)
		if err != nil {
			return projection.FormInput{}, &projection.ValidationError{Field: key, Reason: err.Error()}
		}
		*dst = s
	}
	return f, nil
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return "", fmt.Errorf("unexpected boolean")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, err := stringify(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unexpected %T", v)
	}
}
