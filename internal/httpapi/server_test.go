package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/db"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

const referenceJSON = `{"sex":"male","age":30,"height":175,"weight":80,"desiredWeight":75,
"activity":1.55,"workoutDays":3,"sleepHours":8,"stress":"moderate","goal":"loss",
"macroProfile":"balanced","mealsPerDay":3}`

func newTestServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	sqldb, err := db.OpenMigrated(filepath.Join(t.TempDir(), "nutri.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })
	return New(sqldb, zap.NewNop(), Options{}), sqldb
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestProjectionJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/projection", "application/json", referenceJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var res projection.ProjectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 2460.5625, res.TargetCalories, 1e-6)
	assert.Equal(t, 23, res.WeeksToGoal)
	assert.Equal(t, projection.MacroGrams{Carbs: 308, Protein: 123, Fat: 82}, res.MacrosGrams)
}

func TestProjectionFormEncoded(t *testing.T) {
	s, _ := newTestServer(t)
	form := url.Values{
		"units":           {"imperial"},
		"sex":             {"female"},
		"age":             {"44"},
		"height":          {"64"},
		"weight":          {"160"},
		"desiredWeight":   {"140"},
		"activity":        {"1.375"},
		"goal":            {"loss"},
		"macroProfile":    {"high-protein"},
		"supplementGoals": {"fat-loss", "energy"},
	}
	rec := do(t, s, http.MethodPost, "/api/projection", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res projection.ProjectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 160, res.MacrosGrams.Protein)
	assert.Equal(t, []string{"green tea extract", "L-carnitine", "caffeine", "B-complex vitamins"}, res.SupplementSuggestions)
}

func TestProjectionValidationError(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/projection", "application/json", `{"sex":"male","age":"abc","height":175,"weight":80,"activity":1.55,"goal":"loss"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "age", body.Field)

	rec = do(t, s, http.MethodPost, "/api/projection", "application/json", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectionUsesStoredMealsDefault(t *testing.T) {
	s, sqldb := newTestServer(t)
	require.NoError(t, service.SetConfig(sqldb, service.ConfigDefaultMealsPerDay, "4"))

	body := strings.Replace(referenceJSON, `,"mealsPerDay":3`, "", 1)
	rec := do(t, s, http.MethodPost, "/api/projection", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res projection.ProjectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, res.MealTimingCalories["breakfast"], res.MealTimingCalories["snacks"])
}

func TestSavedProjectionLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/projection?save=true&label=spring", "application/json", referenceJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved savedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)

	rec = do(t, s, http.MethodGet, "/api/projections/"+saved.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"spring"`)

	rec = do(t, s, http.MethodGet, "/api/projections?limit=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list["projections"], 1)

	rec = do(t, s, http.MethodDelete, "/api/projections/"+saved.ID, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/projections/"+saved.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/projections/nope", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPersistenceRoutesWithoutDB(t *testing.T) {
	s := New(nil, nil, Options{DefaultUnits: projection.Metric})
	rec := do(t, s, http.MethodGet, "/api/projections", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/projection", "application/json", referenceJSON)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAlcoholEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/alcohol", "application/json",
		`{"sex":"male","weight":176.37,"weightUnit":"lb","drinks":[{"kind":"beer","count":2}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		TotalCalories int `json:"totalCalories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 300, res.TotalCalories)

	rec = do(t, s, http.MethodPost, "/api/alcohol", "application/json", `{"sex":"male","weight":80,"drinks":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToolCall(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/mcp", "application/json",
		`{"name":"project_nutrition","arguments":`+referenceJSON+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Content, 1)
	assert.Equal(t, "text", out.Content[0].Type)

	var res projection.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out.Content[0].Text), &res))
	assert.Equal(t, 23, res.WeeksToGoal)

	rec = do(t, s, http.MethodPost, "/mcp", "application/json", `{"name":"log_meal","arguments":{}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/mcp", "application/json",
		`{"name":"alcohol_impact","arguments":{"sex":"female","weight":60,"drinks":[{"kind":"wine","count":1}]}}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestToolCallRejectsMalformedArguments(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/mcp", "application/json",
		`{"name":"alcohol_impact","arguments":{"sex":"male","weight":"eighty","drinks":[{"kind":"beer","count":1}]}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "arguments", body.Field)

	rec = do(t, s, http.MethodPost, "/mcp", "application/json",
		`{"name":"alcohol_impact","arguments":{"sex":"male","weight":80,"drinks":[{"kind":"beer","count":1,"abvPercent":0}]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
