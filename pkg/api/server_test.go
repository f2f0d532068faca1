package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakriti-health/prakriti-api/pkg/assess"
	"github.com/prakriti-health/prakriti-api/pkg/config"
	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/model"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := logging.New("test")
	logger.SetOutput(io.Discard)

	// Empty artifact dir: every assessment runs in degraded mode
	registry := model.NewRegistry(filepath.Join(dir, "artifacts"), logger)
	assessor := assess.NewAssessor(registry, logger,
		assess.RiskThresholds{LowBelow: 0.33, HighAtOrAbove: 0.66}, 3)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		TokenExpiryHours: 1,
		AllowedOrigins:   []string{"*"},
	}
	return NewServer(cfg, logger, st, assessor)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func registerUser(t *testing.T, s *Server, email string) string {
	t.Helper()
	rec := doJSON(t, s, "POST", "/auth/register", "", map[string]any{
		"email":    email,
		"password": "secret123",
		"name":     "Asha",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func sampleAnswers() map[string]any {
	return map[string]any{
		"age":                30,
		"gender":             "Female",
		"body_frame":         "Thin and light",
		"skin_type":          "Dry and rough",
		"hair_type":          "Dry and frizzy",
		"appetite":           "Irregular",
		"sleep_pattern":      "Light and interrupted",
		"energy_pattern":     "Comes in bursts",
		"stress_response":    "Anxious and restless",
		"digestion":          "Variable and gassy",
		"weather_preference": "Warm and humid",
		"smoking":            "Never",
		"alcohol_use":        "Never",
		"family_history":     "No",
		"physical_activity":  "Moderate",
		"bmi":                21.5,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	token := registerUser(t, s, "asha@example.com")
	assert.NotEmpty(t, token)

	// Duplicate email is rejected
	rec := doJSON(t, s, "POST", "/auth/register", "", map[string]any{
		"email":    "asha@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login with the right password succeeds
	rec = doJSON(t, s, "POST", "/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])

	// Wrong password is rejected
	rec = doJSON(t, s, "POST", "/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/auth/register", "", map[string]any{"email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, "POST", "/auth/register", "", map[string]any{"password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, "POST", "/api/assess", "garbage-token", sampleAnswers())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuestionsLocalization(t *testing.T) {
	s := newTestServer(t)

	// Default English
	rec := doJSON(t, s, "GET", "/api/questions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "en", body["language"])
	questions := body["questions"].([]any)
	assert.Len(t, questions, 16)
	first := questions[0].(map[string]any)
	assert.Equal(t, "age", first["field"])
	assert.Equal(t, "What is your age?", first["question"])

	// Explicit header wins
	req := httptest.NewRequest("GET", "/api/questions", nil)
	req.Header.Set("X-Language", "hi")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	body = decodeBody(t, rr)
	assert.Equal(t, "hi", body["language"])
	first = body["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, "आपकी आयु क्या है?", first["question"])

	// Accept-Language negotiation
	req = httptest.NewRequest("GET", "/api/questions", nil)
	req.Header.Set("Accept-Language", "hi-IN, en;q=0.5")
	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	body = decodeBody(t, rr)
	assert.Equal(t, "hi", body["language"])
}

func TestAssessWithoutDeployedModels(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	rec := doJSON(t, s, "POST", "/api/assess", token, sampleAnswers())
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	dosha := body["dosha"].(map[string]any)
	assert.InDelta(t, 33.33, dosha["vata"].(float64), 0.01)
	assert.InDelta(t, 33.33, dosha["pitta"].(float64), 0.01)
	assert.InDelta(t, 33.33, dosha["kapha"].(float64), 0.01)
	assert.Equal(t, "Balanced", dosha["dominant"])

	cancer := body["cancer"].(map[string]any)
	assert.Equal(t, "unknown", cancer["risk_level"])
	assert.InDelta(t, 50.0, cancer["percentage"].(float64), 0.01)

	// Normalized inputs echo canonical class text
	inputs := body["inputs"].(map[string]any)
	assert.Equal(t, "Female", inputs["gender"])

	// Both results were persisted and the action audited
	rec = doJSON(t, s, "GET", "/api/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hist := decodeBody(t, rec)
	assert.Len(t, hist["dosha_evaluations"].([]any), 1)
	assert.Len(t, hist["cancer_risk_results"].([]any), 1)

	rec = doJSON(t, s, "GET", "/api/activity", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	activity := decodeBody(t, rec)["activity"].([]any)
	actions := make([]string, 0, len(activity))
	for _, a := range activity {
		actions = append(actions, a.(map[string]any)["action"].(string))
	}
	assert.Contains(t, actions, "assessment_completed")
	assert.Contains(t, actions, "user_registered")
}

func TestAssessRejectsEmptyBody(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	rec := doJSON(t, s, "POST", "/api/assess", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoshaEndpointAcceptsNestedAnswers(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	rec := doJSON(t, s, "POST", "/api/dosha", token, map[string]any{"answers": sampleAnswers()})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	dosha := body["dosha"].(map[string]any)
	assert.Equal(t, "Balanced", dosha["dominant"])
}

func TestYogaSessionsAndStreak(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	rec := doJSON(t, s, "POST", "/api/yoga", token, map[string]any{
		"practice":         "surya namaskar",
		"duration_minutes": 20,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, "POST", "/api/yoga", token, map[string]any{"practice": "pranayama"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, "GET", "/api/yoga", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["sessions"].([]any), 1)

	rec = doJSON(t, s, "GET", "/api/yoga/streak", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["streak_days"])
}

func TestDietEntries(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	rec := doJSON(t, s, "POST", "/api/diet", token, map[string]any{
		"meal":        "breakfast",
		"description": "poha with peanuts",
		"calories":    350,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, "POST", "/api/diet", token, map[string]any{"calories": 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, "GET", "/api/diet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody(t, rec)["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "poha with peanuts", entries[0].(map[string]any)["description"])
}

func TestHydrationTodayTotals(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	for _, ml := range []int{250, 500} {
		rec := doJSON(t, s, "POST", "/api/hydration", token, map[string]any{"amount_ml": ml})
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, s, "POST", "/api/hydration", token, map[string]any{"amount_ml": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, "GET", "/api/hydration/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(750), body["total_ml"])
	assert.Equal(t, float64(1), body["streak_days"])
}

func TestPreferencesMerge(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	// Registration seeds the language preference
	rec := doJSON(t, s, "GET", "/api/settings/preferences", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := decodeBody(t, rec)["preferences"].(map[string]any)
	assert.Equal(t, "en", prefs["language"])

	rec = doJSON(t, s, "PUT", "/api/settings/preferences", token, map[string]any{
		"daily_water_ml": 2000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	prefs = decodeBody(t, rec)["preferences"].(map[string]any)
	assert.Equal(t, "en", prefs["language"])
	assert.Equal(t, float64(2000), prefs["daily_water_ml"])
}

func TestQuestionsUseProfileLanguage(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "asha@example.com")

	rec := doJSON(t, s, "PUT", "/api/settings/preferences", token, map[string]any{"language": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	// No language headers: the stored preference applies
	req := httptest.NewRequest("GET", "/api/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	body := decodeBody(t, rr)
	assert.Equal(t, "hi", body["language"])
}
