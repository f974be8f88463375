package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snowrent/internal/clock"
)

type stubModule struct{ name string }

func (s stubModule) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(s.name))
	})
}

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func newTestRouter() http.Handler {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return NewRouter("http://localhost:3000", Modules{
		Auth:         stubModule{"auth"},
		Equipment:    stubModule{"equipment"},
		Reservations: stubModule{"reservations"},
		Intake:       stubModule{"intake"},
		RequireAuth:  denyAll,
	}, clock.Fixed(now), zap.NewNop())
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.NotEmpty(t, body.Message)
	assert.True(t, body.Timestamp.Equal(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)))
}

func TestRouter_MountsModules(t *testing.T) {
	router := newTestRouter()

	for path, want := range map[string]string{
		"/api/auth/":        "auth",
		"/api/equipment/":   "equipment",
		"/api/reservation/": "intake",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Body.String(), path)
	}
}

func TestRouter_ReservationsRequireAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/equipment/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
