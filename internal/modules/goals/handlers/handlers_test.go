package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) chi.Router {
	t.Helper()
	services := session.NewServices(session.NewWorkspace(t.TempDir(), database.ProfileStandard), zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api/users/{username}", func(r chi.Router) {
		r.Use(session.Middleware)
		NewHandler(services, zerolog.Nop()).RegisterRoutes(r)
	})
	return router
}

func request(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type listBody struct {
	Data struct {
		Goals []struct {
			Type        string  `json:"type"`
			Deadline    string  `json:"deadline"`
			ProgressPct float64 `json:"progress_pct"`
			Remaining   string  `json:"remaining"`
		} `json:"goals"`
		Count int `json:"count"`
	} `json:"data"`
}

func list(t *testing.T, router http.Handler) listBody {
	t.Helper()
	w := request(router, http.MethodGet, "/api/users/alice/goals", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGoalLifecycle(t *testing.T) {
	router := setupRouter(t)

	w := request(router, http.MethodPost, "/api/users/alice/goals",
		`{"type":"Retirement","target_amount":10000,"deadline":"2040-06-30","progress":2500}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"progress_pct":25`)

	w = request(router, http.MethodPost, "/api/users/alice/goals",
		`{"type":"Wealth Accumulation","target_amount":"500","deadline":"2030-01-01","progress":"0"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := list(t, router)
	require.Equal(t, 2, body.Data.Count)
	assert.Equal(t, "Retirement", body.Data.Goals[0].Type)
	assert.Equal(t, 25.0, body.Data.Goals[0].ProgressPct)
	assert.Equal(t, "7500", body.Data.Goals[0].Remaining)

	w = request(router, http.MethodDelete, "/api/users/alice/goals/0", "")
	require.Equal(t, http.StatusOK, w.Code)

	body = list(t, router)
	require.Equal(t, 1, body.Data.Count)
	assert.Equal(t, "Wealth Accumulation", body.Data.Goals[0].Type)

	w = request(router, http.MethodDelete, "/api/users/alice/goals/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCreate_Validation(t *testing.T) {
	router := setupRouter(t)

	bodies := []string{
		`{"type":"Retirement","target_amount":0,"deadline":"2040-01-01","progress":0}`,
		`{"type":"Retirement","target_amount":10,"deadline":"2040-13-01","progress":0}`,
		`{"type":"Retirement","target_amount":10,"deadline":"2024-12-31","progress":0}`,
		`{"type":"Retirement","target_amount":10,"deadline":"2040-01-01","progress":-1}`,
		`{"type":"","target_amount":10,"deadline":"2040-01-01","progress":0}`,
		`{"type":"Retirement","target_amount":10,"deadline":"2040-01-01"}`,
	}
	for _, body := range bodies {
		w := request(router, http.MethodPost, "/api/users/alice/goals", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, list(t, router).Data.Count)
}
