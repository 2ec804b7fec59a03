package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/modules/insights"
	"github.com/aristath/investa/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGetSummary(t *testing.T) {
	services := session.NewServices(session.NewWorkspace(t.TempDir(), database.ProfileStandard), zerolog.Nop())
	sess, err := session.New("alice")
	require.NoError(t, err)
	assetSvc, err := services.Assets(sess)
	require.NoError(t, err)
	_, err = assetSvc.Add("Stocks", "ACME", "250")
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Route("/api/users/{username}", func(r chi.Router) {
		r.Use(session.Middleware)
		NewHandler(insights.NewService(services, zerolog.Nop()), zerolog.Nop()).RegisterRoutes(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/alice/insights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data insights.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.Data.Username)
	assert.Equal(t, 1, body.Data.AssetCount)
	assert.Equal(t, "250", body.Data.TotalValue.String())
	assert.Equal(t, 70, body.Data.Risk.Score)
	assert.Empty(t, body.Data.Goals)
}
