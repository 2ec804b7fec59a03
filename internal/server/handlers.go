package server

import (
	"net/http"

	"github.com/aristath/investa/internal/utils"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"service": "investa",
	})
}

// Version is the server version reported by /health, set at build time
var Version = "dev"
