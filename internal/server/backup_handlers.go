package server

import (
	"net/http"

	"github.com/aristath/investa/internal/reliability"
	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// BackupHandlers exposes remote backups over HTTP
type BackupHandlers struct {
	service *reliability.BackupService
	log     zerolog.Logger
}

// NewBackupHandlers creates backup handlers; service may be nil when backups are disabled
func NewBackupHandlers(service *reliability.BackupService, log zerolog.Logger) *BackupHandlers {
	return &BackupHandlers{
		service: service,
		log:     log.With().Str("handler", "backups").Logger(),
	}
}

// RegisterRoutes registers backup routes
func (h *BackupHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/backups", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
	})
}

func (h *BackupHandlers) disabled(w http.ResponseWriter) bool {
	if h.service != nil {
		return false
	}
	utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse{Error: "backups are not configured"})
	return true
}

// HandleList handles GET /api/backups
func (h *BackupHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	if h.disabled(w) {
		return
	}
	backups, err := h.service.ListBackups(r.Context())
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, backups)
}

// HandleCreate handles POST /api/backups
func (h *BackupHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if h.disabled(w) {
		return
	}
	info, err := h.service.CreateAndUpload(r.Context())
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, info)
}
