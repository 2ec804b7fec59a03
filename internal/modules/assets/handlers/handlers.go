// Package handlers provides HTTP handlers for a user's asset list.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/modules/assets"
	"github.com/aristath/investa/internal/session"
	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var errNoSession = errors.New("request has no session")

// ServiceProvider resolves the asset service of a session's user
type ServiceProvider interface {
	Assets(s session.Session) (*assets.Service, error)
}

// Handler handles asset HTTP requests
type Handler struct {
	services ServiceProvider
	log      zerolog.Logger
}

// NewHandler creates a new asset handler
func NewHandler(services ServiceProvider, log zerolog.Logger) *Handler {
	return &Handler{
		services: services,
		log:      log.With().Str("handler", "assets").Logger(),
	}
}

// AssetRequest is the body of create and update requests.
// Value accepts a JSON number or a numeric string.
type AssetRequest struct {
	Category string      `json:"category"`
	Name     string      `json:"name"`
	Value    json.Number `json:"value"`
}

// ListResponse is the asset list with its total
type ListResponse struct {
	Assets     []domain.Asset `json:"assets"`
	Count      int            `json:"count"`
	TotalValue string         `json:"total_value"`
}

func (h *Handler) service(r *http.Request) (*assets.Service, error) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil, errNoSession
	}
	return h.services.Assets(s)
}

// HandleList handles GET /assets
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	list, err := svc.List()
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusOK, ListResponse{
		Assets:     list,
		Count:      len(list),
		TotalValue: domain.FormatAmount(assets.Total(list)),
	})
}

// HandleCreate handles POST /assets
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req AssetRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	asset, err := svc.Add(req.Category, req.Name, req.Value.String())
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusCreated, asset)
}

// HandleUpdate handles PUT /assets/{index}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	index, err := utils.ParseIndex(chi.URLParam(r, "index"))
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	var req AssetRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	asset, err := svc.Update(index, req.Category, req.Name, req.Value.String())
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusOK, asset)
}

// HandleDelete handles DELETE /assets/{index}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	index, err := utils.ParseIndex(chi.URLParam(r, "index"))
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	removed, err := svc.Remove(index)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusOK, removed)
}

// HandleClear handles DELETE /assets
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	if err := svc.Clear(); err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
