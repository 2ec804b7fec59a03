// Package handlers provides HTTP handlers for financial goals.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aristath/investa/internal/modules/goals"
	"github.com/aristath/investa/internal/session"
	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var errNoSession = errors.New("request has no session")

// ServiceProvider resolves the goal service of a session's user
type ServiceProvider interface {
	Goals(s session.Session) (*goals.Service, error)
}

// Handler handles goal HTTP requests
type Handler struct {
	services ServiceProvider
	log      zerolog.Logger
}

// NewHandler creates a new goal handler
func NewHandler(services ServiceProvider, log zerolog.Logger) *Handler {
	return &Handler{
		services: services,
		log:      log.With().Str("handler", "goals").Logger(),
	}
}

// GoalRequest is the body of POST /goals
type GoalRequest struct {
	Type         string      `json:"type"`
	TargetAmount json.Number `json:"target_amount"`
	Deadline     string      `json:"deadline"`
	Progress     json.Number `json:"progress"`
}

func (h *Handler) service(r *http.Request) (*goals.Service, error) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil, errNoSession
	}
	return h.services.Goals(s)
}

// HandleList handles GET /goals
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	views, err := svc.List()
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"goals": views,
		"count": len(views),
	})
}

// HandleCreate handles POST /goals
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req GoalRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	svc, err := h.service(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	goal, err := svc.Add(req.Type, req.TargetAmount.String(), req.Deadline, req.Progress.String())
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusCreated, goals.NewGoalView(goal))
}

// HandleDelete handles DELETE /goals/{index}
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
