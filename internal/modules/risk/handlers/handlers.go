// Package handlers provides HTTP handlers for risk scoring.
package handlers

import (
	"errors"
	"net/http"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/metrics"
	"github.com/aristath/investa/internal/modules/assets"
	"github.com/aristath/investa/internal/modules/risk"
	"github.com/aristath/investa/internal/session"
	"github.com/aristath/investa/internal/utils"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var errNoSession = errors.New("request has no session")

// ServiceProvider resolves the asset service of a session's user
type ServiceProvider interface {
	Assets(s session.Session) (*assets.Service, error)
}

// Handler handles risk HTTP requests
type Handler struct {
	services ServiceProvider
	log      zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(services ServiceProvider, log zerolog.Logger) *Handler {
	return &Handler{
		services: services,
		log:      log.With().Str("handler", "risk").Logger(),
	}
}

// ScoreResponse is the compact risk verdict
type ScoreResponse struct {
	Score int             `json:"score"`
	Tip   string          `json:"tip"`
	Band  risk.ColorBand  `json:"band"`
	Total decimal.Decimal `json:"total_value"`
}

// DistributionResponse is the per-category breakdown used by charts
type DistributionResponse struct {
	TotalValue   decimal.Decimal            `json:"total_value"`
	Distribution map[string]decimal.Decimal `json:"distribution"`
	Allocations  []risk.CategoryShare       `json:"allocations"`
}

// report loads a fresh snapshot of the user's assets and scores it
func (h *Handler) report(r *http.Request) (risk.Report, error) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return risk.Report{}, errNoSession
	}
	svc, err := h.services.Assets(s)
	if err != nil {
		return risk.Report{}, err
	}
	list, err := svc.List()
	if err != nil {
		return risk.Report{}, err
	}

	report := risk.BuildReport(list)
	metrics.RiskScores.Observe(float64(report.Score))
	h.log.Debug().
		Str("user", s.Username).
		Int("assets", len(list)).
		Int("score", report.Score).
		Msg("Computed risk report")
	return report, nil
}

// HandleGetReport handles GET /risk
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.report(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, report)
}

// HandleGetScore handles GET /risk/score
func (h *Handler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	report, err := h.report(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, ScoreResponse{
		Score: report.Score,
		Tip:   report.Tip,
		Band:  report.Band,
		Total: report.TotalValue,
	})
}

// HandleGetDistribution handles GET /risk/distribution
func (h *Handler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	report, err := h.report(r)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, DistributionResponse{
		TotalValue:   report.TotalValue,
		Distribution: report.Distribution,
		Allocations:  report.Allocations,
	})
}

// HandleGetWeights handles GET /api/risk/weights
func (h *Handler) HandleGetWeights(w http.ResponseWriter, r *http.Request) {
	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"weights": risk.Weights(),
		"default": risk.DefaultCoefficient(),
		"known":   domain.Categories,
	})
}
