// Package insights combines a user's assets, risk and goals into one summary.
package insights

import (
	"fmt"
	"time"

	"github.com/aristath/investa/internal/modules/assets"
	"github.com/aristath/investa/internal/modules/goals"
	"github.com/aristath/investa/internal/modules/risk"
	"github.com/aristath/investa/internal/session"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Summary is the report shown on the insights screen
type Summary struct {
	Username    string           `json:"username"`
	AssetCount  int              `json:"asset_count"`
	TotalValue  decimal.Decimal  `json:"total_value"`
	Risk        risk.Report      `json:"risk"`
	Goals       []goals.GoalView `json:"goals"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Service builds summaries from the per-user stores
type Service struct {
	services *session.Services
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates an insights service
func NewService(services *session.Services, log zerolog.Logger) *Service {
	return &Service{
		services: services,
		log:      log.With().Str("service", "insights").Logger(),
		now:      time.Now,
	}
}

// Summarize loads the session user's assets and goals and scores them
func (s *Service) Summarize(sess session.Session) (Summary, error) {
	assetSvc, err := s.services.Assets(sess)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to open assets: %w", err)
	}
	list, err := assetSvc.List()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load assets: %w", err)
	}

	goalSvc, err := s.services.Goals(sess)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to open goals: %w", err)
	}
	goalViews, err := goalSvc.List()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load goals: %w", err)
	}

	report := risk.BuildReport(list)
	s.log.Debug().
		Str("user", sess.Username).
		Int("assets", len(list)).
		Int("goals", len(goalViews)).
		Int("score", report.Score).
		Msg("Built insights summary")

	return Summary{
		Username:    sess.Username,
		AssetCount:  len(list),
		TotalValue:  assets.Total(list),
		Risk:        report,
		Goals:       goalViews,
		GeneratedAt: s.now().UTC(),
	}, nil
}
