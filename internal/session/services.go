package session

import (
	"github.com/aristath/investa/internal/modules/assets"
	"github.com/aristath/investa/internal/modules/goals"
	"github.com/rs/zerolog"
)

// Services builds per-user services on top of a Workspace.
// Services are cheap; the files underneath are shared per path.
type Services struct {
	workspace *Workspace
	log       zerolog.Logger
}

// NewServices creates a per-user service factory
func NewServices(workspace *Workspace, log zerolog.Logger) *Services {
	return &Services{workspace: workspace, log: log}
}

// Workspace returns the underlying workspace
func (s *Services) Workspace() *Workspace {
	return s.workspace
}

// Assets returns the asset service for the session's user
func (s *Services) Assets(sess Session) (*assets.Service, error) {
	file, err := s.workspace.AssetsFile(sess)
	if err != nil {
		return nil, err
	}
	log := s.log.With().Str("user", sess.Username).Logger()
	return assets.NewService(assets.NewStore(file, log), log), nil
}

// Goals returns the goal service for the session's user
func (s *Services) Goals(sess Session) (*goals.Service, error) {
	file, err := s.workspace.GoalsFile(sess)
	if err != nil {
		return nil, err
	}
	log := s.log.With().Str("user", sess.Username).Logger()
	return goals.NewService(goals.NewStore(file, log), log), nil
}
