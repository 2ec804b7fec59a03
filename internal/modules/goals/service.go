package goals

import (
	"fmt"

	"github.com/aristath/investa/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrGoalNotFound is returned when an index does not address a goal
var ErrGoalNotFound = fmt.Errorf("goal %w", domain.ErrNotFound)

// GoalView is a goal enriched with derived progress figures
type GoalView struct {
	domain.Goal
	ProgressPct float64         `json:"progress_pct"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// NewGoalView derives progress figures for g
func NewGoalView(g domain.Goal) GoalView {
	return GoalView{Goal: g, ProgressPct: g.ProgressPct(), Remaining: g.Remaining()}
}

// Service implements the goal form flows
type Service struct {
	store *Store
	log   zerolog.Logger
}

// NewService creates a goal service
func NewService(store *Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "goals").Logger(),
	}
}

// List returns all goals with derived progress
func (s *Service) List() ([]GoalView, error) {
	goals, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	views := make([]GoalView, len(goals))
	for i, g := range goals {
		views[i] = NewGoalView(g)
	}
	return views, nil
}

// Add validates user input and appends the goal
func (s *Service) Add(goalType, targetText, deadline, progressText string) (domain.Goal, error) {
	target, err := domain.ParseAmount("target_amount", targetText)
	if err != nil {
		return domain.Goal{}, err
	}
	progress, err := domain.ParseAmount("progress", progressText)
	if err != nil {
		return domain.Goal{}, err
	}

	goal, err := domain.NewGoal(goalType, target, deadline, progress)
	if err != nil {
		return domain.Goal{}, err
	}
	if err := s.store.Append(goal); err != nil {
		return domain.Goal{}, fmt.Errorf("failed to append goal: %w", err)
	}

	s.log.Info().Str("type", goal.Type).Str("deadline", goal.Deadline).Msg("Goal added")
	return goal, nil
}

// Remove deletes the goal at index
func (s *Service) Remove(index int) (domain.Goal, error) {
	var removed domain.Goal
	err := s.store.Modify(func(goals []domain.Goal) ([]domain.Goal, error) {
		if index < 0 || index >= len(goals) {
			return nil, fmt.Errorf("%w: index %d", ErrGoalNotFound, index)
		}
		removed = goals[index]
		return append(goals[:index], goals[index+1:]...), nil
	})
	if err != nil {
		return domain.Goal{}, err
	}

	s.log.Info().Int("index", index).Str("type", removed.Type).Msg("Goal removed")
	return removed, nil
}
