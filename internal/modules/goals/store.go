// Package goals persists financial goals as "type,target,deadline,progress" lines.
package goals

import (
	"strings"

	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/metrics"
	"github.com/rs/zerolog"
)

// Delimiter separates goal fields. Fields are trimmed on load, so files
// written with ", " still parse.
const Delimiter = domain.FieldSeparator

// FormatLine serializes a goal
func FormatLine(g domain.Goal) string {
	return strings.Join([]string{
		g.Type,
		domain.FormatAmount(g.TargetAmount),
		g.Deadline,
		domain.FormatAmount(g.Progress),
	}, Delimiter)
}

// ParseLine decodes one goal record; ok is false for malformed or invalid records
func ParseLine(line string) (goal domain.Goal, ok bool) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 4 {
		return domain.Goal{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	target, err := domain.ParseAmount("target_amount", parts[1])
	if err != nil {
		return domain.Goal{}, false
	}
	progress, err := domain.ParseAmount("progress", parts[3])
	if err != nil {
		return domain.Goal{}, false
	}

	goal = domain.Goal{Type: parts[0], TargetAmount: target, Deadline: parts[2], Progress: progress}
	if goal.Validate() != nil {
		return domain.Goal{}, false
	}
	return goal, true
}

// Store reads and writes goals to a flat file
type Store struct {
	file *database.File
	log  zerolog.Logger
}

// NewStore creates a goal store backed by file
func NewStore(file *database.File, log zerolog.Logger) *Store {
	return &Store{
		file: file,
		log:  log.With().Str("store", "goals").Str("path", file.Path()).Logger(),
	}
}

// Load returns a fresh slice of all valid goals in file order.
// Repeated loads never accumulate.
func (s *Store) Load() ([]domain.Goal, error) {
	lines, err := s.file.ReadLines()
	if err != nil {
		return nil, err
	}
	return s.decode(lines), nil
}

// Append adds one goal to the end of the file
func (s *Store) Append(g domain.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return s.file.AppendLine(FormatLine(g))
}

// Save overwrites the file with goals
func (s *Store) Save(goals []domain.Goal) error {
	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return err
		}
		lines = append(lines, FormatLine(g))
	}
	return s.file.WriteLines(lines)
}

// Modify applies fn to the current goals and saves the result under one lock
func (s *Store) Modify(fn func(goals []domain.Goal) ([]domain.Goal, error)) error {
	return s.file.Update(func(lines []string) ([]string, error) {
		next, err := fn(s.decode(lines))
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(next))
		for _, g := range next {
			if err := g.Validate(); err != nil {
				return nil, err
			}
			out = append(out, FormatLine(g))
		}
		return out, nil
	})
}

func (s *Store) decode(lines []string) []domain.Goal {
	goals := make([]domain.Goal, 0, len(lines))
	dropped := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		g, ok := ParseLine(line)
		if !ok {
			dropped++
			continue
		}
		goals = append(goals, g)
	}
	if dropped > 0 {
		metrics.RecordsDropped.WithLabelValues("goals").Add(float64(dropped))
		s.log.Debug().Int("dropped", dropped).Msg("Skipped malformed goal records")
	}
	return goals
}
