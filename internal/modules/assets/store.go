// Package assets persists a user's holdings as one delimited record per line.
package assets

import (
	"fmt"

	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/metrics"
	"github.com/rs/zerolog"
)

// Store reads and writes an asset collection to a flat file
type Store struct {
	file *database.File
	log  zerolog.Logger
}

// NewStore creates a store backed by file
func NewStore(file *database.File, log zerolog.Logger) *Store {
	return &Store{
		file: file,
		log:  log.With().Str("store", "assets").Str("path", file.Path()).Logger(),
	}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.file.Path()
}

// Load reads every record in file order. Malformed records are skipped
// silently; a missing file yields an empty collection.
func (s *Store) Load() ([]domain.Asset, error) {
	lines, err := s.file.ReadLines()
	if err != nil {
		return nil, err
	}

	assets, dropped := decodeLines(lines)
	s.recordDropped(dropped)
	return assets, nil
}

// Save overwrites the store with the full collection in order.
// Nothing is written if any asset is invalid.
func (s *Store) Save(assets []domain.Asset) error {
	if err := validateAll(assets); err != nil {
		return err
	}
	if err := s.file.WriteLines(encodeLines(assets)); err != nil {
		return err
	}

	s.log.Debug().Int("count", len(assets)).Msg("Saved assets")
	return nil
}

// Append adds a single record to the end of the store without loading it
func (s *Store) Append(asset domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	return s.file.AppendLine(FormatLine(asset))
}

// Modify loads the collection, applies fn and saves the result atomically
// with respect to other callers of the same file. Malformed records present
// on disk are not carried over.
func (s *Store) Modify(fn func(assets []domain.Asset) ([]domain.Asset, error)) error {
	return s.file.Update(func(lines []string) ([]string, error) {
		current, dropped := decodeLines(lines)
		s.recordDropped(dropped)

		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		if err := validateAll(next); err != nil {
			return nil, err
		}
		return encodeLines(next), nil
	})
}

func (s *Store) recordDropped(dropped int) {
	if dropped == 0 {
		return
	}
	metrics.RecordsDropped.WithLabelValues("assets").Add(float64(dropped))
	s.log.Debug().Int("dropped", dropped).Msg("Skipped malformed asset records")
}

func validateAll(assets []domain.Asset) error {
	for i, a := range assets {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("asset %d: %w", i, err)
		}
	}
	return nil
}
