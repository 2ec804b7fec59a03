package assets

import (
	"fmt"
	"strings"

	"github.com/aristath/investa/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrAssetNotFound is returned when an index does not address an asset
var ErrAssetNotFound = fmt.Errorf("asset %w", domain.ErrNotFound)

// Service implements the add/edit/remove flows on top of Store.
// Every call works on a fresh snapshot and persists before returning.
type Service struct {
	store *Store
	log   zerolog.Logger
}

// NewService creates an asset service
func NewService(store *Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "assets").Logger(),
	}
}

// List returns a fresh snapshot of the user's assets
func (s *Service) List() ([]domain.Asset, error) {
	return s.store.Load()
}

// Add validates user input and appends the new asset
func (s *Service) Add(category, name, valueText string) (domain.Asset, error) {
	value, err := domain.ParseAmount("value", valueText)
	if err != nil {
		return domain.Asset{}, err
	}
	asset, err := domain.NewAsset(category, name, value)
	if err != nil {
		return domain.Asset{}, err
	}

	if err := s.store.Append(asset); err != nil {
		return domain.Asset{}, fmt.Errorf("failed to append asset: %w", err)
	}

	s.log.Info().
		Str("category", asset.Category).
		Str("name", asset.Name).
		Str("value", asset.Value.String()).
		Msg("Asset added")
	return asset, nil
}

// Update edits the asset at index. An empty category keeps the current one.
func (s *Service) Update(index int, category, name, valueText string) (domain.Asset, error) {
	value, err := domain.ParseAmount("value", valueText)
	if err != nil {
		return domain.Asset{}, err
	}

	var updated domain.Asset
	err = s.store.Modify(func(assets []domain.Asset) ([]domain.Asset, error) {
		if index < 0 || index >= len(assets) {
			return nil, fmt.Errorf("%w: index %d", ErrAssetNotFound, index)
		}

		if strings.TrimSpace(category) == "" {
			category = assets[index].Category
		}
		a, err := domain.NewAsset(category, name, value)
		if err != nil {
			return nil, err
		}

		assets[index] = a
		updated = a
		return assets, nil
	})
	if err != nil {
		return domain.Asset{}, err
	}

	s.log.Info().Int("index", index).Str("name", updated.Name).Msg("Asset updated")
	return updated, nil
}

// Remove deletes the asset at index and returns it
func (s *Service) Remove(index int) (domain.Asset, error) {
	var removed domain.Asset
	err := s.store.Modify(func(assets []domain.Asset) ([]domain.Asset, error) {
		if index < 0 || index >= len(assets) {
			return nil, fmt.Errorf("%w: index %d", ErrAssetNotFound, index)
		}
		removed = assets[index]
		return append(assets[:index], assets[index+1:]...), nil
	})
	if err != nil {
		return domain.Asset{}, err
	}

	s.log.Info().Int("index", index).Str("name", removed.Name).Msg("Asset removed")
	return removed, nil
}

// Clear removes every asset
func (s *Service) Clear() error {
	if err := s.store.Save(nil); err != nil {
		return fmt.Errorf("failed to clear assets: %w", err)
	}
	s.log.Info().Msg("All assets cleared")
	return nil
}

// Total sums asset values
func Total(assets []domain.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.Value)
	}
	return total
}
