// Package risk scores a portfolio by weighting each holding's value with a
// fixed per-category risk coefficient. Everything here is pure and
// deterministic; callers load assets and render results.
package risk

import (
	"github.com/aristath/investa/internal/domain"
	"github.com/shopspring/decimal"
)

// Mitigation tips by score band
const (
	TipHigh     = "High Risk! Consider adding bonds/gold (20-30%)."
	TipModerate = "Moderate Risk. Rebalance with stable assets."
	TipLow      = "Low Risk. Maintain current allocation."
)

// Score band thresholds; a band starts strictly above its threshold
const (
	HighThreshold   = 70
	MediumThreshold = 40
)

// ColorBand is the display band derived from a score
type ColorBand string

const (
	BandHigh   ColorBand = "HIGH"
	BandMedium ColorBand = "MEDIUM"
	BandLow    ColorBand = "LOW"
)

var (
	hundred            = decimal.NewFromInt(100)
	defaultCoefficient = decimal.RequireFromString("0.5")

	// weightTable must stay within [0,1]; ComputeScore clamps regardless
	weightTable = map[string]decimal.Decimal{
		domain.CategoryCrypto:     decimal.RequireFromString("0.9"),
		domain.CategoryStocks:     decimal.RequireFromString("0.7"),
		domain.CategoryRealEstate: decimal.RequireFromString("0.4"),
		domain.CategoryGold:       decimal.RequireFromString("0.3"),
		domain.CategoryBonds:      decimal.RequireFromString("0.2"),
	}
)

// Coefficient returns the risk coefficient for category (exact,
// case-sensitive match), or the default 0.5 for anything else
func Coefficient(category string) decimal.Decimal {
	if c, ok := weightTable[category]; ok {
		return c
	}
	return defaultCoefficient
}

// DefaultCoefficient returns the coefficient applied to unlisted categories
func DefaultCoefficient() decimal.Decimal {
	return defaultCoefficient
}

// Weights returns a copy of the per-category coefficient table
func Weights() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(weightTable))
	for k, v := range weightTable {
		out[k] = v
	}
	return out
}

// ComputeScore returns floor(100 * Σ(coefficient×value) / Σvalue) clamped
// to [0,100]; an empty collection scores 0.
func ComputeScore(assets []domain.Asset) int {
	if len(assets) == 0 {
		return 0
	}

	weighted := decimal.Zero
	total := decimal.Zero
	for _, a := range assets {
		weighted = weighted.Add(Coefficient(a.Category).Mul(a.Value))
		total = total.Add(a.Value)
	}
	if !total.IsPositive() {
		return 0
	}

	// Integer quotient of exact decimals is the floor for non-negative operands
	quotient, _ := weighted.Mul(hundred).QuoRem(total, 0)
	return clamp(int(quotient.IntPart()), 0, 100)
}

// MitigationTip returns the advisory text for score
func MitigationTip(score int) string {
	switch {
	case score > HighThreshold:
		return TipHigh
	case score > MediumThreshold:
		return TipModerate
	default:
		return TipLow
	}
}

// RiskColorBand maps score onto HIGH/MEDIUM/LOW using the tip thresholds
func RiskColorBand(score int) ColorBand {
	switch {
	case score > HighThreshold:
		return BandHigh
	case score > MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// DistributionByCategory sums values per category (exact, case-sensitive)
func DistributionByCategory(assets []domain.Asset) map[string]decimal.Decimal {
	dist := make(map[string]decimal.Decimal)
	for _, a := range assets {
		dist[a.Category] = dist[a.Category].Add(a.Value)
	}
	return dist
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
