package risk

import (
	"sort"

	"github.com/aristath/investa/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryShare is one slice of the distribution chart
type CategoryShare struct {
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	Share       float64         `json:"share"`
	Coefficient decimal.Decimal `json:"coefficient"`
	AssetCount  int             `json:"asset_count"`
}

// Report bundles everything the risk screen renders. It is derived on
// demand and never persisted.
type Report struct {
	Score        int                        `json:"score"`
	Tip          string                     `json:"tip"`
	Band         ColorBand                  `json:"band"`
	TotalValue   decimal.Decimal            `json:"total_value"`
	Distribution map[string]decimal.Decimal `json:"distribution"`
	Allocations  []CategoryShare            `json:"allocations"`
}

// BuildReport computes score, tip, band and distribution for assets
func BuildReport(assets []domain.Asset) Report {
	score := ComputeScore(assets)
	dist := DistributionByCategory(assets)

	total := decimal.Zero
	for _, v := range dist {
		total = total.Add(v)
	}

	return Report{
		Score:        score,
		Tip:          MitigationTip(score),
		Band:         RiskColorBand(score),
		TotalValue:   total,
		Distribution: dist,
		Allocations:  buildAllocations(assets, dist, total),
	}
}

// buildAllocations converts the distribution into chart slices sorted by
// category name, with each share rounded to 4 decimal places
func buildAllocations(assets []domain.Asset, dist map[string]decimal.Decimal, total decimal.Decimal) []CategoryShare {
	counts := make(map[string]int, len(dist))
	for _, a := range assets {
		counts[a.Category]++
	}

	allocations := make([]CategoryShare, 0, len(dist))
	for category, value := range dist {
		var share float64
		if total.IsPositive() {
			share = value.Div(total).Round(4).InexactFloat64()
		}
		allocations = append(allocations, CategoryShare{
			Category:    category,
			Value:       value,
			Share:       share,
			Coefficient: Coefficient(category),
			AssetCount:  counts[category],
		})
	}

	// Sort by name for consistent output
	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].Category < allocations[j].Category
	})
	return allocations
}
