package testing

import (
	"testing"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/session"
	"github.com/shopspring/decimal"
)

// NewAssetFixtures returns a mixed portfolio worth 10000 in total.
// Its risk score is 55: (0.9*2000 + 0.7*4000 + 0.2*3000 + 0.3*1000) / 10000.
func NewAssetFixtures() []domain.Asset {
	return []domain.Asset{
		{Category: domain.CategoryCrypto, Name: "Bitcoin", Value: decimal.NewFromInt(2000)},
		{Category: domain.CategoryStocks, Name: "World Index", Value: decimal.NewFromInt(4000)},
		{Category: domain.CategoryBonds, Name: "Treasury 2030", Value: decimal.NewFromInt(3000)},
		{Category: domain.CategoryGold, Name: "Coins", Value: decimal.NewFromInt(1000)},
	}
}

// NewGoalFixtures returns one goal a quarter complete and one already reached
func NewGoalFixtures() []domain.Goal {
	return []domain.Goal{
		{
			Type:         domain.GoalRetirement,
			TargetAmount: decimal.NewFromInt(200000),
			Deadline:     "2045-12-31",
			Progress:     decimal.NewFromInt(50000),
		},
		{
			Type:         domain.GoalWealthAccumulation,
			TargetAmount: decimal.NewFromInt(10000),
			Deadline:     "2027-06-30",
			Progress:     decimal.NewFromInt(12000),
		},
	}
}

// SeedAssets adds assets for the session's user through the asset service
func SeedAssets(t *testing.T, services *session.Services, sess session.Session, assets []domain.Asset) {
	t.Helper()
	svc, err := services.Assets(sess)
	if err != nil {
		t.Fatalf("Failed to open assets: %v", err)
	}
	for _, a := range assets {
		if _, err := svc.Add(a.Category, a.Name, domain.FormatAmount(a.Value)); err != nil {
			t.Fatalf("Failed to seed asset %s: %v", a.Name, err)
		}
	}
}

// SeedGoals adds goals for the session's user through the goal service
func SeedGoals(t *testing.T, services *session.Services, sess session.Session, goals []domain.Goal) {
	t.Helper()
	svc, err := services.Goals(sess)
	if err != nil {
		t.Fatalf("Failed to open goals: %v", err)
	}
	for _, g := range goals {
		_, err := svc.Add(g.Type, domain.FormatAmount(g.TargetAmount), g.Deadline, domain.FormatAmount(g.Progress))
		if err != nil {
			t.Fatalf("Failed to seed goal %s: %v", g.Type, err)
		}
	}
}
