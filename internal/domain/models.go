// Package domain provides core domain models and types.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Asset categories offered by the entry form. Any other non-empty category
// is accepted as free text and scored with the default risk coefficient.
const (
	CategoryStocks      = "Stocks"
	CategoryRealEstate  = "Real Estate"
	CategoryCrypto      = "Crypto"
	CategoryGold        = "Gold"
	CategoryBonds       = "Bonds"
	CategoryMutualFunds = "Mutual Funds"
)

// Categories lists the known asset categories in form order
var Categories = []string{
	CategoryStocks,
	CategoryRealEstate,
	CategoryCrypto,
	CategoryGold,
	CategoryBonds,
	CategoryMutualFunds,
}

// IsKnownCategory reports whether category is one of Categories (case-sensitive)
func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// FieldSeparator is the record delimiter of the flat-file stores.
// Labels picked from a list (category, goal type) may not contain it.
const FieldSeparator = ","

// checkLine rejects text that would break a one-record-per-line file
func checkLine(field, text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return &ValidationError{Field: field, Reason: "must not contain line breaks"}
	}
	return nil
}

// checkLabel is checkLine plus the field separator
func checkLabel(field, text string) error {
	if err := checkLine(field, text); err != nil {
		return err
	}
	if strings.Contains(text, FieldSeparator) {
		return &ValidationError{Field: field, Reason: "must not contain a comma"}
	}
	return nil
}

// Asset represents a single manually entered holding
type Asset struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
}

// NewAsset validates user input and returns a new Asset.
// Category and name are trimmed; value must be strictly positive.
func NewAsset(category, name string, value decimal.Decimal) (Asset, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return Asset{}, &ValidationError{Field: "category", Reason: "must not be empty"}
	}

	a := Asset{
		Category: category,
		Name:     strings.TrimSpace(name),
		Value:    value,
	}
	if err := a.Validate(); err != nil {
		return Asset{}, err
	}
	return a, nil
}

// Validate checks the Asset invariants: non-empty trimmed name, value > 0,
// and no line breaks or separators that would corrupt the stored record
func (a Asset) Validate() error {
	if err := checkLabel("category", a.Category); err != nil {
		return err
	}
	if err := checkLine("name", a.Name); err != nil {
		return err
	}
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !a.Value.IsPositive() {
		return &ValidationError{Field: "value", Reason: "must be positive"}
	}
	return nil
}

// Equal compares assets field by field; values compare numerically
func (a Asset) Equal(other Asset) bool {
	return a.Category == other.Category &&
		strings.TrimSpace(a.Name) == strings.TrimSpace(other.Name) &&
		a.Value.Equal(other.Value)
}

// Goal types offered by the goal form
const (
	GoalRetirement         = "Retirement"
	GoalWealthAccumulation = "Wealth Accumulation"
)

// DeadlineLayout is the only accepted goal deadline format
const DeadlineLayout = "2006-01-02"

// MinDeadlineYear is the earliest year a goal deadline may fall in
const MinDeadlineYear = 2025

// Goal represents a savings target with a deadline and current progress
type Goal struct {
	Type         string          `json:"type"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline"`
	Progress     decimal.Decimal `json:"progress"`
}

// NewGoal validates user input and returns a new Goal
func NewGoal(goalType string, target decimal.Decimal, deadline string, progress decimal.Decimal) (Goal, error) {
	g := Goal{
		Type:         strings.TrimSpace(goalType),
		TargetAmount: target,
		Deadline:     strings.TrimSpace(deadline),
		Progress:     progress,
	}
	if err := g.Validate(); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// Validate checks type, amounts and the deadline date
func (g Goal) Validate() error {
	if g.Type == "" {
		return &ValidationError{Field: "type", Reason: "must not be empty"}
	}
	if err := checkLabel("type", g.Type); err != nil {
		return err
	}
	if err := checkLine("deadline", g.Deadline); err != nil {
		return err
	}
	if !g.TargetAmount.IsPositive() {
		return &ValidationError{Field: "target_amount", Reason: "must be positive"}
	}
	if g.Progress.IsNegative() {
		return &ValidationError{Field: "progress", Reason: "must not be negative"}
	}

	// time.Parse rejects impossible dates such as 2025-02-30
	d, err := time.Parse(DeadlineLayout, g.Deadline)
	if err != nil {
		return &ValidationError{Field: "deadline", Reason: "must be a valid YYYY-MM-DD date"}
	}
	if d.Year() < MinDeadlineYear {
		return &ValidationError{Field: "deadline", Reason: "year must be 2025 or later"}
	}
	return nil
}

// ProgressPct returns progress as a percentage of the target, capped at 100
func (g Goal) ProgressPct() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct := g.Progress.Mul(decimal.NewFromInt(100)).Div(g.TargetAmount)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		pct = decimal.NewFromInt(100)
	}
	return pct.Round(2).InexactFloat64()
}

// Remaining returns how much is left to reach the target, never negative
func (g Goal) Remaining() decimal.Decimal {
	rest := g.TargetAmount.Sub(g.Progress)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
