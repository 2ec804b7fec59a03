// Package zakat computes the annual 2.5% alms due on eligible holdings.
package zakat

import (
	"github.com/aristath/investa/internal/domain"
	"github.com/shopspring/decimal"
)

// Rate is the share of eligible wealth due
var Rate = decimal.RequireFromString("0.025")

// Input holds the eligible holdings by kind
type Input struct {
	Gold       decimal.Decimal `json:"gold"`
	Cash       decimal.Decimal `json:"cash"`
	Stocks     decimal.Decimal `json:"stocks"`
	RealEstate decimal.Decimal `json:"real_estate"`
	Other      decimal.Decimal `json:"other"`
}

// Result is the calculation outcome
type Result struct {
	Input
	Total decimal.Decimal `json:"total"`
	Rate  decimal.Decimal `json:"rate"`
	Due   decimal.Decimal `json:"due"`
}

// Fields names each holding as accepted by ParseInput
var Fields = []string{"gold", "cash", "stocks", "real_estate", "other"}

func (in Input) values() []decimal.Decimal {
	return []decimal.Decimal{in.Gold, in.Cash, in.Stocks, in.RealEstate, in.Other}
}

// Validate rejects negative holdings
func (in Input) Validate() error {
	for i, v := range in.values() {
		if v.IsNegative() {
			return &domain.ValidationError{Field: Fields[i], Reason: "must not be negative"}
		}
	}
	return nil
}

// Calculate sums the holdings and applies Rate
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	total := decimal.Zero
	for _, v := range in.values() {
		total = total.Add(v)
	}
	return Result{
		Input: in,
		Total: total,
		Rate:  Rate,
		Due:   total.Mul(Rate),
	}, nil
}

// ParseInput builds an Input from text fields keyed by Fields.
// Missing or blank fields count as zero.
func ParseInput(fields map[string]string) (Input, error) {
	parsed := make([]decimal.Decimal, len(Fields))
	for i, name := range Fields {
		v, err := domain.ParseOptionalAmount(name, fields[name])
		if err != nil {
			return Input{}, err
		}
		parsed[i] = v
	}
	in := Input{Gold: parsed[0], Cash: parsed[1], Stocks: parsed[2], RealEstate: parsed[3], Other: parsed[4]}
	return in, in.Validate()
}
