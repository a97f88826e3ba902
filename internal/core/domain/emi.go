package domain

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	lakh    = decimal.NewFromInt(100_000)
)

// ComputeEMI returns the fixed monthly payment for a reducing-balance
// loan:
//
//	r   = annualRatePercent / 100 / 12
//	emi = principal * r / (1 - (1+r)^-tenureMonths)
//
// A zero rate falls back to a straight-line split of the principal.
// The result is not rounded; rounding happens once, at outcome
// assembly. tenureMonths must be positive, validated by the caller.
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	months := decimal.NewFromInt(int64(tenureMonths))

	monthlyRate := annualRatePercent.Div(hundred).Div(twelve)
	if monthlyRate.IsZero() {
		return principal.Div(months)
	}

	// Computed as P * r * (1+r)^n / ((1+r)^n - 1) to keep the exponent
	// a whole number.
	factor := one.Add(monthlyRate).Pow(months)
	return principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one))
}

// RoundToNearestLakh rounds an amount to the nearest 100,000 currency
// units, halves rounding up. Used for the approved-limit policy at
// registration and by the spreadsheet importer.
func RoundToNearestLakh(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(lakh).Round(0).Mul(lakh)
}
