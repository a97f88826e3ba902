package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	baseScore        = 50
	newCustomerScore = 100
	maxOnTimeBonus   = 50

	highDebtPenalty     = 20
	activeAmountPenalty = 10
	pastDelayPenalty    = 10
)

var fifty = decimal.NewFromInt(50)

// CalculateCreditScore summarizes a customer's repayment reliability
// and debt exposure as an integer in [0, 100].
//
// Customers with no qualifying loan history score a flat 100. Otherwise
// the score starts at 50, gains up to 50 points from the average
// on-time payment ratio, and loses points for debt above the approved
// limit, active principal above the approved limit, and any past delay.
// Loans with a zero tenure are excluded from the ratio (no division by
// zero) but their amount still counts toward the active total.
func CalculateCreditScore(customer CustomerProfile, loans []LoanRecord) int {
	now := time.Now()

	totalActiveAmount := decimal.Zero
	ratioSum := decimal.Zero
	considered := 0
	hadDelay := false

	for i := range loans {
		loan := &loans[i]

		if loan.Active(now) {
			totalActiveAmount = totalActiveAmount.Add(loan.LoanAmount)
		}

		if loan.Tenure > 0 {
			paid := decimal.NewFromInt(int64(loan.EMIsPaidOnTime))
			tenure := decimal.NewFromInt(int64(loan.Tenure))
			ratioSum = ratioSum.Add(paid.Div(tenure))
			considered++
		}

		if loan.EMIsPaidOnTime < loan.Tenure {
			hadDelay = true
		}
	}

	if considered == 0 {
		return newCustomerScore
	}

	score := baseScore

	// Truncation, not rounding: int(avg * 50).
	avgRatio := ratioSum.Div(decimal.NewFromInt(int64(considered)))
	bonus := int(avgRatio.Mul(fifty).IntPart())
	if bonus > maxOnTimeBonus {
		bonus = maxOnTimeBonus
	}
	score += bonus

	if customer.CurrentDebt.GreaterThan(customer.ApprovedLimit) {
		score -= highDebtPenalty
	}
	if totalActiveAmount.GreaterThan(customer.ApprovedLimit) {
		score -= activeAmountPenalty
	}
	if hadDelay {
		score -= pastDelayPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
