package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate tiers selected from the credit score.
var (
	ratePrime    = decimal.NewFromFloat(10.0)
	rateStandard = decimal.NewFromFloat(12.0)
	rateSubprime = decimal.NewFromFloat(16.0)
)

var half = decimal.NewFromFloat(0.5)

// decision carries the running state of the approval pipeline.
type decision struct {
	customer        CustomerProfile
	requestedAmount decimal.Decimal
	requestedTenure int
	creditScore     int

	totalCurrentEMIs decimal.Decimal

	approved       bool
	tierRate       decimal.Decimal
	prospectiveEMI decimal.Decimal
}

// approvalRules run in order; later rules only do work while the
// decision is still approved, so a rejection carries through untouched.
var approvalRules = []func(*decision){
	applyScoreTier,
	applyEMIBurdenCap,
	applyCreditLimitCap,
}

// CheckLoanEligibility decides whether a requested loan is approved and
// at what rate and installment, given a precomputed credit score and
// the customer's loan history. Inputs are assumed validated: positive
// amount and tenure, score in [0, 100].
func CheckLoanEligibility(
	customer CustomerProfile,
	requestedAmount decimal.Decimal,
	requestedTenure int,
	creditScore int,
	loans []LoanRecord,
) EligibilityOutcome {
	now := time.Now()

	d := &decision{
		customer:         customer,
		requestedAmount:  requestedAmount,
		requestedTenure:  requestedTenure,
		creditScore:      creditScore,
		totalCurrentEMIs: decimal.Zero,
		tierRate:         decimal.Zero,
		prospectiveEMI:   decimal.Zero,
	}

	for i := range loans {
		loan := &loans[i]
		if loan.CustomerID == customer.CustomerID && loan.Active(now) {
			d.totalCurrentEMIs = d.totalCurrentEMIs.Add(loan.MonthlyInstallment)
		}
	}

	for _, rule := range approvalRules {
		rule(d)
	}

	outcome := EligibilityOutcome{
		Approved:              d.approved,
		InterestRate:          d.tierRate,
		CorrectedInterestRate: decimal.Zero,
		MonthlyInstallment:    decimal.Zero,
	}
	if d.approved {
		outcome.CorrectedInterestRate = d.tierRate
		outcome.MonthlyInstallment = d.prospectiveEMI.Round(2)
	}
	return outcome
}

// Rule 1: score-tiered approval and rate selection. The tier rate is
// kept on the decision even if a later rule rejects.
func applyScoreTier(d *decision) {
	switch {
	case d.creditScore > 70:
		d.approved = true
		d.tierRate = ratePrime
	case d.creditScore > 50:
		d.approved = true
		d.tierRate = rateStandard
	case d.creditScore > 30:
		d.approved = true
		d.tierRate = rateSubprime
	default:
		d.approved = false
	}
}

// Rule 2: existing active EMIs plus the prospective EMI must not exceed
// half the monthly salary.
func applyEMIBurdenCap(d *decision) {
	if !d.approved {
		return
	}

	d.prospectiveEMI = ComputeEMI(d.requestedAmount, d.tierRate, d.requestedTenure)

	budget := d.customer.MonthlySalary.Mul(half)
	if d.totalCurrentEMIs.Add(d.prospectiveEMI).GreaterThan(budget) {
		d.approved = false
	}
}

// Rule 3: current debt plus the requested amount must stay within the
// approved limit.
func applyCreditLimitCap(d *decision) {
	if !d.approved {
		return
	}

	if d.customer.CurrentDebt.Add(d.requestedAmount).GreaterThan(d.customer.ApprovedLimit) {
		d.approved = false
	}
}
