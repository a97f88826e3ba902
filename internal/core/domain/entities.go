package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerProfile is the read-only view of a customer the decisioning
// engine consumes. All monetary fields are fixed-precision decimals.
type CustomerProfile struct {
	CustomerID    uint
	MonthlySalary decimal.Decimal
	ApprovedLimit decimal.Decimal
	CurrentDebt   decimal.Decimal
}

// LoanRecord is one loan in a customer's history.
type LoanRecord struct {
	LoanID             uint
	CustomerID         uint
	LoanAmount         decimal.Decimal
	Tenure             int
	InterestRate       decimal.Decimal
	MonthlyInstallment decimal.Decimal
	EMIsPaidOnTime     int
	StartDate          time.Time
	EndDate            *time.Time
}

// Active reports whether the loan is still running at the given time.
// A missing end date means the loan is open-ended and counts as active.
func (l *LoanRecord) Active(at time.Time) bool {
	return l.EndDate == nil || l.EndDate.After(at)
}

// EligibilityOutcome is the result of a loan eligibility check.
//
// InterestRate always carries the rate tier selected from the credit
// score, even when a later rule rejects the loan. CorrectedInterestRate
// is the approval-contingent rate: zero on any rejection. Callers must
// treat CorrectedInterestRate as authoritative.
type EligibilityOutcome struct {
	Approved              bool
	InterestRate          decimal.Decimal
	CorrectedInterestRate decimal.Decimal
	MonthlyInstallment    decimal.Decimal
}
