package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func wealthyCustomer() CustomerProfile {
	return CustomerProfile{
		CustomerID:    1,
		MonthlySalary: money(100_000),
		ApprovedLimit: money(3_600_000),
		CurrentDebt:   money(0),
	}
}

func TestCheckLoanEligibility_ScoreTiers(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		wantApproved bool
		wantRate     string
	}{
		{"score 100 prime tier", 100, true, "10"},
		{"score 71 prime tier", 71, true, "10"},
		{"score 70 standard tier", 70, true, "12"},
		{"score 51 standard tier", 51, true, "12"},
		{"score 50 subprime tier", 50, true, "16"},
		{"score 31 subprime tier", 31, true, "16"},
		{"score 30 rejected", 30, false, "0"},
		{"score 0 rejected", 0, false, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := CheckLoanEligibility(wealthyCustomer(), money(100_000), 12, tt.score, nil)

			assert.Equal(t, tt.wantApproved, outcome.Approved)
			assert.True(t, outcome.InterestRate.Equal(decimal.RequireFromString(tt.wantRate)),
				"interest_rate = %s", outcome.InterestRate)

			if tt.wantApproved {
				assert.True(t, outcome.CorrectedInterestRate.Equal(outcome.InterestRate))
				assert.True(t, outcome.MonthlyInstallment.IsPositive())
			} else {
				assert.True(t, outcome.CorrectedInterestRate.IsZero())
				assert.True(t, outcome.MonthlyInstallment.IsZero())
			}
		})
	}
}

func TestCheckLoanEligibility_LowScoreRejectedRegardlessOfRequest(t *testing.T) {
	for _, amount := range []int64{1, 10_000, 10_000_000} {
		outcome := CheckLoanEligibility(wealthyCustomer(), money(amount), 120, 20, nil)

		assert.False(t, outcome.Approved)
		assert.True(t, outcome.InterestRate.IsZero())
		assert.True(t, outcome.CorrectedInterestRate.IsZero())
		assert.True(t, outcome.MonthlyInstallment.IsZero())
	}
}

func TestCheckLoanEligibility_EMIBurdenCap(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    7,
		MonthlySalary: money(10_000),
		ApprovedLimit: money(360_000),
		CurrentDebt:   money(0),
	}
	loans := []LoanRecord{
		{
			LoanID: 1, CustomerID: 7,
			LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 0,
			MonthlyInstallment: money(4_500), // 45% of salary already committed
			EndDate:            futureDate(),
		},
	}

	outcome := CheckLoanEligibility(customer, money(100_000), 12, 80, loans)

	// The score alone would approve at the prime tier; the EMI burden
	// rejects it, but the tier rate stays visible.
	assert.False(t, outcome.Approved)
	assert.True(t, outcome.InterestRate.Equal(money(10)))
	assert.True(t, outcome.CorrectedInterestRate.IsZero())
	assert.True(t, outcome.MonthlyInstallment.IsZero())
}

func TestCheckLoanEligibility_EMIBurdenIgnoresInactiveAndForeignLoans(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    7,
		MonthlySalary: money(10_000),
		ApprovedLimit: money(360_000),
		CurrentDebt:   money(0),
	}
	loans := []LoanRecord{
		// Paid off: no longer burdens the budget.
		{LoanID: 1, CustomerID: 7, LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 12,
			MonthlyInstallment: money(4_500), EndDate: pastDate()},
		// Someone else's loan sneaking into the slice.
		{LoanID: 2, CustomerID: 8, LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 0,
			MonthlyInstallment: money(4_500), EndDate: futureDate()},
	}

	outcome := CheckLoanEligibility(customer, money(50_000), 12, 80, loans)
	assert.True(t, outcome.Approved)
}

func TestCheckLoanEligibility_CreditLimitCap(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    9,
		MonthlySalary: money(100_000),
		ApprovedLimit: money(1_000_000),
		CurrentDebt:   money(900_000),
	}

	outcome := CheckLoanEligibility(customer, money(200_000), 12, 90, nil)

	assert.False(t, outcome.Approved)
	assert.True(t, outcome.InterestRate.Equal(money(10)))
	assert.True(t, outcome.CorrectedInterestRate.IsZero())
	assert.True(t, outcome.MonthlyInstallment.IsZero())
}

func TestCheckLoanEligibility_ApprovedInstallmentRounded(t *testing.T) {
	outcome := CheckLoanEligibility(wealthyCustomer(), money(100_000), 12, 80, nil)

	assert.True(t, outcome.Approved)
	emi := ComputeEMI(money(100_000), decimal.NewFromFloat(10.0), 12)
	assert.True(t, outcome.MonthlyInstallment.Equal(emi.Round(2)))
	assert.True(t, outcome.MonthlyInstallment.Equal(outcome.MonthlyInstallment.Round(2)))
}

func TestCheckLoanEligibility_ScoreMonotonicity(t *testing.T) {
	customer := wealthyCustomer()

	var prevRate decimal.Decimal
	prevApproved := false
	for score := 0; score <= 100; score++ {
		outcome := CheckLoanEligibility(customer, money(100_000), 12, score, nil)

		if prevApproved {
			// Raising the score never turns an approval into rejection.
			assert.True(t, outcome.Approved, "score %d", score)
			// The tier rate never worsens as the score rises.
			assert.True(t, outcome.InterestRate.LessThanOrEqual(prevRate), "score %d", score)
		}
		prevApproved = outcome.Approved
		prevRate = outcome.InterestRate
	}
}

func TestCheckLoanEligibility_Idempotent(t *testing.T) {
	loans := []LoanRecord{
		{LoanID: 1, CustomerID: 1, LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 6,
			MonthlyInstallment: money(9_000), EndDate: futureDate()},
	}

	first := CheckLoanEligibility(wealthyCustomer(), money(250_000), 24, 65, loans)
	second := CheckLoanEligibility(wealthyCustomer(), money(250_000), 24, 65, loans)

	assert.Equal(t, first.Approved, second.Approved)
	assert.True(t, first.InterestRate.Equal(second.InterestRate))
	assert.True(t, first.CorrectedInterestRate.Equal(second.CorrectedInterestRate))
	assert.True(t, first.MonthlyInstallment.Equal(second.MonthlyInstallment))
}
