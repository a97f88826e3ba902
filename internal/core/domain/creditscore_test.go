package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func datePtr(t time.Time) *time.Time { return &t }

func pastDate() *time.Time   { return datePtr(time.Now().AddDate(0, -1, 0)) }
func futureDate() *time.Time { return datePtr(time.Now().AddDate(0, 6, 0)) }

func TestCalculateCreditScore_NoLoanHistory(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    1,
		MonthlySalary: money(70_000),
		ApprovedLimit: money(2_520_000),
		CurrentDebt:   money(0),
	}

	assert.Equal(t, 100, CalculateCreditScore(customer, nil))
	assert.Equal(t, 100, CalculateCreditScore(customer, []LoanRecord{}))
}

func TestCalculateCreditScore_NoHistoryOverridesDebt(t *testing.T) {
	// Even a customer far over their limit scores 100 with no loans.
	customer := CustomerProfile{
		CustomerID:    2,
		MonthlySalary: money(10_000),
		ApprovedLimit: money(360_000),
		CurrentDebt:   money(5_000_000),
	}

	assert.Equal(t, 100, CalculateCreditScore(customer, nil))
}

func TestCalculateCreditScore_GoodHistoryWithOneDelay(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    1,
		MonthlySalary: money(100_000),
		ApprovedLimit: money(3_600_000),
		CurrentDebt:   money(0),
	}
	loans := []LoanRecord{
		{
			LoanID: 1, CustomerID: 1,
			LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 12,
			MonthlyInstallment: money(9_000),
			EndDate:            pastDate(),
		},
		{
			LoanID: 2, CustomerID: 1,
			LoanAmount: money(50_000), Tenure: 6, EMIsPaidOnTime: 3,
			MonthlyInstallment: money(8_500),
			EndDate:            futureDate(),
		},
	}

	// 50 base + 37 on-time bonus (avg ratio 0.75, truncated) - 10 delay.
	assert.Equal(t, 77, CalculateCreditScore(customer, loans))
}

func TestCalculateCreditScore_HighDebtPenalty(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    2,
		MonthlySalary: money(50_000),
		ApprovedLimit: money(1_800_000),
		CurrentDebt:   money(2_000_000),
	}
	loans := []LoanRecord{
		{
			LoanID: 3, CustomerID: 2,
			LoanAmount: money(1_000_000), Tenure: 60, EMIsPaidOnTime: 50,
			MonthlyInstallment: money(23_790),
			EndDate:            futureDate(),
		},
	}

	// 50 base + 41 on-time - 20 high debt - 10 delay.
	assert.Equal(t, 61, CalculateCreditScore(customer, loans))
}

func TestCalculateCreditScore_ActiveAmountPenalty(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    3,
		MonthlySalary: money(50_000),
		ApprovedLimit: money(1_800_000),
		CurrentDebt:   money(0),
	}
	loans := []LoanRecord{
		{
			LoanID: 4, CustomerID: 3,
			LoanAmount: money(2_000_000), Tenure: 24, EMIsPaidOnTime: 24,
			EndDate: futureDate(),
		},
	}

	// 50 base + 50 on-time - 10 active amount over limit.
	assert.Equal(t, 90, CalculateCreditScore(customer, loans))
}

func TestCalculateCreditScore_ZeroTenureLoan(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    4,
		MonthlySalary: money(50_000),
		ApprovedLimit: money(1_800_000),
		CurrentDebt:   money(0),
	}

	t.Run("only zero-tenure loans means no qualifying history", func(t *testing.T) {
		loans := []LoanRecord{
			{LoanID: 5, CustomerID: 4, LoanAmount: money(2_000_000), Tenure: 0, EndDate: futureDate()},
		}
		assert.Equal(t, 100, CalculateCreditScore(customer, loans))
	})

	t.Run("zero-tenure amount still counts toward active total", func(t *testing.T) {
		loans := []LoanRecord{
			{LoanID: 5, CustomerID: 4, LoanAmount: money(2_000_000), Tenure: 0, EndDate: futureDate()},
			{LoanID: 6, CustomerID: 4, LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 12, EndDate: pastDate()},
		}
		// 50 base + 50 on-time - 10 active over limit; the zero-tenure
		// loan is excluded from the ratio but not from the active sum.
		assert.Equal(t, 90, CalculateCreditScore(customer, loans))
	})
}

func TestCalculateCreditScore_AlwaysWithinRange(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    5,
		MonthlySalary: money(10_000),
		ApprovedLimit: money(360_000),
		CurrentDebt:   money(9_999_999),
	}
	loans := []LoanRecord{
		{LoanID: 7, CustomerID: 5, LoanAmount: money(5_000_000), Tenure: 12, EMIsPaidOnTime: 0, EndDate: futureDate()},
		{LoanID: 8, CustomerID: 5, LoanAmount: money(5_000_000), Tenure: 36, EMIsPaidOnTime: 72, EndDate: futureDate()},
	}

	score := CalculateCreditScore(customer, loans)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestCalculateCreditScore_Idempotent(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    1,
		MonthlySalary: money(100_000),
		ApprovedLimit: money(3_600_000),
		CurrentDebt:   money(500_000),
	}
	loans := []LoanRecord{
		{LoanID: 1, CustomerID: 1, LoanAmount: money(500_000), Tenure: 24, EMIsPaidOnTime: 20, EndDate: futureDate()},
	}

	first := CalculateCreditScore(customer, loans)
	second := CalculateCreditScore(customer, loans)
	assert.Equal(t, first, second)
}

func TestCalculateCreditScore_OrderIndependent(t *testing.T) {
	customer := CustomerProfile{
		CustomerID:    1,
		MonthlySalary: money(100_000),
		ApprovedLimit: money(3_600_000),
		CurrentDebt:   money(0),
	}
	a := LoanRecord{LoanID: 1, CustomerID: 1, LoanAmount: money(100_000), Tenure: 12, EMIsPaidOnTime: 12, EndDate: pastDate()}
	b := LoanRecord{LoanID: 2, CustomerID: 1, LoanAmount: money(50_000), Tenure: 6, EMIsPaidOnTime: 3, EndDate: futureDate()}

	assert.Equal(t,
		CalculateCreditScore(customer, []LoanRecord{a, b}),
		CalculateCreditScore(customer, []LoanRecord{b, a}),
	)
}
