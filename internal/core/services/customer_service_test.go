package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditline/internal/core/domain"
)

func TestCustomerService_Register_AppliesLimitPolicy(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	customer, err := svc.Register(context.Background(), &RegisterCustomerInput{
		FirstName:     "Api",
		LastName:      "Test",
		Age:           25,
		MonthlyIncome: decimal.NewFromInt(80_000),
		PhoneNumber:   "9999999999",
	})
	require.NoError(t, err)

	// 36 x 80,000 = 2,880,000 -> nearest lakh rounds up.
	assert.True(t, customer.ApprovedLimit.Equal(decimal.NewFromInt(2_900_000)),
		"approved_limit = %s", customer.ApprovedLimit)
	assert.True(t, customer.CurrentDebt.IsZero())
	assert.Equal(t, "Api Test", customer.FullName())
	assert.NotZero(t, customer.CustomerID)
}

func TestCustomerService_Register_DuplicatePhone(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	input := &RegisterCustomerInput{
		FirstName:     "First",
		LastName:      "User",
		MonthlyIncome: decimal.NewFromInt(50_000),
		PhoneNumber:   "1231231234",
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	input.FirstName = "Second"
	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrPhoneNumberTaken)
	assert.Len(t, repo.customers, 1)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
