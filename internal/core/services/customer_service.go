package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creditline/internal/adapters/persistence/models"
	"creditline/internal/adapters/persistence/repositories"
	"creditline/internal/core/domain"
)

var thirtySix = decimal.NewFromInt(36)

// CustomerService handles customer registration and lookup
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// RegisterCustomerInput represents a registration request
type RegisterCustomerInput struct {
	FirstName     string          `json:"first_name" validate:"required"`
	LastName      string          `json:"last_name" validate:"required"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income" validate:"required,gt=0"`
	PhoneNumber   string          `json:"phone_number" validate:"required"`
}

// Register creates a new customer with the approved-limit policy:
// 36x monthly income, rounded to the nearest lakh.
func (s *CustomerService) Register(ctx context.Context, input *RegisterCustomerInput) (*models.Customer, error) {
	taken, err := s.customerRepo.ExistsByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrPhoneNumberTaken
	}

	customer := &models.Customer{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Age:           input.Age,
		PhoneNumber:   input.PhoneNumber,
		MonthlySalary: input.MonthlyIncome,
		ApprovedLimit: domain.RoundToNearestLakh(input.MonthlyIncome.Mul(thirtySix)),
		CurrentDebt:   decimal.Zero,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID gets a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}
