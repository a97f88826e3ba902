package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"creditline/internal/adapters/persistence/models"
)

// CustomerRepository defines customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error)
	Upsert(ctx context.Context, customer *models.Customer) error
}

// LoanRepository defines loan data access
type LoanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error)
	ListByCustomerPaged(ctx context.Context, customerID uint, offset, limit int) ([]*models.Loan, int64, error)
	Upsert(ctx context.Context, loan *models.Loan) error

	// CreateWithDebt inserts the loan and persists the customer's new
	// debt in a single transaction: either both happen or neither does.
	CreateWithDebt(ctx context.Context, loan *models.Loan, newDebt decimal.Decimal) error
}
