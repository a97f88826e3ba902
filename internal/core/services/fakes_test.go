package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creditline/internal/adapters/persistence/models"
)

// In-memory repository fakes backing the service tests.

type fakeCustomerRepo struct {
	customers map[uint]*models.Customer
	nextID    uint
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uint]*models.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	f.nextID++
	customer.CustomerID = f.nextID
	f.customers[customer.CustomerID] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) ExistsByPhone(_ context.Context, phoneNumber string) (bool, error) {
	for _, c := range f.customers {
		if c.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) Upsert(_ context.Context, customer *models.Customer) error {
	f.customers[customer.CustomerID] = customer
	return nil
}

type fakeLoanRepo struct {
	loans        map[uint]*models.Loan
	customerRepo *fakeCustomerRepo
	nextID       uint
	failCreate   bool
}

func newFakeLoanRepo(customerRepo *fakeCustomerRepo) *fakeLoanRepo {
	return &fakeLoanRepo{
		loans:        make(map[uint]*models.Loan),
		customerRepo: customerRepo,
	}
}

func (f *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	loan, ok := f.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if owner, ok := f.customerRepo.customers[loan.CustomerID]; ok {
		loan.Customer = owner
	}
	return loan, nil
}

func (f *fakeLoanRepo) ListByCustomer(_ context.Context, customerID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	for _, loan := range f.loans {
		if loan.CustomerID == customerID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (f *fakeLoanRepo) ListByCustomerPaged(ctx context.Context, customerID uint, offset, limit int) ([]*models.Loan, int64, error) {
	loans, err := f.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(loans))
	if offset >= len(loans) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(loans) {
		end = len(loans)
	}
	return loans[offset:end], total, nil
}

func (f *fakeLoanRepo) Upsert(_ context.Context, loan *models.Loan) error {
	f.loans[loan.LoanID] = loan
	return nil
}

func (f *fakeLoanRepo) CreateWithDebt(_ context.Context, loan *models.Loan, newDebt decimal.Decimal) error {
	if f.failCreate {
		return errors.New("create failed")
	}
	f.nextID++
	loan.LoanID = f.nextID
	f.loans[loan.LoanID] = loan
	if owner, ok := f.customerRepo.customers[loan.CustomerID]; ok {
		owner.CurrentDebt = newDebt
	}
	return nil
}
