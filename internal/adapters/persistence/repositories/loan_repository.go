package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"creditline/internal/adapters/persistence/models"
)

// loanRepository is the GORM-backed LoanRepository
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// GetByID gets a loan by ID with its owner
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByCustomer lists all loans of a customer
func (r *loanRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date ASC").
		Find(&loans).Error
	return loans, err
}

// ListByCustomerPaged lists a customer's loans with pagination
func (r *loanRepository) ListByCustomerPaged(ctx context.Context, customerID uint, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	r.db.WithContext(ctx).Model(&models.Loan{}).Where("customer_id = ?", customerID).Count(&total)

	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// Upsert creates or updates a loan by primary key (bulk import)
func (r *loanRepository) Upsert(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "loan_id"}},
			UpdateAll: true,
		}).
		Create(loan).Error
}

// CreateWithDebt inserts the loan and the updated customer debt atomically
func (r *loanRepository) CreateWithDebt(ctx context.Context, loan *models.Loan, newDebt decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loan).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).
			Where("customer_id = ?", loan.CustomerID).
			Update("current_debt", newDebt).Error
	})
}
