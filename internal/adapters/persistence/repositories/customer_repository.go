package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"creditline/internal/adapters/persistence/models"
)

// customerRepository is the GORM-backed CustomerRepository
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ExistsByPhone checks whether a phone number is already registered
func (r *customerRepository) ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("phone_number = ?", phoneNumber).
		Count(&count).Error
	return count > 0, err
}

// Upsert creates or updates a customer by primary key (bulk import)
func (r *customerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}},
			UpdateAll: true,
		}).
		Create(customer).Error
}
