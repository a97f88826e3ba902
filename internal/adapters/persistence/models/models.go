package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creditline/internal/core/domain"
)

// Customer represents the customers table
type Customer struct {
	CustomerID    uint            `gorm:"primaryKey;column:customer_id" json:"customer_id"`
	FirstName     string          `gorm:"size:100;not null" json:"first_name"`
	LastName      string          `gorm:"size:100;not null" json:"last_name"`
	Age           int             `json:"age"`
	PhoneNumber   string          `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_salary"`
	ApprovedLimit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"approved_limit"`
	CurrentDebt   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_debt"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Loans []Loan `gorm:"foreignKey:CustomerID" json:"loans,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ToProfile converts to the engine's read-only customer view
func (c *Customer) ToProfile() domain.CustomerProfile {
	return domain.CustomerProfile{
		CustomerID:    c.CustomerID,
		MonthlySalary: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		CurrentDebt:   c.CurrentDebt,
	}
}

// CustomerResponse DTO
type CustomerResponse struct {
	CustomerID    uint            `json:"customer_id"`
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	PhoneNumber   string          `json:"phone_number"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.FullName(),
		Age:           c.Age,
		MonthlyIncome: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
	}
}

// Loan represents the loans table
type Loan struct {
	LoanID             uint            `gorm:"primaryKey;column:loan_id" json:"loan_id"`
	CustomerID         uint            `gorm:"not null;index" json:"customer_id"`
	LoanAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"loan_amount"`
	Tenure             int             `gorm:"not null" json:"tenure"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_installment"`
	EMIsPaidOnTime     int             `gorm:"column:emis_paid_on_time;not null;default:0" json:"emis_paid_on_time"`
	StartDate          time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate            *time.Time      `gorm:"type:date" json:"end_date"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// RepaymentsLeft returns the number of installments still due
func (l *Loan) RepaymentsLeft() int {
	left := l.Tenure - l.EMIsPaidOnTime
	if left < 0 {
		left = 0
	}
	return left
}

// ToRecord converts to the engine's loan history entry
func (l *Loan) ToRecord() domain.LoanRecord {
	return domain.LoanRecord{
		LoanID:             l.LoanID,
		CustomerID:         l.CustomerID,
		LoanAmount:         l.LoanAmount,
		Tenure:             l.Tenure,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyInstallment,
		EMIsPaidOnTime:     l.EMIsPaidOnTime,
		StartDate:          l.StartDate,
		EndDate:            l.EndDate,
	}
}

// ToRecords converts a loan slice for the engine
func ToRecords(loans []*Loan) []domain.LoanRecord {
	records := make([]domain.LoanRecord, 0, len(loans))
	for _, loan := range loans {
		records = append(records, loan.ToRecord())
	}
	return records
}

// LoanResponse DTO for loan listings
type LoanResponse struct {
	LoanID             uint            `json:"loan_id"`
	CustomerID         uint            `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	Tenure             int             `json:"tenure"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RepaymentsLeft     int             `json:"repayments_left"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            *time.Time      `json:"end_date"`
}

func (l *Loan) ToResponse() *LoanResponse {
	return &LoanResponse{
		LoanID:             l.LoanID,
		CustomerID:         l.CustomerID,
		LoanAmount:         l.LoanAmount,
		Tenure:             l.Tenure,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyInstallment,
		RepaymentsLeft:     l.RepaymentsLeft(),
		StartDate:          l.StartDate,
		EndDate:            l.EndDate,
	}
}

// LoanDetailResponse DTO for the single-loan view, embeds the owner
type LoanDetailResponse struct {
	LoanID             uint              `json:"loan_id"`
	Customer           *CustomerResponse `json:"customer"`
	LoanAmount         decimal.Decimal   `json:"loan_amount"`
	Tenure             int               `json:"tenure"`
	InterestRate       decimal.Decimal   `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal   `json:"monthly_installment"`
}

func (l *Loan) ToDetailResponse() *LoanDetailResponse {
	resp := &LoanDetailResponse{
		LoanID:             l.LoanID,
		LoanAmount:         l.LoanAmount,
		Tenure:             l.Tenure,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyInstallment,
	}
	if l.Customer != nil {
		resp.Customer = l.Customer.ToResponse()
	}
	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&Loan{},
	)
}
