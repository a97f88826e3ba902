package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creditline/internal/adapters/persistence/models"
	"creditline/internal/adapters/persistence/repositories"
	"creditline/internal/core/domain"
)

// LoanService orchestrates the decisioning engine over persisted
// customers and loans
type LoanService struct {
	customerRepo repositories.CustomerRepository
	loanRepo     repositories.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(customerRepo repositories.CustomerRepository, loanRepo repositories.LoanRepository) *LoanService {
	return &LoanService{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
	}
}

// LoanRequestInput represents a loan request (eligibility check or
// creation). InterestRate is the rate the caller asks for; the engine
// selects the actual tier from the credit score.
type LoanRequestInput struct {
	CustomerID   uint            `json:"customer_id" validate:"required"`
	LoanAmount   decimal.Decimal `json:"loan_amount" validate:"required,gt=0"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"required,gt=0"`
	Tenure       int             `json:"tenure" validate:"required,gt=0"`
}

// EligibilityResult represents the outcome of an eligibility check
type EligibilityResult struct {
	CustomerID            uint            `json:"customer_id"`
	Approved              bool            `json:"approval"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	CorrectedInterestRate decimal.Decimal `json:"corrected_interest_rate"`
	Tenure                int             `json:"tenure"`
	MonthlyInstallment    decimal.Decimal `json:"monthly_installment"`
}

// CheckEligibility loads the customer and their loan history, computes
// the credit score and runs the approval rules
func (s *LoanService) CheckEligibility(ctx context.Context, input *LoanRequestInput) (*EligibilityResult, error) {
	customer, loans, err := s.loadHistory(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	profile := customer.ToProfile()
	records := models.ToRecords(loans)

	score := domain.CalculateCreditScore(profile, records)
	outcome := domain.CheckLoanEligibility(profile, input.LoanAmount, input.Tenure, score, records)

	return &EligibilityResult{
		CustomerID:            customer.CustomerID,
		Approved:              outcome.Approved,
		InterestRate:          outcome.InterestRate,
		CorrectedInterestRate: outcome.CorrectedInterestRate,
		Tenure:                input.Tenure,
		MonthlyInstallment:    outcome.MonthlyInstallment,
	}, nil
}

// CreateLoanResult represents the outcome of a loan creation request
type CreateLoanResult struct {
	LoanID             *uint           `json:"loan_id"`
	CustomerID         uint            `json:"customer_id"`
	Approved           bool            `json:"loan_approved"`
	Message            string          `json:"message"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

// CreateLoan re-runs the eligibility decision and, when approved,
// persists the loan and the customer's increased debt atomically
func (s *LoanService) CreateLoan(ctx context.Context, input *LoanRequestInput) (*CreateLoanResult, error) {
	customer, loans, err := s.loadHistory(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	profile := customer.ToProfile()
	records := models.ToRecords(loans)

	score := domain.CalculateCreditScore(profile, records)
	outcome := domain.CheckLoanEligibility(profile, input.LoanAmount, input.Tenure, score, records)

	if !outcome.Approved {
		return &CreateLoanResult{
			CustomerID:         customer.CustomerID,
			Approved:           false,
			Message:            "Loan not approved based on eligibility criteria",
			MonthlyInstallment: decimal.Zero,
		}, nil
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, input.Tenure, 0)

	loan := &models.Loan{
		CustomerID:         customer.CustomerID,
		LoanAmount:         input.LoanAmount,
		Tenure:             input.Tenure,
		InterestRate:       outcome.CorrectedInterestRate,
		MonthlyInstallment: outcome.MonthlyInstallment,
		EMIsPaidOnTime:     0,
		StartDate:          start,
		EndDate:            &end,
	}

	newDebt := customer.CurrentDebt.Add(input.LoanAmount)
	if err := s.loanRepo.CreateWithDebt(ctx, loan, newDebt); err != nil {
		return nil, err
	}

	return &CreateLoanResult{
		LoanID:             &loan.LoanID,
		CustomerID:         customer.CustomerID,
		Approved:           true,
		Message:            "Loan approved",
		MonthlyInstallment: outcome.MonthlyInstallment,
	}, nil
}

// ListByCustomer lists a customer's loans with pagination
func (s *LoanService) ListByCustomer(ctx context.Context, customerID uint, offset, limit int) ([]*models.Loan, int64, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrCustomerNotFound
		}
		return nil, 0, err
	}
	return s.loanRepo.ListByCustomerPaged(ctx, customerID, offset, limit)
}

// GetLoan gets a single loan with its owner
func (s *LoanService) GetLoan(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// LoanStatement represents the statement view of a single loan
type LoanStatement struct {
	CustomerID         uint            `json:"customer_id"`
	LoanID             uint            `json:"loan_id"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RepaymentsLeft     int             `json:"repayments_left"`
}

// Statement builds the statement for a loan owned by the customer.
// An ownership mismatch surfaces as not found.
func (s *LoanService) Statement(ctx context.Context, customerID, loanID uint) (*LoanStatement, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.CustomerID != customerID {
		return nil, domain.ErrLoanNotFound
	}

	paid := loan.MonthlyInstallment.Mul(decimal.NewFromInt(int64(loan.EMIsPaidOnTime)))

	return &LoanStatement{
		CustomerID:         loan.CustomerID,
		LoanID:             loan.LoanID,
		Principal:          loan.LoanAmount,
		InterestRate:       loan.InterestRate,
		AmountPaid:         paid,
		MonthlyInstallment: loan.MonthlyInstallment,
		RepaymentsLeft:     loan.RepaymentsLeft(),
	}, nil
}

func (s *LoanService) loadHistory(ctx context.Context, customerID uint) (*models.Customer, []*models.Loan, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrCustomerNotFound
		}
		return nil, nil, err
	}

	loans, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return customer, loans, nil
}
