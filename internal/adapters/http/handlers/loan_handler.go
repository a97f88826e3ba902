package handlers

import (
	"errors"
	"strconv"

	"creditline/internal/adapters/persistence/models"
	"creditline/internal/core/domain"
	"creditline/internal/core/services"
	"creditline/internal/pkg/pagination"
	"creditline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles eligibility and loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

func parseLoanRequest(c *fiber.Ctx) (*services.LoanRequestInput, error) {
	var req services.LoanRequestInput
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("Invalid request body")
	}

	if req.CustomerID == 0 {
		return nil, errors.New("Customer ID is required")
	}
	if !req.LoanAmount.IsPositive() {
		return nil, errors.New("Loan amount must be positive")
	}
	if req.Tenure <= 0 {
		return nil, errors.New("Tenure must be positive")
	}
	if req.InterestRate.IsNegative() {
		return nil, errors.New("Interest rate cannot be negative")
	}
	return &req, nil
}

// CheckEligibility handles eligibility checks
// @Summary Check loan eligibility
// @Description Score the customer's loan history and run the approval rules
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body services.LoanRequestInput true "Loan request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /check-eligibility [post]
func (h *LoanHandler) CheckEligibility(c *fiber.Ctx) error {
	req, err := parseLoanRequest(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.loanService.CheckEligibility(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to check eligibility")
	}

	return response.Success(c, "Eligibility checked successfully", result)
}

// CreateLoan handles loan creation
// @Summary Create loan
// @Description Re-run the eligibility decision and persist the loan when approved
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body services.LoanRequestInput true "Loan request"
// @Success 201 {object} response.Response
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /create-loan [post]
func (h *LoanHandler) CreateLoan(c *fiber.Ctx) error {
	req, err := parseLoanRequest(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.loanService.CreateLoan(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to create loan")
	}

	// Rejections are a decision, not an error.
	if !result.Approved {
		return response.Success(c, result.Message, result)
	}
	return response.Created(c, result.Message, result)
}

// ViewLoans handles listing a customer's loans
// @Summary View customer loans
// @Description Get a paginated list of a customer's loans
// @Tags Loans
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /view-loans/{customer_id} [get]
func (h *LoanHandler) ViewLoans(c *fiber.Ctx) error {
	customerID, err := strconv.ParseUint(c.Params("customer_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	params := pagination.GetParams(c)

	loans, total, err := h.loanService.ListByCustomer(c.Context(), uint(customerID), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to list loans")
	}

	items := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.ToResponse())
	}

	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(items, params, total))
}

// ViewLoan handles getting a single loan
// @Summary View loan
// @Description Get a single loan with its customer summary
// @Tags Loans
// @Accept json
// @Produce json
// @Param loan_id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /view-loan/{loan_id} [get]
func (h *LoanHandler) ViewLoan(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("loan_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetLoan(c.Context(), uint(loanID))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan.ToDetailResponse())
}

// ViewStatement handles the per-loan statement view
// @Summary View loan statement
// @Description Get the repayment statement of a loan owned by the customer
// @Tags Loans
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Param loan_id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /view-statement/{customer_id}/{loan_id} [get]
func (h *LoanHandler) ViewStatement(c *fiber.Ctx) error {
	customerID, err := strconv.ParseUint(c.Params("customer_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}
	loanID, err := strconv.ParseUint(c.Params("loan_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	statement, err := h.loanService.Statement(c.Context(), uint(customerID), uint(loanID))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get statement")
	}

	return response.Success(c, "Statement retrieved successfully", statement)
}
