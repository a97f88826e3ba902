package handlers

import (
	"errors"

	"creditline/internal/core/domain"
	"creditline/internal/core/services"
	"creditline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer registration endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Register handles customer registration
// @Summary Register customer
// @Description Register a new customer; the approved limit is derived from monthly income
// @Tags Customers
// @Accept json
// @Produce json
// @Param body body services.RegisterCustomerInput true "Customer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /register [post]
func (h *CustomerHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterCustomerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate
	if req.FirstName == "" {
		return response.BadRequest(c, "First name is required")
	}
	if req.LastName == "" {
		return response.BadRequest(c, "Last name is required")
	}
	if req.PhoneNumber == "" {
		return response.BadRequest(c, "Phone number is required")
	}
	if !req.MonthlyIncome.IsPositive() {
		return response.BadRequest(c, "Monthly income must be positive")
	}

	customer, err := h.customerService.Register(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrPhoneNumberTaken) {
			return response.BadRequest(c, "Phone number is already registered")
		}
		return response.InternalServerError(c, "Failed to register customer")
	}

	return response.Created(c, "Customer registered successfully", customer.ToResponse())
}
