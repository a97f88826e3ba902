package routes

import (
	"creditline/internal/adapters/http/handlers"
	"creditline/internal/adapters/persistence/repositories"
	"creditline/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	customerRepo := repositories.NewCustomerRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	customerService := services.NewCustomerService(customerRepo)
	loanService := services.NewLoanService(customerRepo, loanRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	customerHandler := handlers.NewCustomerHandler(customerService)
	loanHandler := handlers.NewLoanHandler(loanService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, customerHandler, loanHandler)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	customerHandler *handlers.CustomerHandler,
	loanHandler *handlers.LoanHandler,
) {
	router.Post("/register", customerHandler.Register)

	router.Post("/check-eligibility", loanHandler.CheckEligibility)
	router.Post("/create-loan", loanHandler.CreateLoan)

	router.Get("/view-loans/:customer_id", loanHandler.ViewLoans)
	router.Get("/view-loan/:loan_id", loanHandler.ViewLoan)
	router.Get("/view-statement/:customer_id/:loan_id", loanHandler.ViewStatement)
}
