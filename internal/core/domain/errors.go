package domain

import "errors"

// Customer errors
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPhoneNumberTaken = errors.New("a customer with this phone number already exists")
)

// Loan errors
var (
	ErrLoanNotFound = errors.New("loan not found")
)
