// Package domain contains the core business entities for the booking payment
// service.
package domain

import "errors"

// Domain errors - represent business rule violations.
var (
	// ErrValidation is returned for malformed purchase requests. Nothing is
	// persisted when it fires.
	ErrValidation = errors.New("invalid purchase request")

	// ErrMembershipTypeNotFound is returned when the requested membership
	// code is not an active catalog entry.
	ErrMembershipTypeNotFound = errors.New("membership type not found")

	// ErrStaging is returned when the database write during staging fails.
	ErrStaging = errors.New("failed to stage purchase")

	// ErrCheckoutCreation is returned when the processor call fails or
	// returns unusable data. Already-staged records are compensated first.
	ErrCheckoutCreation = errors.New("failed to create checkout session")

	// ErrPaymentGatewayError is returned when Mercado Pago fails.
	ErrPaymentGatewayError = errors.New("payment gateway error")

	// ErrReferenceNotFound is returned when a callback names a reference
	// token with no staged records behind it.
	ErrReferenceNotFound = errors.New("no records for reference token")

	// ErrReconciliation is returned when a callback-time database update
	// fails. Never surfaced to the redirected browser.
	ErrReconciliation = errors.New("failed to reconcile payment outcome")
)

// ServiceError wraps errors with additional context.
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(err error, message, code string) *ServiceError {
	return &ServiceError{Err: err, Message: message, Code: code}
}
