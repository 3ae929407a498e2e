package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrValidation          = errors.New("validation error")
	ErrFoodNotFound        = errors.New("food not found")
	ErrCrossMerchantItems  = errors.New("items belong to different merchants")
	ErrConflict            = errors.New("conflicting status transition")
	ErrForbidden           = errors.New("forbidden")
	ErrNothingToInvoice    = errors.New("no completed orders in period")
)

// Validation wraps ErrValidation with a human readable reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
