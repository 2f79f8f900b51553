package domain

import "errors"

// Domain errors (no external dependencies). Infrastructure wraps its own
// failures with fmt.Errorf("%w"); handlers map these sentinels to HTTP codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrIncompatibleUnit   = errors.New("incompatible unit families")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
)
