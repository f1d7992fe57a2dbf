package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	ErrInvalidProductID  = errors.New("invalid product id")
	ErrInvalidMode       = errors.New("invalid acquisition mode")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidRentalDays = errors.New("rental days must be positive")
	ErrInvalidPrice      = errors.New("price must not be negative")
)
