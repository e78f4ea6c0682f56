package repository

import "errors"

// Sentinel errors returned by repositories. Callers match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
)
