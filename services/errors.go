package services

import "errors"

// error kinds ให้ controller แยกเคสด้วย errors.Is
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutConflict  = errors.New("checkout completion already in progress")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStoreUnavailable  = errors.New("ephemeral store unavailable")
)
