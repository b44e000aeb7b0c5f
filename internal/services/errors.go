package services

import "errors"

var (
	// ErrValidation wraps every rejected request field; the wrapped message
	// is safe to show to the caller.
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("not allowed to access this resource")
)
