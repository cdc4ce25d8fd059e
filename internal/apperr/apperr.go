package apperr

import "errors"

// Sentinel errors shared by the service and repository layers. Handlers
// translate them to HTTP status codes; everything else is a storage error
// and surfaces as 500.
var (
	ErrValidation      = errors.New("invalid input")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)
