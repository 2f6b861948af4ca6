package domain

import "errors"

// Sentinel errors shared by all services. Handlers never inspect storage errors
// directly; services wrap their failures into one of these and the error
// middleware translates them to transport responses.
var (
	ErrValidation       = errors.New("validation failed")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("insufficient permissions")
	ErrNotFound         = errors.New("resource not found")
	ErrRateLimited      = errors.New("too many submissions")
	ErrInvalidChallenge = errors.New("captcha verification failed")
	ErrUnavailable      = errors.New("dependency unavailable")
)
