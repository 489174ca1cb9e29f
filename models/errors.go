// File: /models/errors.go
package models

import "errors"

// Domain error taxonomy. Services wrap these with context; controllers map
// them onto HTTP status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthorized     = errors.New("unauthorized")
)
