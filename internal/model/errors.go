package model

import "errors"

// Error kinds. Every domain error wraps exactly one of these so the transport
// layer can pick a status code without knowing each individual error.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
)
