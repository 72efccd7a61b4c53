// internal/services/errors.go
package services

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Services
// wrap them with context; callers match with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
	ErrUpstream  = errors.New("upstream failure")
)
