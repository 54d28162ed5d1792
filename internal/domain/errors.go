package domain

import "errors"

// Error kinds shared by every layer. Storages and usecases wrap them with
// fmt.Errorf("...: %w", ErrX); the HTTP layer maps them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream service failure")
)
