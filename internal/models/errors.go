package models

import "errors"

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup that returned no match.
	ErrNotFound = errors.New("not found")
)
