// Package common defines sentinel errors shared by the console and the
// development API server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors: malformed drafts, unknown roles.
	ErrValidation = errors.New("validation error")
)
