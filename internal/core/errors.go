package core

import "errors"

// Error taxonomy shared across components. Call sites wrap these with
// fmt.Errorf("...: %w", err) and the HTTP boundary classifies with
// errors.Is before flattening everything to the uniform failure payload.
var (
	// ErrValidation marks a malformed or missing required field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an absent record. It is deliberately distinct from
	// ErrPersistence so callers can tell "no such record" from "the lookup
	// itself failed".
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a store read or write that did not succeed.
	ErrPersistence = errors.New("persistence failed")

	// ErrUpstream marks a failed or malformed completion-service response.
	ErrUpstream = errors.New("upstream service failed")
)
