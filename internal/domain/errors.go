package domain

import "errors"

// Sentinel errors shared by services and adapters.
// Transport code maps them to status codes with errors.Is; detail is attached
// by wrapping, e.g. fmt.Errorf("%w: duration_min must be > 0", ErrValidation).
var (
	// ErrValidation marks malformed or missing request input.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks a caller whose role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a requested interval that overlaps an existing delivery for the same driver.
	ErrConflict = errors.New("scheduling conflict")

	ErrNotFound = errors.New("not found")

	// ErrStorage marks a persistence failure. The unit of work that produced it was rolled back,
	// so the operation is safe to retry.
	ErrStorage = errors.New("storage failure")
)
