package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure: no infrastructure dependency.
// Match with errors.Is; infrastructure wraps its causes around these.

var (
	// Record construction errors
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrEmptyDescription  = errors.New("description must not be empty")
	ErrUnknownLabel      = errors.New("unknown mood label")

	// Store errors
	ErrPersistence = errors.New("persistence failure")
	ErrNotFound    = errors.New("record not found")

	// Location permission errors
	ErrPermissionDenied  = errors.New("location permission not granted")
	ErrInvalidTransition = errors.New("invalid permission transition")
)
