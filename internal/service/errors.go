package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNotMember indicates the caller does not belong to the group it asked about.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotMember = errors.New("user is not a member of the group")

	// ErrAlreadyMember indicates a join request for a group the caller already belongs to.
	// The original join semantics treat this as a successful, idempotent outcome.
	ErrAlreadyMember = errors.New("user is already a member of the group")
)
