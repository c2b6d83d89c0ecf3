// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrMissingNote is returned when a request carries no note object.
	ErrMissingNote = errors.New("note is required")

	// ErrMissingNoteText is returned when a note has no usable text.
	ErrMissingNoteText = errors.New("note.text is required")

	// ErrInvalidOptions is returned when generation options are malformed or
	// outside their documented bounds.
	ErrInvalidOptions = errors.New("invalid generation options")
)
