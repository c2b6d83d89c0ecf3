package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/store"
)

// Error codes carried in the envelope's error field.
const (
	// Study material generation
	CodeMissingNote     = "missing-note"
	CodeMissingNoteText = "missing-note-text"
	CodeInvalidOptions  = "invalid-options"
	CodeLLMFailed       = "llm-failed"
	CodeInvalidLLMJSON  = "invalid-llm-json"

	// Groups
	CodeMissingParams       = "missing-params"
	CodeMissingUserID       = "missing-userId"
	CodeNoGroupsFound       = "no-groups-found"
	CodeGroupNameExists     = "group-name-exists"
	CodeGroupNameTooLong    = "group-name-too-long"
	CodeGroupNotFound       = "group-not-found"
	CodeNotAMember          = "not-a-member"
	CodeAlreadyAMember      = "already-a-member"
	CodeNoSuchGroupOrUser   = "no-such-group-or-user"
	CodeNoSuchGroupOrUserID = "no-such-group-or-userId"

	// Cross-cutting
	CodeUnauthorized  = "unauthorized"
	CodeInternalError = "internal-error"
	CodeNotFound      = "not-found"
	CodeBodyTooLarge  = "payload-too-large"
)

// MapErrorToCode maps a service-layer error to an HTTP status, an error code
// and a client-safe message. Unknown errors map to a generic 500 so internal
// details never reach the client.
func MapErrorToCode(err error) (int, string, string) {
	switch {
	case bodyTooLarge(err):
		return http.StatusRequestEntityTooLarge, CodeBodyTooLarge,
			fmt.Sprintf("Request body exceeds the %d byte limit", shared.MaxBodyBytes)

	case errors.Is(err, domain.ErrMissingNote):
		return http.StatusBadRequest, CodeMissingNote, "note is required"
	case errors.Is(err, domain.ErrMissingNoteText):
		return http.StatusBadRequest, CodeMissingNoteText, "note.text is required"
	case errors.Is(err, domain.ErrInvalidOptions):
		return http.StatusBadRequest, CodeInvalidOptions, "Invalid options"

	case errors.Is(err, generation.ErrUnexpectedShape):
		return http.StatusInternalServerError, CodeInvalidLLMJSON, "LLM returned invalid JSON"
	case errors.Is(err, generation.ErrInvalidConfig),
		errors.Is(err, generation.ErrServiceFailure),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrMalformedResponse):
		return http.StatusInternalServerError, CodeLLMFailed, "Failed to generate content"

	case errors.Is(err, domain.ErrGroupNameTooLong):
		return http.StatusBadRequest, CodeGroupNameTooLong, "Group name is too long"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeMissingParams, "Missing group name or userId"
	case errors.Is(err, store.ErrGroupNameExists):
		return http.StatusBadRequest, CodeGroupNameExists, "Group name already exists"
	case errors.Is(err, store.ErrGroupNotFound):
		return http.StatusNotFound, CodeGroupNotFound, "Group not found"
	case errors.Is(err, service.ErrNotMember):
		return http.StatusForbidden, CodeNotAMember, "Access denied: User is not a member of the group"
	case errors.Is(err, service.ErrAlreadyMember):
		return http.StatusOK, CodeAlreadyAMember, "User is already a member of the group"

	default:
		return http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred"
	}
}

// bodyTooLarge reports whether err comes from the request body size cap.
func bodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}
