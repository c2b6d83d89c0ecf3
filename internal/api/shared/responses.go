package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/redact"
)

// Envelope is the JSON wrapper shared by every response. Error is null
// exactly when Success is true. Endpoint payloads embed it so their fields
// sit beside the envelope fields.
type Envelope struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Error     *string `json:"error"`
	RequestID string  `json:"requestId"`
	Details   string  `json:"details,omitempty"`
}

// Succeeded builds a success envelope for r.
func Succeeded(r *http.Request, message string) Envelope {
	return Envelope{
		Success:   true,
		Message:   message,
		RequestID: RequestIDOrNew(r.Context()),
	}
}

// Failed builds a failure envelope carrying the given error code.
func Failed(r *http.Request, code, message string) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Error:     &code,
		RequestID: RequestIDOrNew(r.Context()),
	}
}

// ResponseOption customizes an error response.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
	details         string
}

// WithElevatedLogLevel raises a 4xx response from DEBUG to WARN in the logs.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// WithDetails attaches a diagnostic string to the envelope. The text is
// redacted before it leaves the process.
func WithDetails(details string) ResponseOption {
	return func(opts *responseOptions) {
		opts.details = redact.String(details)
	}
}

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a failure envelope without an underlying error to log.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, code, message string, opts ...ResponseOption) {
	RespondWithErrorAndLog(w, r, status, code, message, nil, opts...)
}

// RespondWithErrorAndLog writes a failure envelope and logs err, redacted.
//
// 5xx responses log at ERROR, 429 at WARN, other statuses at DEBUG unless
// WithElevatedLogLevel is given.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code string,
	message string,
	err error,
	opts ...ResponseOption,
) {
	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	env := Failed(r, code, message)
	env.Details = responseOpts.details

	logAttrs := []slog.Attr{
		slog.String("request_id", env.RequestID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", code),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, env)
}
