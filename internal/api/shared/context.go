package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
)

// ContextKey is the type of keys stored in a request context by this package.
type ContextKey string

// Context keys for various values
const (
	// UserIDContextKey is the context key for the caller's user ID.
	UserIDContextKey ContextKey = "userID"

	// RequestIDKey is the context key for the request correlation ID.
	RequestIDKey ContextKey = "requestID"

	// requestIDRandomBytes is the number of random bytes in a request ID.
	requestIDRandomBytes = 8
)

// NewRequestID returns a best-effort correlation token of the form
// req_<16 hex chars>_<unix millis>. It is meant for tracing a response back
// to its log lines and carries no uniqueness guarantee.
func NewRequestID() string {
	return newRequestID(time.Now())
}

func newRequestID(now time.Time) string {
	b := make([]byte, requestIDRandomBytes)
	n, err := rand.Read(b)
	if err != nil || n != requestIDRandomBytes {
		slog.Error("failed to generate random request ID",
			"error", err,
			"bytes_read", n,
			"fallback", "time-based generation")
		binary.BigEndian.PutUint64(b, uint64(now.UnixNano()))
	}
	return fmt.Sprintf("req_%s_%d", hex.EncodeToString(b), now.UnixMilli())
}

// SetRequestID stores a fresh request ID in the context.
func SetRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RequestIDKey, NewRequestID())
}

// GetRequestID retrieves the request ID from the context.
// If no request ID exists, it returns an empty string.
func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return requestID
}

// RequestIDOrNew returns the request ID stored in ctx, generating one when
// the request did not pass through the trace middleware.
func RequestIDOrNew(ctx context.Context) string {
	if id := GetRequestID(ctx); id != "" {
		return id
	}
	return NewRequestID()
}

// EnsureRequestID returns ctx unchanged when it already carries a request ID,
// otherwise a child context holding a fresh one. The ID is returned as well.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := GetRequestID(ctx); id != "" {
		return ctx, id
	}
	id := NewRequestID()
	return context.WithValue(ctx, RequestIDKey, id), id
}

// WithUserID stores the authenticated caller's user ID in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserID returns the caller's user ID and whether a non-empty one was set.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
