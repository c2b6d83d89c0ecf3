package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/redact"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service/auth"
)

// Response values for rejected callers.
const (
	CodeUnauthorized     = "unauthorized"
	MessageForbidden     = "Forbidden: User not authenticated"
	MessageAuthFailed    = "Unauthorized: Failed Authentication"
	codeAuthServiceError = "auth-failed"
)

// AuthMiddleware resolves the caller's identity from a bearer token.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the Authorization header and stores the caller's
// user ID in the request context. Requests without a valid token are
// answered 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusForbidden, CodeUnauthorized, MessageForbidden)
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrExpiredToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, CodeUnauthorized, MessageForbidden, err)
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					codeAuthServiceError, MessageAuthFailed, err)
			}
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		log := logger.FromContext(ctx).With(slog.String("user_id", claims.UserID))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
