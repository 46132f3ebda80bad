package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"sesaco/pkg/requestcontext"
)

// JWTValidator defines the interface for validating access tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims the middleware needs from a validated token.
type JWTClaims struct {
	InspectorID string
	SessionID   string
}

// SessionChecker reports whether a session is still live. A revoked or
// expired session makes an otherwise valid JWT unusable.
type SessionChecker interface {
	IsLive(ctx context.Context, sessionID string) bool
}

// RequireAuth validates the bearer token and injects inspector and session
// IDs into the request context. Requests without a valid token get 401.
func RequireAuth(validator JWTValidator, sessions SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized - invalid token",
					"request_id", requestID,
					"error", err,
				)
				unauthorized(w)
				return
			}

			if sessions != nil && !sessions.IsLive(ctx, claims.SessionID) {
				logger.WarnContext(ctx, "unauthorized - session revoked",
					"request_id", requestID,
					"session_id", claims.SessionID,
				)
				unauthorized(w)
				return
			}

			ctx = requestcontext.WithInspectorID(ctx, claims.InspectorID)
			ctx = requestcontext.WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
