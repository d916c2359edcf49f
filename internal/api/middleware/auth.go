// Package middleware provides HTTP middleware for the API layer, including
// authentication, request tracing, and metrics collection.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/service/auth"
)

// AuthMiddleware is a middleware that validates JWT tokens in requests.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token on the request and stores the
// resulting claims in the request context for handlers downstream.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Expect the "Bearer <token>" scheme
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format, expected 'Bearer {token}'")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, message)
			return
		}

		ctx := shared.WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts the validated claims from the request context.
// The boolean reports whether the request passed authentication.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	return shared.ClaimsFromContext(r.Context())
}

// GetUserID extracts the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
