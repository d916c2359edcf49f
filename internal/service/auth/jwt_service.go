package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT bearer token carrying the user's
	// identity (ID, username, email). Returns the token string or an error
	// if token generation fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Validity is determined purely by signature and expiry; the
	// identity in the claims is not re-checked against storage, so a
	// username or email changed after issuance stays stale until re-login.
	// Returns an error if validation fails (expired, invalid signature,
	// malformed, wrong algorithm).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the identity extracted from a validated bearer token.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Username and Email are snapshots taken at issuance.
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
