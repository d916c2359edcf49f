package mocks

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, user *domain.User) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Token is returned by the default GenerateToken implementation
	Token string
	// Claims are returned by the default ValidateToken implementation
	Claims *auth.Claims
	// Err, when set, is returned by both default implementations
	Err error
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, user)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "test-token", nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return nil, auth.ErrInvalidToken
}
