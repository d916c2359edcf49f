package mocks

import "github.com/taskboard/taskboard-api/internal/domain"

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed controls the default implementation
	ShouldSucceed bool
}

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return domain.ErrUnauthorized
}
