package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/store"
)

// AuthHandler handles authentication and profile API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	// Parse request
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Create user
	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	// Store user
	if err := h.userStore.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			RespondWithError(w, r, http.StatusConflict, "Email already in use")
		case errors.Is(err, store.ErrUsernameExists):
			RespondWithError(w, r, http.StatusConflict, "Username already taken")
		default:
			RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		}
		return
	}

	// Generate token
	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:  user,
		Token: token,
	})
}

// Login handles the /auth/login endpoint.
//
// An unknown email and a wrong password produce byte-identical 401 responses
// so the endpoint cannot be used to probe which emails are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	// Parse request
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Get user by email
	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	// Verify password using the injected verifier
	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	// Generate token
	token, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  user,
		Token: token,
	})
}

// Logout handles the /auth/logout endpoint. Tokens are stateless, so there is
// nothing to revoke server-side; the client discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// GetProfile handles GET /auth/profile, returning the authenticated user.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Valid token for a user that no longer exists
			RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateProfile handles PATCH /auth/profile, updating username and/or avatar.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			RespondWithError(w, r, http.StatusConflict, "Username already taken")
		case errors.Is(err, store.ErrUserNotFound):
			RespondWithError(w, r, http.StatusNotFound, "User not found")
		default:
			RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update profile", err)
		}
		return
	}

	slog.Debug("profile updated", "user_id", userID)
	RespondWithJSON(w, r, http.StatusOK, user)
}
