// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/palaestra/internal/auth"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
	"github.com/tomtom215/palaestra/internal/store"
)

// This file contains the authentication endpoints that back the login and
// registration practice pages. Tokens are issued in every auth mode: the
// login form must work as an exercise even when enforcement is switched off
// (auth_mode=none), so only RequireAuth consults the mode.

// Login handles user authentication requests
//
// @Summary Authenticate user
// @Description Authenticates user with email and password, returns JWT token in response body and HTTP-only cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse} "Authentication successful"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Invalid credentials"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := h.parseAndValidateLoginRequest(w, r)
	if req == nil {
		return
	}

	if h.jwtManager == nil {
		respondError(w, http.StatusInternalServerError, "AUTH_NOT_CONFIGURED", "JWT manager not initialized", nil)
		return
	}

	user, err := h.store.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password are deliberately indistinguishable
		metrics.RecordLogin("invalid_credentials")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	metrics.RecordLogin("success")
	h.issueSession(w, r, user, req.RememberMe, http.StatusOK)
}

// parseAndValidateLoginRequest parses and validates the login request body.
// A nil return means the error response was already written.
func (h *Handler) parseAndValidateLoginRequest(w http.ResponseWriter, r *http.Request) *models.LoginRequest {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return nil
	}

	validationReq := LoginRequestValidation{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return nil
	}

	return &req
}

// Register handles self-service account creation
//
// @Summary Register a new account
// @Description Creates a user account with the "user" role and logs it in immediately
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body models.RegisterRequest true "Account details"
// @Success 201 {object} models.APIResponse{data=models.LoginResponse} "Account created and logged in"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 409 {object} models.APIResponse "Email or username already taken"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := RegisterRequestValidation{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if h.jwtManager == nil {
		respondError(w, http.StatusInternalServerError, "AUTH_NOT_CONFIGURED", "JWT manager not initialized", nil)
		return
	}

	user, err := h.store.Users.Create(models.CreateUserRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			respondError(w, http.StatusConflict, "EMAIL_EXISTS", "Email is already registered", nil)
		case errors.Is(err, store.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "USERNAME_EXISTS", "Username is already taken", nil)
		default:
			respondError(w, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to create account", err)
		}
		return
	}

	metrics.AuthRegistrations.Inc()
	logging.Info().
		Str("username", sanitizeLogValue(user.Username)).
		Str("user_id", user.ID.String()).
		Msg("Account registered")

	h.issueSession(w, r, user, false, http.StatusCreated)
}

// issueSession generates a token for an authenticated account, sets the
// session cookie, and writes the login response.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, user models.User, rememberMe bool, status int) {
	token, expiresAt, err := h.jwtManager.GenerateToken(user, rememberMe)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TOKEN_GENERATION_FAILED", "Failed to generate authentication token", err)
		return
	}

	h.setAuthCookie(w, r, token, expiresAt)

	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data: models.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      user,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// setAuthCookie sets the authentication cookie. SameSite is Lax rather than
// Strict because the practice UI is served from a different dev-server origin
// than the API during local runs.
func (h *Handler) setAuthCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// Logout clears the session cookie
//
// @Summary Log out
// @Description Clears the session cookie. Succeeds whether or not a session exists.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse "Logged out"
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"message": "Logged out"},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Profile returns the account behind the current session
//
// @Summary Get current user profile
// @Description Returns the account for the current session token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.User} "Current account"
// @Failure 401 {object} models.APIResponse "No valid session"
// @Router /auth/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := h.sessionClaims(r)
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "No valid session", nil)
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session subject", err)
		return
	}

	user, err := h.store.Users.GetByID(userID)
	if err != nil {
		// Token outlived the account (deleted or reset since login)
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   user,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// sessionClaims resolves the claims for the request. With enforcement on,
// RequireAuth already validated the token and stored the claims. With
// auth_mode=none the middleware passes requests through untouched, so the
// token (if any) is validated here directly; login still issues tokens in
// that mode and the profile page should keep working with them.
func (h *Handler) sessionClaims(r *http.Request) *auth.Claims {
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		return claims
	}

	if h.jwtManager == nil {
		return nil
	}

	token, err := auth.TokenFromRequest(r)
	if err != nil {
		return nil
	}

	claims, err := h.jwtManager.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}
