package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/linkboard/linkboard/internal/auth"
	"github.com/linkboard/linkboard/internal/metrics"
	"github.com/linkboard/linkboard/internal/store"
)

// authHandler serves the signup, login, and user operations.
type authHandler struct {
	creds *auth.CredentialManager
	users *store.UserStore
	log   *logrus.Logger
}

// Signup registers a new user and returns a token for the new identity.
// POST /api/signup
func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password, and name are required", "BAD_REQUEST")
		return
	}

	token, user, err := h.creds.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already registered", "DUPLICATE_EMAIL")
			return
		}
		h.log.WithError(err).WithField("email", req.Email).Error("signup failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.SignupsTotal.Inc()
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}

// Login verifies credentials and returns a token. Unknown email and wrong
// password are distinct inside the auth package but present identically
// here, so callers cannot enumerate registered addresses.
// POST /api/login
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	token, user, err := h.creds.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			writeError(w, http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
			return
		}
		h.log.WithError(err).WithField("email", req.Email).Error("login failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
}

// User returns the authenticated caller's record.
// GET /api/user
func (h *authHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found", "NOT_FOUND")
			return
		}
		h.log.WithError(err).Error("load user failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
