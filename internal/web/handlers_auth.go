package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rolandschnurr/dfq-converter/internal/core"
	"github.com/rolandschnurr/dfq-converter/internal/store"
)

var (
	errAccountsDisabled   = errors.New("accounts are not available: no database configured")
	errRegistrationClosed = errors.New("registration is closed")
	errInvalidCredentials = errors.New("invalid credentials")
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// requireStore rejects account requests when no database is wired.
func (s *Server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if !s.service.Store().Enabled() {
		s.respondError(w, r, errAccountsDisabled, http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleRegister creates a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	if !s.cfg.Security.RegistrationOpen {
		s.respondError(w, r, errRegistrationClosed, http.StatusForbidden)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		s.respondError(w, r, errors.New("username, email and a password of at least 8 characters are required"), http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	user, err := s.service.Store().CreateUser(r.Context(), req.Username, req.Email, string(hash))
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}

	token := s.sessions.create(user.Username)
	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, user)
}

// handleLogin verifies credentials and issues a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	user, err := s.service.Store().GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		// Same response for unknown user and wrong password.
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, r, errInvalidCredentials, http.StatusUnauthorized)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !user.IsActive {
		s.respondError(w, r, errInvalidCredentials, http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.respondError(w, r, errInvalidCredentials, http.StatusUnauthorized)
		return
	}

	if err := s.service.Store().TouchLastLogin(r.Context(), user.ID); err != nil {
		// The timestamp is bookkeeping; login still succeeds.
		slog.Warn("touch last login failed", "user", user.Username, "error", err)
	}

	token := s.sessions.create(user.Username)
	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, user)
}

// handleLogout revokes the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.revoke(cookie.Value)
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe reports the logged-in user, if any.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	username := core.UsernameFromContext(r.Context())
	if username == "" {
		s.respondError(w, r, errInvalidCredentials, http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": username})
}
