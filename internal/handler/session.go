package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin authenticates the admin and issues a bearer token. A rejected
// login is reported once; there is no retry or lockout logic.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.provider.Authenticate(req.Email, req.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("Login rejected")
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token := h.sessions.Issue(req.Email)
	log.Info().Str("email", req.Email).Msg("Admin logged in")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleLogout revokes the current session token.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Revoke(bearerToken(r))
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
