package handler

import (
	"encoding/json"
	"net/http"

	"orderdesk/internal/auth"
	"orderdesk/internal/model"

	"github.com/rs/zerolog"
)

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Authenticator issues and revokes dashboard sessions.
type Authenticator interface {
	Login(password string) (string, *auth.Session, error)
	Logout(token string) error
}

// AuthHandler handles dashboard login and logout.
type AuthHandler struct {
	sessions Authenticator
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions Authenticator, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/auth/login requests. The token is returned in the body
// and set as an HTTP-only cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	token, _, err := h.sessions.Login(req.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// Logout handles POST /api/auth/logout requests.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := h.sessions.Logout(auth.ExtractToken(r)); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}
