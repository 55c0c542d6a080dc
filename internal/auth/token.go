package auth

import (
	"net/http"
	"strings"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

// ExtractToken reads the session token from the cookie, falling back to a Bearer header.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
