package httputil

import (
	"errors"
	"net/http"
	"strings"
)

const (
	PlayerIDHeader = "X-Player-Id"
	// query fallbacks for websocket upgrades, where browsers cannot set headers
	TokenQueryParam    = "token"
	PlayerIDQueryParam = "playerId"
)

// GetTokenFromRequest reads a bearer token from the Authorization header,
// falling back to the token query parameter.
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token), nil
		}
		return authHeader, nil
	}

	if token := r.URL.Query().Get(TokenQueryParam); token != "" {
		return token, nil
	}

	return "", errors.New("no auth token found in header or query")
}

// GetPlayerIDFromRequest reads the unauthenticated player id header, falling
// back to the playerId query parameter.
func GetPlayerIDFromRequest(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.Header.Get(PlayerIDHeader)); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(r.URL.Query().Get(PlayerIDQueryParam)); id != "" {
		return id, nil
	}
	return "", errors.New("no player id found in header or query")
}
