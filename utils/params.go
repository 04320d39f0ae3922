package utils

import (
	"net/http"
	"strconv"
	"strings"

	"joblane/globals"
)

// GetUserIDFromRequest reads the user id placed in the context by the auth
// middleware; empty when the request is anonymous.
func GetUserIDFromRequest(r *http.Request) string {
	if v, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		return v
	}
	return ""
}

// GetTokenFromRequest returns the bearer access token, stripped of its
// "Bearer " prefix, or "" when absent.
func GetTokenFromRequest(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return h[7:]
	}
	return ""
}

// ParseLimit reads a ?limit= query parameter, clamped to max.
func ParseLimit(r *http.Request, def, max int) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
