package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	emailKey  contextKey = "userEmail"
)

// WithUserID adds userID to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithUserEmail adds the authenticated user's email to the request context
func WithUserEmail(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), emailKey, email)
	return r.WithContext(ctx)
}

// GetUserEmail retrieves the authenticated user's email from context
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}
