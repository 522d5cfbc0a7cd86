// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, identifier generation and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey is the key under which the authenticated user's id is
	// stored by the auth middleware.
	UserIDCtxKey = contextKey("userID")

	// EmailCtxKey is the key under which the authenticated user's email is
	// stored by the auth middleware.
	EmailCtxKey = contextKey("email")
)

// WithUser returns a copy of ctx carrying the authenticated user's id and email.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, EmailCtxKey, email)
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// ok is false when the value is missing, empty or of an unexpected type.
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetEmailFromContext retrieves the authenticated user's email from ctx.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailCtxKey).(string)
	return email, ok
}
