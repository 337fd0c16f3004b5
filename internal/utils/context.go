// Package utils provides small helpers shared by the server and the client:
// typed context keys, JSON response writing, client IP extraction, the
// resty HTTP client and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// SecretKeyCtxKey stores the authenticated secret key of a sync request.
// The key doubles as the storage partition key.
var SecretKeyCtxKey = contextKey("secretKey")

// WithSecretKey returns a copy of ctx carrying secretKey.
func WithSecretKey(ctx context.Context, secretKey string) context.Context {
	return context.WithValue(ctx, SecretKeyCtxKey, secretKey)
}

// GetSecretKeyFromContext returns the secret key stored by the auth
// middleware. ok is false when it is missing or empty.
func GetSecretKeyFromContext(ctx context.Context) (string, bool) {
	secretKey, ok := ctx.Value(SecretKeyCtxKey).(string)
	return secretKey, ok && secretKey != ""
}
