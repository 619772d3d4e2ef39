package ctxutil

import (
	"context"
)

type ctxKey string

const (
	subjectKey   ctxKey = "subject"
	requestIDKey ctxKey = "request_id"
	identityKey  ctxKey = "identity"
)

// WithSubject stores the authenticated dashboard subject in the context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromCtx extracts the dashboard subject from the context.
// Returns "" and false if absent or empty.
func SubjectFromCtx(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithIdentity stores the canonical chat identity a turn is serving.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromCtx extracts the chat identity. Returns "" if absent.
func IdentityFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(identityKey).(string)
	return id
}
