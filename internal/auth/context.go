package auth

import "context"

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const ContextKeyAdmin ContextKey = "admin"

// ContextWithAdmin marks the request context as authenticated for subject.
func ContextWithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, subject)
}

func AdminFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(ContextKeyAdmin).(string)
	return subject, ok && subject != ""
}
