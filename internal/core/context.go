package core

import "context"

type contextKey string

const ctxKeyUsername contextKey = "session_user"

// ContextWithUsername attaches the logged-in user's name for history
// recording. Anonymous requests simply never call this.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKeyUsername, username)
}

// UsernameFromContext extracts the logged-in user's name, empty when
// anonymous.
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUsername).(string); ok {
		return v
	}
	return ""
}
