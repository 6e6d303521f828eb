package domain

import "context"

type sessionCtxKey struct{}

// ContextWithSession attaches the authenticated session to ctx. The data
// access layer uses it for its pre-network authentication check.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}

// SessionFromContext returns the session attached to ctx, or nil.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return sess
}
