// Package requestctx carries request-scoped values that cross layer boundaries.
package requestctx

import "context"

type key int

const requestIDKey key = iota

// WithRequestID returns a copy of ctx holding the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "" when there is none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
