package transport

import (
	"context"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID pins the correlation id sent with every request made under ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func RequestIDOrNew(ctx context.Context) string {
	if id := RequestID(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
