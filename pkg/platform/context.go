package platform

import "context"

var contextKey = &struct{ string }{"platform"}

// FromContext returns the platform client from a context.
func FromContext(ctx context.Context) Client {
	if c, ok := ctx.Value(contextKey).(Client); ok {
		return c
	}

	return nil
}

// WithContext returns a new context with the platform client attached.
func WithContext(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, contextKey, c)
}
