package bot

import "context"

var contextKey = &struct{ string }{"bot"}

// FromContext returns the bot from a context.
func FromContext(ctx context.Context) *Bot {
	if b, ok := ctx.Value(contextKey).(*Bot); ok {
		return b
	}

	return nil
}

// WithContext returns a new context with the bot attached.
func WithContext(ctx context.Context, b *Bot) context.Context {
	return context.WithValue(ctx, contextKey, b)
}
