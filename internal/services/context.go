package services

import "context"

type contextKey string

const (
	videoIDKey   contextKey = "video_id"
	strategyKey  contextKey = "strategy"
	requestIDKey contextKey = "request_id"
)

// WithVideoID annotates context with the video being processed.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext returns the video identifier if present.
func VideoIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(videoIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStrategy annotates context with the acquisition strategy name.
func WithStrategy(ctx context.Context, strategy string) context.Context {
	if strategy == "" {
		return ctx
	}
	return context.WithValue(ctx, strategyKey, strategy)
}

// StrategyFromContext returns the strategy name if present.
func StrategyFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(strategyKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
