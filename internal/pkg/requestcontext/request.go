package requestcontext

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/logger"
)

// ContextKey type for context keys to avoid collisions
type ContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey ContextKey = "request_id"
	// UserIDKey is the context key for the authenticated guardian ID
	UserIDKey ContextKey = "user_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestID retrieves the request ID from context
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithUserID adds a user ID to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserID retrieves the user ID from context
func UserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// LogFields returns the request and user IDs carried by ctx as log fields,
// skipping the ones that are not set
func LogFields(ctx context.Context) []logger.Field {
	var fields []logger.Field
	if requestID := RequestID(ctx); requestID != "" {
		fields = append(fields, logger.String("request_id", requestID))
	}
	if userID := UserID(ctx); userID != "" {
		fields = append(fields, logger.String("user_id", userID))
	}
	return fields
}
