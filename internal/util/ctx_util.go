package util

import (
	"context"
	"net/http"

	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/model"
)

func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, session)
}

// GetSessionFromContext returns nil for anonymous requests.
func GetSessionFromContext(ctx context.Context) *model.Session {
	if v, ok := ctx.Value(constants.SessionKey).(*model.Session); ok {
		return v
	}
	return nil
}

func WithResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, constants.ResponseWriterKey, w)
}

func GetResponseWriterFromContext(ctx context.Context) http.ResponseWriter {
	if v, ok := ctx.Value(constants.ResponseWriterKey).(http.ResponseWriter); ok {
		return v
	}
	return nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}
