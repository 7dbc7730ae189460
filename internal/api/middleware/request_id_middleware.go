package middleware

import (
	"net/http"

	"github.com/ccfreem/sickfits/internal/util"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIdMiddleware reuses the caller's request id when it sends one.
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIDHeader)
		if requestId == "" || len(requestId) > 64 {
			requestId = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestId)

		next.ServeHTTP(w, r.WithContext(util.WithRequestID(r.Context(), requestId)))
	})
}
