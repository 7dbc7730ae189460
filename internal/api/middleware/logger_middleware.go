package middleware

import (
	"net/http"
	"time"

	"github.com/ccfreem/sickfits/internal/util"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// LoggerMiddleware attaches a request scoped logger to the context and logs every completed request.
// Run it after RequestIdMiddleware.
func LoggerMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{ResponseWriter: w}

			reqLogger := logger.With().Str("request_id", util.GetRequestIDFromContext(r.Context())).Logger()
			ctx := reqLogger.WithContext(r.Context())

			next.ServeHTTP(recoder, r.WithContext(ctx))

			// inner middleware may have added fields, e.g. user_id
			zerolog.Ctx(ctx).Info().
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote_addr", r.RemoteAddr).
				Int("status", recoder.Status()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
