package router

import (
	"encoding/json"
	"net/http"

	m "github.com/ccfreem/sickfits/internal/api/middleware"
	"github.com/ccfreem/sickfits/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	GraphHandler  http.Handler
	Authenticator m.SessionAuthenticator
	Limiter       ratelimit.ILimiter
	// FrontendURL is the only origin allowed to send the session cookie cross site.
	FrontendURL string
}

func SetupRouter(server *Server, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{server.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", m.RequestIDHeader},
	})

	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)
	r.Use(c.Handler)

	r.Get("/healthz", healthz)

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.NewRateLimitMiddleware(server.Limiter))
		r.Use(m.SessionMiddleware(server.Authenticator))
		r.Post("/graphql", server.GraphHandler.ServeHTTP)
	})

	if logger.GetLevel() <= zerolog.DebugLevel {
		_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
			return nil
		})
	}
	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
