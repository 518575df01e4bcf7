package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.storegate.dev/internal/common/health"
)

// RouterConfig carries the pieces the router mounts.
type RouterConfig struct {
	Auth        *AuthMiddleware
	AuthHandler *AuthHandler
	Staff       *StaffHandler
	CORSOrigins []string
	// Health aggregates backing-store checks. Nil means liveness only.
	Health *health.Checker
}

// NewRouter assembles the HTTP router: standard middleware stack, CORS,
// health and metrics endpoints, and the versioned API routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	checker := cfg.Health
	if checker == nil {
		checker = health.NewChecker()
	}
	r.Get("/health", checker.HandleHealth)
	r.Get("/health/live", checker.HandleLive)
	r.Get("/health/ready", checker.HandleReady)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(cfg.Auth.Authenticate)
		r.Use(ResolveLanguage)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/me", cfg.AuthHandler.Me)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})

		r.Route("/api/v1/stores/{storeId}/staff", func(r chi.Router) {
			r.Mount("/", cfg.Staff.Routes())
		})
	})

	return r
}
