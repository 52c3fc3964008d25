package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vikrin/workflow/internal/api/auth"
	"github.com/vikrin/workflow/internal/api/clients"
	"github.com/vikrin/workflow/internal/api/dashboard"
	"github.com/vikrin/workflow/internal/api/middleware"
	"github.com/vikrin/workflow/internal/api/projects"
	"github.com/vikrin/workflow/internal/api/status"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	jwtService := auth.NewJWTService(s.config.JWTSecret, s.config.AccessTokenTTL)

	// Login attempts are rate limited per IP.
	ipLimiter := middleware.NewRateLimiter(s.config.RateLimitPerIP, s.config.RateLimitPerIP)

	// Global middleware
	r.Use(middleware.CORS(s.config.AllowedOrigin))
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.Recoverer)
	r.Use(middleware.PrometheusMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authHandler := auth.NewHandler(s.storage, jwtService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(ipLimiter))
		r.Post("/auth/login", authHandler.Login)
	})

	clientHandler := clients.NewHandler(s.storage)
	projectHandler := projects.NewHandler(s.storage)
	statusHandler := status.NewHandler(s.storage)
	dashboardHandler := dashboard.NewHandler(s.storage)

	// Data routes. Token enforcement is opt-in so the legacy frontend,
	// which never sends Authorization headers, keeps working.
	r.Group(func(r chi.Router) {
		if s.config.RequireToken {
			r.Use(middleware.JWTAuth(jwtService))
		}

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.List)
			r.Post("/", clientHandler.Create)
			r.Put("/", clientHandler.Update)
			r.Delete("/", clientHandler.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Put("/", projectHandler.Update)
			r.Delete("/", projectHandler.Delete)
		})

		r.Route("/status", func(r chi.Router) {
			r.Get("/", statusHandler.List)
			r.Post("/", statusHandler.Create)
		})

		r.Get("/dashboard/stats", dashboardHandler.Stats)
	})

	// Health checks (public, no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		OK(w, map[string]string{"status": "ok"})
	})
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	return r
}
