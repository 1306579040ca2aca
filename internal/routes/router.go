package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"iwannabeavolunteer/portal/internal/api"
	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/middleware"
)

// RegisterRoutes builds the HTTP handler tree. metricsHandler serves /metrics.
func RegisterRoutes(deps *api.Dependencies, metricsHandler http.Handler) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware; security headers first so they land on every response
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	if deps.Config.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	handlers := api.NewHandlers(deps)
	limiter := middleware.NewRateLimiter(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst)

	r.Get("/healthCheck", handlers.HealthCheck())
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(limiter.Middleware)

		apiRouter.Post("/wheel", handlers.Wheel())

		// Superuser-only admin account management
		apiRouter.Group(func(admin chi.Router) {
			admin.Use(middleware.AuthMiddleware(deps.Services.Verifier))

			authz := deps.Services.Authorizer
			admin.With(middleware.RequireSuperuser(authz, constants.ActionCreate)).Post("/create-admin", handlers.CreateAdmin())
			admin.With(middleware.RequireSuperuser(authz, constants.ActionDelete)).Post("/delete-admin", handlers.DeleteAdmin())
			admin.With(middleware.RequireSuperuser(authz, constants.ActionList)).Get("/list-admins", handlers.ListAdmins())
		})
	})

	r.Route("/admin", func(adminArea chi.Router) {
		adminArea.Use(limiter.Middleware)
		adminArea.Post("/login", handlers.Login())
	})

	logging.Info("Router initialized",
		"cors_origins", deps.Config.CORSAllowedOrigins,
		"trust_proxy_headers", deps.Config.TrustProxyHeaders,
	)
	return r
}
