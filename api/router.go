package api

import (
	"encoding/json"
	"net/http"

	"parley/api/router/handlers"
	"parley/api/router/middleware"
	"parley/config"
	"parley/core"
	"parley/logger"
	"parley/models"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the API router. All registered paths are
// relative to the /api base path. Route groups are additive; registration
// order does not matter.
func NewRouter() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RateLimiter(config.AppConfig.RateLimit.RequestsPerSecond, config.AppConfig.RateLimit.Burst))

	// Public route groups.
	handlers.RegisterHealthRoutes(router)
	handlers.RegisterAuthRoutes(router)
	handlers.RegisterSetupRoutes(router)
	handlers.RegisterOpenAPIRoutes(router)

	// Protected route groups.
	copilotClient := core.NewCopilotClient(&config.AppConfig)
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireSession)
		handlers.RegisterProtectedRoutes(protected)
		handlers.RegisterConversationRoutes(protected)
		handlers.RegisterCopilotRoutes(protected, copilotClient)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("API router: Unhandled route: %s %s", r.Method, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.NewErrorResponse("Not found"))
	})

	return router
}
