package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterHealthRoutes sets up the liveness endpoint.
func RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", HealthCheckHandler)
}

// HealthCheckHandler reports process liveness.
// @Summary Health check
// @Description Returns 200 when the server is up.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Server is healthy"
// @Router /health [get]
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
