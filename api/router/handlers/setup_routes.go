package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterSetupRoutes sets up the first-run setup endpoints.
func RegisterSetupRoutes(r chi.Router) {
	r.Route("/setup", func(subRouter chi.Router) {
		subRouter.Get("/status", SetupStatusHandler)
		subRouter.Post("/complete", SetupCompleteHandler)
	})
}
