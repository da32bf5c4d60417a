package handlers

import (
	"encoding/json"
	"net/http"

	"parley/logger"
	"parley/models"
)

// respondWithJSON writes payload as the JSON response body.
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("respondWithJSON: Error encoding response: %v", err)
	}
}

// respondWithError writes a models.ErrorResponse with no details.
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, models.NewErrorResponse(message))
}

// respondWithErrorDetails writes a models.ErrorResponse carrying diagnostic
// details. Only pass details that are safe to disclose to API consumers.
func respondWithErrorDetails(w http.ResponseWriter, status int, message, details string) {
	respondWithJSON(w, status, models.NewErrorResponse(message).WithDetails(details))
}
