package handlers

import (
	"net/http"

	"parley/logger"

	_ "parley/api/docs" // Registers the generated OpenAPI document.

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

// RegisterOpenAPIRoutes sets up the OpenAPI document endpoint.
func RegisterOpenAPIRoutes(r chi.Router) {
	r.Get("/openapi/doc.json", OpenAPIDocHandler)
}

// OpenAPIDocHandler serves the generated OpenAPI document, including the
// ErrorResponse schema component.
// @Summary OpenAPI document
// @Tags OpenAPI
// @Produce json
// @Success 200 {string} string "The OpenAPI document"
// @Failure 500 {object} models.ErrorResponse "Document not available"
// @Router /openapi/doc.json [get]
func OpenAPIDocHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		logger.Error("OpenAPIDocHandler: Reading OpenAPI document failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "OpenAPI document not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
