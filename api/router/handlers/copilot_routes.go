package handlers

import (
	"parley/core"

	"github.com/go-chi/chi/v5"
)

// copilotClient is the shared upstream completion client, injected at router
// construction so tests can point it at a stub server.
var copilotClient *core.CopilotClient

// RegisterCopilotRoutes sets up the assistant completion endpoints.
// Both require a live session.
func RegisterCopilotRoutes(r chi.Router, client *core.CopilotClient) {
	copilotClient = client
	r.Post("/conversations/{conversationID}/copilot", CopilotCompletionHandler)
	r.Post("/conversations/{conversationID}/copilot/stream", CopilotStreamHandler)
}
