package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterConversationRoutes sets up the conversation and message endpoints.
// All of them require a live session.
func RegisterConversationRoutes(r chi.Router) {
	r.Route("/conversations", func(subRouter chi.Router) {
		subRouter.Get("/", ListConversationsHandler)
		subRouter.Post("/", CreateConversationHandler)
	})

	r.Route("/conversations/{conversationID}", func(subRouter chi.Router) {
		subRouter.Get("/", GetConversationHandler)
		subRouter.Patch("/", RenameConversationHandler)
		subRouter.Delete("/", DeleteConversationHandler)
		subRouter.Get("/messages", GetMessagesHandler)
		subRouter.Post("/messages", CreateMessageHandler)
	})
}
