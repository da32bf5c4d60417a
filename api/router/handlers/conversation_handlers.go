package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"parley/api/router/middleware"
	"parley/database"
	"parley/logger"
	"parley/models"

	"github.com/go-chi/chi/v5"
)

// createConversationPayload defines the expected structure for creating a conversation.
type createConversationPayload struct {
	Title string `json:"title"`
}

// renameConversationPayload defines the expected structure for renaming a conversation.
type renameConversationPayload struct {
	Title string `json:"title"`
}

// createMessagePayload defines the expected structure for appending a message.
type createMessagePayload struct {
	Content string `json:"content"`
}

// ownedConversation loads the conversation from the URL and verifies the
// caller owns it. Conversations owned by someone else read as not found so
// their existence is not disclosed. A zero-value conversation return means
// the response has already been written.
func ownedConversation(w http.ResponseWriter, r *http.Request) (models.Conversation, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return models.Conversation{}, false
	}

	conversationID := chi.URLParam(r, "conversationID")
	conversation, err := database.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "Conversation not found")
		} else {
			logger.Error("ownedConversation: Error fetching conversation %s: %v", conversationID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve conversation")
		}
		return models.Conversation{}, false
	}
	if conversation.UserID != user.ID {
		respondWithError(w, http.StatusNotFound, "Conversation not found")
		return models.Conversation{}, false
	}
	return conversation, true
}

// CreateConversationHandler handles POST requests to start a new conversation.
// @Summary Create a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param conversation_request body createConversationPayload true "Conversation creation request"
// @Success 201 {object} models.Conversation "Successfully created conversation"
// @Failure 400 {object} models.ErrorResponse "Invalid request payload"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /conversations [post]
func CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload createConversationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Error("CreateConversationHandler: Error decoding request body: %v", err)
		respondWithErrorDetails(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	defer r.Body.Close()

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = "New conversation"
	}

	conversation, err := database.CreateConversation(user.ID, title)
	if err != nil {
		logger.Error("CreateConversationHandler: Error creating conversation: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create conversation")
		return
	}
	respondWithJSON(w, http.StatusCreated, conversation)
	logger.Info("CreateConversationHandler: User %d created conversation %s", user.ID, conversation.ID)
}

// ListConversationsHandler handles GET requests to list the caller's conversations.
// @Summary List conversations
// @Tags Conversations
// @Produce json
// @Success 200 {array} models.Conversation "The caller's conversations, most recently updated first"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /conversations [get]
func ListConversationsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conversations, err := database.ListConversationsForUser(user.ID)
	if err != nil {
		logger.Error("ListConversationsHandler: Error listing conversations for user %d: %v", user.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve conversations")
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{} // Return empty array instead of null
	}
	respondWithJSON(w, http.StatusOK, conversations)
}

// GetConversationHandler handles GET requests for a single conversation.
// @Summary Get a conversation
// @Tags Conversations
// @Produce json
// @Param conversationID path string true "Conversation ID"
// @Success 200 {object} models.Conversation "The conversation"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Router /conversations/{conversationID} [get]
func GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversation, ok := ownedConversation(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, conversation)
}

// RenameConversationHandler handles PATCH requests to retitle a conversation.
// @Summary Rename a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param conversationID path string true "Conversation ID"
// @Param rename_request body renameConversationPayload true "New title"
// @Success 200 {object} models.Conversation "The updated conversation"
// @Failure 400 {object} models.ErrorResponse "Invalid request payload or empty title"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /conversations/{conversationID} [patch]
func RenameConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversation, ok := ownedConversation(w, r)
	if !ok {
		return
	}

	var payload renameConversationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithErrorDetails(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	defer r.Body.Close()

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		respondWithError(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	updated, err := database.UpdateConversationTitle(conversation.ID, title)
	if err != nil {
		logger.Error("RenameConversationHandler: Error renaming conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to rename conversation")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteConversationHandler handles DELETE requests to remove a conversation
// and all of its messages.
// @Summary Delete a conversation
// @Tags Conversations
// @Param conversationID path string true "Conversation ID"
// @Success 204 "Conversation deleted"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /conversations/{conversationID} [delete]
func DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversation, ok := ownedConversation(w, r)
	if !ok {
		return
	}

	if err := database.DeleteConversation(conversation.ID); err != nil {
		logger.Error("DeleteConversationHandler: Error deleting conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("DeleteConversationHandler: Deleted conversation %s", conversation.ID)
}

// GetMessagesHandler handles GET requests to list a conversation's messages.
// @Summary List messages
// @Description Retrieves a paginated list of a conversation's messages in chronological order.
// @Tags Conversations
// @Produce json
// @Param conversationID path string true "Conversation ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} models.PaginatedResponse "One page of messages"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /conversations/{conversationID}/messages [get]
func GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	conversation, ok := ownedConversation(w, r)
	if !ok {
		return
	}

	filters := models.MessageFilters{ConversationID: conversation.ID}
	filters.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if filters.Page <= 0 {
		filters.Page = 1
	}
	filters.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if filters.Limit <= 0 {
		filters.Limit = 50
	} else if filters.Limit > 200 {
		filters.Limit = 200
	}

	messages, total, err := database.GetMessagesPaginated(filters)
	if err != nil {
		logger.Error("GetMessagesHandler: Error fetching messages for conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(filters.Limit) - 1) / int64(filters.Limit))
	}
	respondWithJSON(w, http.StatusOK, models.PaginatedResponse{
		Page:         filters.Page,
		Limit:        filters.Limit,
		TotalRecords: total,
		TotalPages:   totalPages,
		Records:      messages,
	})
}

// CreateMessageHandler handles POST requests to append a user message without
// requesting an assistant reply.
// @Summary Append a message
// @Tags Conversations
// @Accept json
// @Produce json
// @Param conversationID path string true "Conversation ID"
// @Param message_request body createMessagePayload true "Message content"
// @Success 201 {object} models.Message "The appended message"
// @Failure 400 {object} models.ErrorResponse "Invalid request payload or empty content"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /conversations/{conversationID}/messages [post]
func CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	conversation, ok := ownedConversation(w, r)
	if !ok {
		return
	}

	var payload createMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithErrorDetails(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(payload.Content) == "" {
		respondWithError(w, http.StatusBadRequest, "content cannot be empty")
		return
	}

	message, err := database.CreateMessage(conversation.ID, models.RoleUser, payload.Content)
	if err != nil {
		logger.Error("CreateMessageHandler: Error appending message to conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to append message")
		return
	}
	respondWithJSON(w, http.StatusCreated, message)
}
