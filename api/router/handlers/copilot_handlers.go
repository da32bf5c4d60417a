package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"parley/config"
	"parley/core"
	"parley/database"
	"parley/logger"
	"parley/models"
)

// copilotPayload defines the expected structure for requesting a completion.
type copilotPayload struct {
	Content string `json:"content"`
}

// prepareCompletion persists the user's prompt and assembles the upstream
// context window. A false return means the response has already been written.
func prepareCompletion(w http.ResponseWriter, r *http.Request) (models.Conversation, []core.ChatMessage, bool) {
	conversation, ok := ownedConversation(w, r)
	if !ok {
		return models.Conversation{}, nil, false
	}

	var payload copilotPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithErrorDetails(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return models.Conversation{}, nil, false
	}
	defer r.Body.Close()

	if strings.TrimSpace(payload.Content) == "" {
		respondWithError(w, http.StatusBadRequest, "content cannot be empty")
		return models.Conversation{}, nil, false
	}

	if _, err := database.CreateMessage(conversation.ID, models.RoleUser, payload.Content); err != nil {
		logger.Error("prepareCompletion: Error persisting prompt for conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to persist message")
		return models.Conversation{}, nil, false
	}

	window := config.AppConfig.Copilot.MaxContextMessages
	if window <= 0 {
		window = 40
	}
	recent, err := database.GetRecentMessages(conversation.ID, window)
	if err != nil {
		logger.Error("prepareCompletion: Error loading context for conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load conversation context")
		return models.Conversation{}, nil, false
	}

	context := make([]core.ChatMessage, 0, len(recent))
	for _, m := range recent {
		context = append(context, core.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return conversation, context, true
}

// upstreamStatus maps an upstream failure onto our own status code.
func upstreamStatus(err error) (int, string) {
	var ue *core.UpstreamError
	if errors.As(err, &ue) {
		if ue.StatusCode == http.StatusTooManyRequests {
			return http.StatusTooManyRequests, "Assistant is rate limited, try again shortly"
		}
		return http.StatusBadGateway, "Assistant request failed upstream"
	}
	return http.StatusBadGateway, "Assistant request failed"
}

// CopilotCompletionHandler handles POST requests for a synchronous assistant reply.
// @Summary Request an assistant reply
// @Description Appends the prompt as a user message, obtains a completion and returns the persisted assistant message.
// @Tags Copilot
// @Accept json
// @Produce json
// @Param conversationID path string true "Conversation ID"
// @Param copilot_request body copilotPayload true "Prompt content"
// @Success 200 {object} models.Message "The assistant's reply"
// @Failure 400 {object} models.ErrorResponse "Invalid request payload or empty content"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 429 {object} models.ErrorResponse "Upstream rate limit"
// @Failure 502 {object} models.ErrorResponse "Upstream completion failure"
// @Router /conversations/{conversationID}/copilot [post]
func CopilotCompletionHandler(w http.ResponseWriter, r *http.Request) {
	conversation, context, ok := prepareCompletion(w, r)
	if !ok {
		return
	}

	content, err := copilotClient.Complete(r.Context(), context)
	if err != nil {
		logger.Error("CopilotCompletionHandler: Completion failed for conversation %s: %v", conversation.ID, err)
		status, message := upstreamStatus(err)
		respondWithErrorDetails(w, status, message, err.Error())
		return
	}

	message, err := database.CreateMessage(conversation.ID, models.RoleAssistant, content)
	if err != nil {
		logger.Error("CopilotCompletionHandler: Error persisting reply for conversation %s: %v", conversation.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to persist assistant reply")
		return
	}
	respondWithJSON(w, http.StatusOK, message)
	logger.Info("CopilotCompletionHandler: Conversation %s got a %d-char reply", conversation.ID, len(content))
}
