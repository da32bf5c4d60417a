package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"parley/database"
	"parley/logger"
	"parley/models"
)

// streamChunk is one SSE frame of an in-progress assistant reply.
type streamChunk struct {
	Delta string `json:"delta"`
}

// streamFinal is the last SSE data frame before [DONE], carrying the
// persisted assistant message.
type streamFinal struct {
	Message models.Message `json:"message"`
}

// writeSSE writes one event to the stream and flushes it out.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) error {
	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return err
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// CopilotStreamHandler handles POST requests for a streamed assistant reply.
// Deltas are relayed as SSE data frames while the upstream produces them; the
// full reply is persisted once the stream ends. Failures after the stream has
// started are delivered as an `error` event carrying an ErrorResponse, since
// the 200 header is already on the wire.
// @Summary Stream an assistant reply
// @Description Appends the prompt and relays the assistant's reply as server-sent events, terminated by [DONE].
// @Tags Copilot
// @Accept json
// @Produce text/event-stream
// @Param conversationID path string true "Conversation ID"
// @Param copilot_request body copilotPayload true "Prompt content"
// @Success 200 {string} string "SSE stream of delta frames"
// @Failure 400 {object} models.ErrorResponse "Invalid request payload or empty content"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Failure 404 {object} models.ErrorResponse "Conversation not found"
// @Failure 502 {object} models.ErrorResponse "Upstream completion failure before streaming began"
// @Router /conversations/{conversationID}/copilot/stream [post]
func CopilotStreamHandler(w http.ResponseWriter, r *http.Request) {
	conversation, context, ok := prepareCompletion(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("CopilotStreamHandler: Response writer does not support flushing")
		respondWithError(w, http.StatusInternalServerError, "Streaming is not supported by this connection")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	started := false
	full, err := copilotClient.StreamCompletion(r.Context(), context, func(delta string) error {
		if !started {
			w.WriteHeader(http.StatusOK)
			started = true
		}
		return writeSSE(w, flusher, "", streamChunk{Delta: delta})
	})

	if err != nil {
		logger.Error("CopilotStreamHandler: Stream failed for conversation %s: %v", conversation.ID, err)
		if !started {
			// Nothing sent yet; fall back to a regular JSON error.
			w.Header().Del("Content-Type")
			status, message := upstreamStatus(err)
			respondWithErrorDetails(w, status, message, err.Error())
			return
		}
		errResp := models.NewErrorResponse("Assistant stream failed").WithDetails(err.Error())
		if werr := writeSSE(w, flusher, "error", errResp); werr != nil {
			logger.Error("CopilotStreamHandler: Could not deliver stream error: %v", werr)
		}
		// Keep whatever arrived before the failure so the conversation is not
		// silently missing a turn the client already rendered.
		if full != "" {
			if _, perr := database.CreateMessage(conversation.ID, models.RoleAssistant, full); perr != nil {
				logger.Error("CopilotStreamHandler: Error persisting partial reply for conversation %s: %v", conversation.ID, perr)
			}
		}
		return
	}

	message, err := database.CreateMessage(conversation.ID, models.RoleAssistant, full)
	if err != nil {
		logger.Error("CopilotStreamHandler: Error persisting reply for conversation %s: %v", conversation.ID, err)
		errResp := models.NewErrorResponse("Failed to persist assistant reply")
		_ = writeSSE(w, flusher, "error", errResp)
		return
	}

	if err := writeSSE(w, flusher, "", streamFinal{Message: message}); err != nil {
		logger.Error("CopilotStreamHandler: Error writing final frame: %v", err)
		return
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
	logger.Info("CopilotStreamHandler: Conversation %s streamed a %d-char reply", conversation.ID, len(full))
}
