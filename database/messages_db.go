package database

import (
	"fmt"
	"time"

	"parley/models"

	"github.com/google/uuid"
)

func CreateMessage(conversationID, role, content string) (models.Message, error) {
	m := models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := DB.Exec(
		`INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, m.Role, m.Content, m.CreatedAt,
	)
	if err != nil {
		return models.Message{}, fmt.Errorf("inserting message into conversation %s: %w", conversationID, err)
	}
	if err := TouchConversation(conversationID); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// GetMessagesPaginated returns one page of a conversation's messages in
// chronological order, plus the total message count.
func GetMessagesPaginated(filters models.MessageFilters) ([]models.Message, int64, error) {
	var totalRecords int64
	err := DB.QueryRow(`SELECT COUNT(*) FROM messages WHERE conversation_id = ?`, filters.ConversationID).Scan(&totalRecords)
	if err != nil {
		return nil, 0, fmt.Errorf("counting messages for conversation %s: %w", filters.ConversationID, err)
	}

	var messages []models.Message
	if totalRecords == 0 {
		return messages, 0, nil
	}

	offset := (filters.Page - 1) * filters.Limit
	rows, err := DB.Query(
		`SELECT id, conversation_id, role, content, created_at FROM messages
         WHERE conversation_id = ?
         ORDER BY created_at ASC, id ASC
         LIMIT ? OFFSET ?`,
		filters.ConversationID, filters.Limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying messages for conversation %s: %w", filters.ConversationID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating message rows: %w", err)
	}
	return messages, totalRecords, nil
}

// GetRecentMessages returns the newest `limit` messages of a conversation in
// chronological order. Used to build the upstream completion context.
func GetRecentMessages(conversationID string, limit int) ([]models.Message, error) {
	rows, err := DB.Query(
		`SELECT id, conversation_id, role, content, created_at FROM (
             SELECT id, conversation_id, role, content, created_at FROM messages
             WHERE conversation_id = ?
             ORDER BY created_at DESC, id DESC
             LIMIT ?
         ) ORDER BY created_at ASC, id ASC`,
		conversationID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent messages for conversation %s: %w", conversationID, err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning recent message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent message rows: %w", err)
	}
	return messages, nil
}
