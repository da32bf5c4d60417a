package database

import (
	"fmt"
	"time"

	"parley/models"

	"github.com/google/uuid"
)

func CreateConversation(userID int64, title string) (models.Conversation, error) {
	now := time.Now().UTC()
	c := models.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := DB.Exec(
		`INSERT INTO conversations (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("inserting conversation for user %d: %w", userID, err)
	}
	return c, nil
}

func GetConversationByID(id string) (models.Conversation, error) {
	var c models.Conversation
	err := DB.QueryRow(
		`SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE id = ?`, id,
	).Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Conversation{}, err
	}
	return c, nil
}

// ListConversationsForUser returns the user's conversations, most recently
// updated first.
func ListConversationsForUser(userID int64) ([]models.Conversation, error) {
	rows, err := DB.Query(
		`SELECT id, user_id, title, created_at, updated_at FROM conversations
         WHERE user_id = ? ORDER BY updated_at DESC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying conversations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation row: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversation rows: %w", err)
	}
	return conversations, nil
}

func UpdateConversationTitle(id string, title string) (models.Conversation, error) {
	_, err := DB.Exec(
		`UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC(), id,
	)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("updating conversation %s: %w", id, err)
	}
	return GetConversationByID(id)
}

// TouchConversation bumps updated_at, used when a message is appended.
func TouchConversation(id string) error {
	if _, err := DB.Exec(`UPDATE conversations SET updated_at = ? WHERE id = ?`, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("touching conversation %s: %w", id, err)
	}
	return nil
}

// DeleteConversation removes a conversation; messages go with it via the
// foreign key cascade.
func DeleteConversation(id string) error {
	if _, err := DB.Exec(`DELETE FROM conversations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting conversation %s: %w", id, err)
	}
	return nil
}
