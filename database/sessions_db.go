package database

import (
	"fmt"
	"time"

	"parley/models"

	"github.com/google/uuid"
)

// CreateSession issues an opaque session token for the user.
func CreateSession(userID int64, ttl time.Duration) (models.Session, error) {
	s := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	s.ExpiresAt = s.CreatedAt.Add(ttl)

	_, err := DB.Exec(
		`INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		s.Token, s.UserID, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("inserting session for user %d: %w", userID, err)
	}
	return s, nil
}

// GetSessionByToken returns the session for the token. Expired sessions are
// treated as missing (sql.ErrNoRows).
func GetSessionByToken(token string) (models.Session, error) {
	var s models.Session
	err := DB.QueryRow(
		`SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ? AND expires_at > ?`,
		token, time.Now().UTC(),
	).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func DeleteSession(token string) error {
	if _, err := DB.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry. Returns the number
// of rows removed.
func DeleteExpiredSessions() (int64, error) {
	res, err := DB.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
