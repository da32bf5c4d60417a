package database

import (
	"database/sql"
	"fmt"
	"time"

	"parley/models"
)

// UpsertOAuthUser creates a user for the given provider identity, or refreshes
// the mutable profile fields when the identity is already known. The first
// user ever created becomes the admin.
func UpsertOAuthUser(info models.OAuthUserInfo) (models.User, error) {
	now := time.Now().UTC()

	existing, err := GetUserByProviderID(info.Provider, info.ProviderUserID)
	if err == nil {
		_, err = DB.Exec(
			`UPDATE users SET username = ?, display_name = ?, email = ?, updated_at = ? WHERE id = ?`,
			info.Username, models.NullString(info.DisplayName), models.NullString(info.Email), now, existing.ID,
		)
		if err != nil {
			return models.User{}, fmt.Errorf("updating user %d: %w", existing.ID, err)
		}
		return GetUserByID(existing.ID)
	}
	if err != sql.ErrNoRows {
		return models.User{}, fmt.Errorf("looking up user %s/%s: %w", info.Provider, info.ProviderUserID, err)
	}

	userCount, err := CountUsers()
	if err != nil {
		return models.User{}, err
	}
	isAdmin := userCount == 0

	res, err := DB.Exec(
		`INSERT INTO users (username, display_name, email, provider, provider_user_id, is_admin, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.Username, models.NullString(info.DisplayName), models.NullString(info.Email),
		info.Provider, info.ProviderUserID, isAdmin, now, now,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("inserting user %s/%s: %w", info.Provider, info.ProviderUserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("reading new user id: %w", err)
	}
	return GetUserByID(id)
}

func GetUserByID(id int64) (models.User, error) {
	var u models.User
	err := DB.QueryRow(
		`SELECT id, username, display_name, email, provider, provider_user_id, is_admin, created_at, updated_at
         FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.Provider, &u.ProviderUserID, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func GetUserByProviderID(provider, providerUserID string) (models.User, error) {
	var u models.User
	err := DB.QueryRow(
		`SELECT id, username, display_name, email, provider, provider_user_id, is_admin, created_at, updated_at
         FROM users WHERE provider = ? AND provider_user_id = ?`, provider, providerUserID,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.Provider, &u.ProviderUserID, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func CountUsers() (int64, error) {
	var count int64
	if err := DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
