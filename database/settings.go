package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Setting keys used by the application.
const (
	SettingSetupComplete = "setup_complete"
	SettingInstanceName  = "instance_name"
)

// GetSetting returns the value for a settings key, or defaultValue when the
// key has never been written.
func GetSetting(key string, defaultValue string) (string, error) {
	var value string
	err := DB.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return defaultValue, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting writes a settings key, replacing any previous value.
func SetSetting(key, value string) error {
	_, err := DB.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}
