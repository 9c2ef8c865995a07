package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// SettingsRepository provides key-value access to application settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set inserts or replaces a setting.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetFloat retrieves a setting and parses it as a float64.
func (r *SettingsRepository) GetFloat(key string) (float64, error) {
	value, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

// SetFloat stores a float64 setting.
func (r *SettingsRepository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// Delete removes a setting by key.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}
