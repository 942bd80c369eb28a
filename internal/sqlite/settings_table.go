// This file implements the settings table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

var _ types.Table = (*settingsTable)(nil)

// settingsTable implements the Table interface for persisted preferences.
// Settings are keyed by their name rather than a generated UUID.
type settingsTable struct {
	backend *Backend
}

// Get retrieves a setting by key. Returns ErrNotFound for a key that has
// never been written; the service layer maps well-known keys to defaults.
func (st *settingsTable) Get(key string) (any, error) {
	if key == "" {
		return nil, types.ErrInvalidID
	}

	row := st.backend.db.QueryRow(
		"SELECT key, value, updated_at FROM settings WHERE key = ?", key,
	)
	var s types.Setting
	var updatedAt string
	err := row.Scan(&s.Key, &s.Value, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting setting %s: %w", key, err)
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

// Set upserts a setting. The ID is the setting key; when id is empty the
// key on the record is used. Every write refreshes the update timestamp.
func (st *settingsTable) Set(id string, data any) (string, error) {
	s, ok := data.(*types.Setting)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = s.Key
	}
	if id == "" {
		return "", types.ErrInvalidID
	}
	s.Key = id
	s.UpdatedAt = time.Now().UTC()

	_, err := st.backend.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		id, s.Value, formatTime(s.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting setting: %w", err)
	}
	return id, nil
}

// Delete removes a setting. Idempotent: deleting an absent key succeeds.
func (st *settingsTable) Delete(key string) error {
	if key == "" {
		return types.ErrInvalidID
	}

	if _, err := st.backend.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting setting: %w", err)
	}
	return nil
}

// Clear removes every setting.
func (st *settingsTable) Clear() error {
	if _, err := st.backend.db.Exec("DELETE FROM settings"); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	return nil
}

// Fetch returns all settings ordered by key. No filter keys are recognized.
func (st *settingsTable) Fetch(filter types.Filter) ([]any, error) {
	rows, err := st.backend.db.Query("SELECT key, value, updated_at FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	var result []any
	for rows.Next() {
		var s types.Setting
		var updatedAt string
		if err := rows.Scan(&s.Key, &s.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating setting rows: %w", err)
	}
	return result, nil
}
