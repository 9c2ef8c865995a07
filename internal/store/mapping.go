package store

import (
	"database/sql"
	"time"
)

// MappingOverride represents a user remapping of a built-in gesture
// stored in the database. Zone and GestureType use the string names
// produced by the gesture package; ActionKind uses the action package
// names.
type MappingOverride struct {
	Zone         string
	GestureType  string
	ActionKind   string
	ActionAmount float64
	UpdatedAt    time.Time
}

// MappingRepository provides CRUD operations for mapping overrides.
type MappingRepository struct {
	db *sql.DB
}

// Mappings returns the mapping override repository for this store.
func (s *Store) Mappings() *MappingRepository {
	return &MappingRepository{db: s.db}
}

// Upsert inserts or replaces the override for a zone and gesture type.
func (r *MappingRepository) Upsert(m *MappingOverride) error {
	m.UpdatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO mapping_overrides (zone, gesture_type, action_kind, action_amount, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(zone, gesture_type) DO UPDATE SET
		   action_kind = excluded.action_kind,
		   action_amount = excluded.action_amount,
		   updated_at = excluded.updated_at`,
		m.Zone, m.GestureType, m.ActionKind, m.ActionAmount, m.UpdatedAt,
	)
	return err
}

// List retrieves all mapping overrides from the database.
func (r *MappingRepository) List() ([]*MappingOverride, error) {
	rows, err := r.db.Query(
		`SELECT zone, gesture_type, action_kind, action_amount, updated_at
		 FROM mapping_overrides ORDER BY zone, gesture_type`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []*MappingOverride
	for rows.Next() {
		m := &MappingOverride{}
		err := rows.Scan(&m.Zone, &m.GestureType, &m.ActionKind, &m.ActionAmount, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, m)
	}
	return overrides, rows.Err()
}

// Delete removes the override for a zone and gesture type.
func (r *MappingRepository) Delete(zone, gestureType string) error {
	result, err := r.db.Exec(
		`DELETE FROM mapping_overrides WHERE zone = ? AND gesture_type = ?`,
		zone, gestureType,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll removes every mapping override, restoring the defaults.
func (r *MappingRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM mapping_overrides`)
	return err
}
