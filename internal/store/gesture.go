package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// GesturePoint is one sampled point of a recorded gesture path.
type GesturePoint struct {
	Sequence    int
	X           float64
	Y           float64
	TimestampMs int64
}

// CustomGesture represents a user-recorded gesture stored in the
// database, together with its bound action.
type CustomGesture struct {
	ID           string
	Name         string
	ActionKind   string
	ActionAmount float64
	Tolerance    float64
	Points       []GesturePoint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GestureRepository provides CRUD operations for custom gestures.
type GestureRepository struct {
	db *sql.DB
}

// Gestures returns the custom gesture repository for this store.
func (s *Store) Gestures() *GestureRepository {
	return &GestureRepository{db: s.db}
}

// Create inserts a new custom gesture and its path points in a single
// transaction.
func (r *GestureRepository) Create(g *CustomGesture) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO custom_gestures (id, name, action_kind, action_amount, tolerance, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.ActionKind, g.ActionAmount, g.Tolerance, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertPoints(tx, g.ID, g.Points); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a custom gesture with its path points by ID.
func (r *GestureRepository) GetByID(id string) (*CustomGesture, error) {
	g, err := r.scanOne(`SELECT id, name, action_kind, action_amount, tolerance, created_at, updated_at
		 FROM custom_gestures WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}

	g.Points, err = r.points(g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetByName retrieves a custom gesture with its path points by name.
func (r *GestureRepository) GetByName(name string) (*CustomGesture, error) {
	g, err := r.scanOne(`SELECT id, name, action_kind, action_amount, tolerance, created_at, updated_at
		 FROM custom_gestures WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}

	g.Points, err = r.points(g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// List retrieves all custom gestures, including their path points.
func (r *GestureRepository) List() ([]*CustomGesture, error) {
	rows, err := r.db.Query(
		`SELECT id, name, action_kind, action_amount, tolerance, created_at, updated_at
		 FROM custom_gestures ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gestures []*CustomGesture
	for rows.Next() {
		g := &CustomGesture{}
		err := rows.Scan(&g.ID, &g.Name, &g.ActionKind, &g.ActionAmount, &g.Tolerance, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		gestures = append(gestures, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range gestures {
		g.Points, err = r.points(g.ID)
		if err != nil {
			return nil, err
		}
	}

	return gestures, nil
}

// Update updates a gesture's metadata and binding. Use ReplacePoints
// to change the recorded shape.
func (r *GestureRepository) Update(g *CustomGesture) error {
	g.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE custom_gestures SET name = ?, action_kind = ?, action_amount = ?, tolerance = ?, updated_at = ?
		 WHERE id = ?`,
		g.Name, g.ActionKind, g.ActionAmount, g.Tolerance, g.UpdatedAt, g.ID,
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

// ReplacePoints swaps a gesture's recorded path for a new one, for
// example after retraining from additional samples. The swap runs in
// a single transaction.
func (r *GestureRepository) ReplacePoints(gestureID string, points []GesturePoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE custom_gestures SET updated_at = ? WHERE id = ?`,
		time.Now(), gestureID,
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

	if _, err := tx.Exec(`DELETE FROM gesture_points WHERE gesture_id = ?`, gestureID); err != nil {
		return err
	}
	if err := insertPoints(tx, gestureID, points); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a custom gesture by its ID. Path points cascade.
func (r *GestureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM custom_gestures WHERE id = ?`, id)
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

func (r *GestureRepository) scanOne(query string, arg any) (*CustomGesture, error) {
	g := &CustomGesture{}
	err := r.db.QueryRow(query, arg).Scan(
		&g.ID, &g.Name, &g.ActionKind, &g.ActionAmount, &g.Tolerance, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *GestureRepository) points(gestureID string) ([]GesturePoint, error) {
	rows, err := r.db.Query(
		`SELECT sequence, x, y, timestamp_ms FROM gesture_points
		 WHERE gesture_id = ? ORDER BY sequence`,
		gestureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []GesturePoint
	for rows.Next() {
		var p GesturePoint
		if err := rows.Scan(&p.Sequence, &p.X, &p.Y, &p.TimestampMs); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func insertPoints(tx *sql.Tx, gestureID string, points []GesturePoint) error {
	stmt, err := tx.Prepare(
		`INSERT INTO gesture_points (gesture_id, sequence, x, y, timestamp_ms)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range points {
		if _, err := stmt.Exec(gestureID, i, p.X, p.Y, p.TimestampMs); err != nil {
			return fmt.Errorf("failed to insert point %d: %w", i, err)
		}
	}
	return nil
}
