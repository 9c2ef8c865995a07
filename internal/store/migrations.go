package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Custom gestures table - stores user-recorded gesture definitions
		`CREATE TABLE IF NOT EXISTS custom_gestures (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			action_kind TEXT NOT NULL DEFAULT 'none',
			action_amount REAL NOT NULL DEFAULT 0,
			tolerance REAL NOT NULL DEFAULT 0.25,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Gesture points table - stores the recorded touch path per gesture
		`CREATE TABLE IF NOT EXISTS gesture_points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gesture_id TEXT NOT NULL REFERENCES custom_gestures(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			timestamp_ms INTEGER NOT NULL
		)`,

		// Mapping overrides table - stores user remappings of built-in gestures
		`CREATE TABLE IF NOT EXISTS mapping_overrides (
			zone TEXT NOT NULL,
			gesture_type TEXT NOT NULL,
			action_kind TEXT NOT NULL,
			action_amount REAL NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (zone, gesture_type)
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_gesture_points_gesture_id ON gesture_points(gesture_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
