package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Events table - log of recognized gesture events
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			handedness TEXT NOT NULL,
			confidence REAL NOT NULL,
			position_x REAL NOT NULL,
			position_y REAL NOT NULL,
			direction TEXT NOT NULL DEFAULT '',
			distance REAL NOT NULL DEFAULT 0,
			distance_change REAL NOT NULL DEFAULT 0,
			timestamp_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Bindings table - maps a gesture key to a plugin action
		`CREATE TABLE IF NOT EXISTS bindings (
			id TEXT PRIMARY KEY,
			gesture_type TEXT NOT NULL,
			handedness TEXT NOT NULL DEFAULT '*',
			plugin_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(gesture_type, handedness)
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp_ms)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type)`,
		`CREATE INDEX IF NOT EXISTS idx_bindings_gesture_type ON bindings(gesture_type)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
