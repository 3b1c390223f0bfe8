package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS day_slots (
			date       TEXT NOT NULL,
			base_index INTEGER NOT NULL,
			units      TEXT NOT NULL,
			activities TEXT NOT NULL,
			saved_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (date, base_index)
		);

		CREATE TABLE IF NOT EXISTS plans (
			date       TEXT NOT NULL,
			base_index INTEGER NOT NULL,
			units      TEXT NOT NULL,
			saved_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (date, base_index)
		);

		CREATE TABLE IF NOT EXISTS timers (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			label      TEXT NOT NULL,
			base_index INTEGER NOT NULL,
			started_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_day_slots_date ON day_slots(date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
