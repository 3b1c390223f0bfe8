// Package store provides SQLite persistence for day slot state.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/timer"
)

// SQLite persists per-(date, base) actual grids and activity rows.
// Rows are stored as a JSON document so historical or hand-edited
// payloads still load; readers are expected to run the result through
// the activity normalizer.
type SQLite struct {
	db *sql.DB
}

// Open creates a new SQLite store and runs migrations. The parent
// directory is created if needed.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveDay writes a base's grid and finalized rows as a last-write-wins
// snapshot.
func (s *SQLite) SaveDay(ctx context.Context, date string, baseIndex int, units []bool, acts []activity.Activity) error {
	unitsJSON, err := json.Marshal(units)
	if err != nil {
		return fmt.Errorf("encoding units: %w", err)
	}
	actsJSON, err := json.Marshal(encodeActivities(acts))
	if err != nil {
		return fmt.Errorf("encoding activities: %w", err)
	}

	query := `
		INSERT INTO day_slots (date, base_index, units, activities, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date, base_index) DO UPDATE SET
			units = excluded.units,
			activities = excluded.activities,
			saved_at = excluded.saved_at
	`
	_, err = s.db.ExecContext(ctx, query,
		date, baseIndex, string(unitsJSON), string(actsJSON),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving day slots: %w", err)
	}
	return nil
}

// LoadDay reads a base's grid and raw activity rows. A missing snapshot
// returns nil slices, not an error. The raw rows are decoded JSON
// values ready for activity.NormalizeActivities.
func (s *SQLite) LoadDay(ctx context.Context, date string, baseIndex int) (units []bool, raw []any, err error) {
	query := `SELECT units, activities FROM day_slots WHERE date = ? AND base_index = ?`

	var unitsJSON, actsJSON string
	err = s.db.QueryRowContext(ctx, query, date, baseIndex).Scan(&unitsJSON, &actsJSON)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying day slots: %w", err)
	}

	// Tolerate corrupt columns: a payload that fails to decode reads
	// as empty rather than failing the whole day.
	_ = json.Unmarshal([]byte(unitsJSON), &units)
	_ = json.Unmarshal([]byte(actsJSON), &raw)
	return units, raw, nil
}

// SavePlan writes a base's planned-unit labels.
func (s *SQLite) SavePlan(ctx context.Context, date string, baseIndex int, planUnits []string) error {
	unitsJSON, err := json.Marshal(planUnits)
	if err != nil {
		return fmt.Errorf("encoding plan units: %w", err)
	}

	query := `
		INSERT INTO plans (date, base_index, units, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, base_index) DO UPDATE SET
			units = excluded.units,
			saved_at = excluded.saved_at
	`
	_, err = s.db.ExecContext(ctx, query, date, baseIndex, string(unitsJSON), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// LoadPlan reads a base's planned-unit labels. Missing plans return nil.
func (s *SQLite) LoadPlan(ctx context.Context, date string, baseIndex int) ([]string, error) {
	query := `SELECT units FROM plans WHERE date = ? AND base_index = ?`

	var unitsJSON string
	err := s.db.QueryRowContext(ctx, query, date, baseIndex).Scan(&unitsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	var units []string
	_ = json.Unmarshal([]byte(unitsJSON), &units)
	return units, nil
}

// SaveTimer persists the single running timer, replacing any previous one.
func (s *SQLite) SaveTimer(ctx context.Context, t timer.Timer) error {
	query := `
		INSERT INTO timers (id, label, base_index, started_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			base_index = excluded.base_index,
			started_at = excluded.started_at
	`
	_, err := s.db.ExecContext(ctx, query, t.Label, t.BaseIndex, t.StartedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving timer: %w", err)
	}
	return nil
}

// LoadTimer returns the running timer, or false when none is running.
func (s *SQLite) LoadTimer(ctx context.Context) (timer.Timer, bool, error) {
	query := `SELECT label, base_index, started_at FROM timers WHERE id = 1`

	var t timer.Timer
	var startedAt string
	err := s.db.QueryRowContext(ctx, query).Scan(&t.Label, &t.BaseIndex, &startedAt)
	if err == sql.ErrNoRows {
		return timer.Timer{}, false, nil
	}
	if err != nil {
		return timer.Timer{}, false, fmt.Errorf("querying timer: %w", err)
	}

	t.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return timer.Timer{}, false, fmt.Errorf("parsing timer start: %w", err)
	}
	return t, true, nil
}

// ClearTimer removes the running timer.
func (s *SQLite) ClearTimer(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM timers WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing timer: %w", err)
	}
	return nil
}

// encodeActivities maps rows onto the persisted JSON shape. Optional
// fields are omitted entirely when absent, matching what the normalizer
// expects back on load.
func encodeActivities(acts []activity.Activity) []map[string]any {
	out := make([]map[string]any, 0, len(acts))
	for i := range acts {
		a := &acts[i]
		m := map[string]any{
			"label":   a.Label,
			"seconds": a.Seconds,
		}
		if a.Source != activity.SourceNone {
			m["source"] = string(a.Source)
		}
		if a.RecordedSeconds != nil {
			m["recordedSeconds"] = *a.RecordedSeconds
		}
		if a.Order != nil {
			m["order"] = *a.Order
		}
		if a.IsAutoLocked != nil {
			m["isAutoLocked"] = *a.IsAutoLocked
		}
		if a.LockStart != nil {
			m["lockStart"] = *a.LockStart
		}
		if a.LockEnd != nil {
			m["lockEnd"] = *a.LockEnd
		}
		if a.LockUnits != nil {
			m["lockUnits"] = a.LockUnits
		}
		out = append(out, m)
	}
	return out
}
