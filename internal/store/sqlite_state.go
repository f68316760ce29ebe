package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ganttly/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage: WAL for one writer + many
	// readers, busy_timeout against "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			name TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			status TEXT NOT NULL,
			tracker_id TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_tracker ON tasks(tracker_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) loadSQLite(ctx context.Context) (Snapshot, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Settings: model.DefaultSettings()}

	var settingsJSON string
	_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "settings").Scan(&settingsJSON)
	if settingsJSON != "" {
		// Corrupt settings fall back to defaults; tasks still load.
		_ = json.Unmarshal([]byte(settingsJSON), &snap.Settings)
	}

	rows, err := db.QueryContext(ctx, `SELECT json FROM tasks ORDER BY start_date, id`)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return Snapshot{}, err
		}
		var t model.Task
		if err := json.Unmarshal([]byte(js), &t); err != nil {
			return Snapshot{}, err
		}
		snap.Tasks = append(snap.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	return snap, nil
}

func (s Store) saveSQLite(ctx context.Context, snap Snapshot) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	settingsJSON, _ := json.Marshal(snap.Settings)
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "settings", string(settingsJSON)); err != nil {
		return err
	}

	// Replace-all: the snapshot is small and this keeps writer logic
	// trivially correct under concurrent readers.
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}

	nowMs := time.Now().UTC().UnixMilli()
	for _, t := range snap.Tasks {
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		parent := ""
		if t.ParentID != nil {
			parent = *t.ParentID
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(
			id, kind, parent_id, name, start_date, end_date, status, tracker_id, json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, string(t.Kind), parent, t.Name,
			t.Start.UTC().Format("2006-01-02"), t.End.UTC().Format("2006-01-02"),
			string(t.Status), t.TrackerID, string(raw), nowMs,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
