// Package store persists GA run history to SQLite: one row per completed
// Run, recording enough to answer "how did this graph schedule, and how
// long did it take" without re-running the search.
package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zhenglier/eo/internal/domain"
)

// DB wraps a SQLite connection and owns its migrations.
type DB struct {
	db *sql.DB
}

// migrations returns the schema migration statements. Each string is a
// single SQL statement, executed one at a time on Open (mirrors the
// scheduler-domain predecessor of this package: a flat []string of
// CREATE TABLE/INDEX statements, applied idempotently with IF NOT EXISTS).
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			graph_size   INTEGER NOT NULL,
			card_count   INTEGER NOT NULL,
			makespan     INTEGER NOT NULL,
			wall_time_ms INTEGER NOT NULL,
			generations  INTEGER NOT NULL,
			seed         INTEGER NOT NULL,
			schedule_json TEXT NOT NULL,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
}

// Open opens (creating if necessary) the SQLite database at path and
// applies all migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db := &DB{db: sqlDB}
	for _, stmt := range migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}
	return db, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	return db.db.Close()
}

// Run is one persisted scheduling run.
type Run struct {
	ID          string
	GraphSize   int
	CardCount   int
	Makespan    int64
	WallTimeMS  int64
	Generations int
	Seed        int64
	Schedule    domain.Schedule
	CreatedAt   time.Time
}

// InsertRun records a completed run. The caller supplies ID (typically a
// github.com/google/uuid value) so API handlers can echo it back to
// clients before the insert completes.
func (db *DB) InsertRun(r Run) error {
	scheduleJSON, err := json.Marshal(r.Schedule)
	if err != nil {
		return err
	}
	_, err = db.db.Exec(`
		INSERT INTO runs (id, graph_size, card_count, makespan, wall_time_ms, generations, seed, schedule_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.GraphSize, r.CardCount, r.Makespan, r.WallTimeMS, r.Generations, r.Seed, string(scheduleJSON))
	return err
}

// GetRun retrieves a run by id. Returns sql.ErrNoRows if absent.
func (db *DB) GetRun(id string) (Run, error) {
	var r Run
	var createdStr, scheduleJSON string
	err := db.db.QueryRow(`
		SELECT id, graph_size, card_count, makespan, wall_time_ms, generations, seed, schedule_json, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.GraphSize, &r.CardCount, &r.Makespan, &r.WallTimeMS, &r.Generations, &r.Seed, &scheduleJSON, &createdStr)
	if err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(scheduleJSON), &r.Schedule); err != nil {
		return Run{}, err
	}
	r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
	return r, nil
}

// ListRecentRuns returns the most recently created runs, newest first. The
// schedule itself is omitted from list results to keep the query cheap;
// callers that need it should GetRun the specific id.
func (db *DB) ListRecentRuns(limit int) ([]Run, error) {
	rows, err := db.db.Query(`
		SELECT id, graph_size, card_count, makespan, wall_time_ms, generations, seed, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var createdStr string
		if err := rows.Scan(&r.ID, &r.GraphSize, &r.CardCount, &r.Makespan, &r.WallTimeMS, &r.Generations, &r.Seed, &createdStr); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
		out = append(out, r)
	}
	return out, rows.Err()
}
