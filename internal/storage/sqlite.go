// Package storage provides the SQLite session journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// Session is everything needed to replay one play session: the seed, the
// config snapshot and every non-empty input frame, plus the results the
// session produced.
type Session struct {
	ID        string
	GameID    string
	User      string // "local" or the SSH user name
	Seed      int64
	TickRate  int
	ScreenW   int
	ScreenH   int
	Config    []byte // YAML snapshot of the game config
	Steps     uint64 // Platform steps taken, including paused ones
	StartedAt time.Time
	EndedAt   time.Time
	Inputs    []InputEvent
	Runs      []RunResult
}

// InputEvent is one non-empty input frame.
type InputEvent struct {
	Step    uint64   // Zero-based platform step index
	Actions []string // Action names
}

// RunResult is one Idle→Running→Over round within a session.
type RunResult struct {
	Index     int
	StartStep uint64
	EndStep   uint64
	Meters    int
	Finished  bool // False when the session ended mid-run
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One connection serializes writers; SSH sessions save concurrently
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			screen_w INTEGER NOT NULL DEFAULT 0,
			screen_h INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS session_inputs (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			step INTEGER NOT NULL,
			actions TEXT NOT NULL,
			PRIMARY KEY (session_id, step)
		);

		CREATE TABLE IF NOT EXISTS session_runs (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			start_step INTEGER NOT NULL,
			end_step INTEGER NOT NULL,
			meters INTEGER NOT NULL,
			finished INTEGER NOT NULL,
			PRIMARY KEY (session_id, idx)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession writes a session with its inputs and runs in one transaction.
// Saving an existing ID replaces it.
func (s *Store) SaveSession(sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("storage: session has no ID")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, q := range []string{
		"DELETE FROM session_inputs WHERE session_id = ?",
		"DELETE FROM session_runs WHERE session_id = ?",
		"DELETE FROM sessions WHERE id = ?",
	} {
		if _, err := tx.Exec(q, sess.ID); err != nil {
			return fmt.Errorf("storage: cannot replace session: %w", err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO sessions
		 (id, game_id, user, seed, tick_rate, screen_w, screen_h, config, steps, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.GameID,
		sess.User,
		sess.Seed,
		sess.TickRate,
		sess.ScreenW,
		sess.ScreenH,
		string(sess.Config),
		int64(sess.Steps),
		sess.StartedAt.UnixMilli(),
		sess.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	inputStmt, err := tx.Prepare("INSERT INTO session_inputs (session_id, step, actions) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer inputStmt.Close()
	for _, in := range sess.Inputs {
		if _, err := inputStmt.Exec(sess.ID, int64(in.Step), strings.Join(in.Actions, ",")); err != nil {
			return fmt.Errorf("storage: cannot save input at step %d: %w", in.Step, err)
		}
	}

	runStmt, err := tx.Prepare(
		`INSERT INTO session_runs (session_id, idx, start_step, end_step, meters, finished)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare run insert: %w", err)
	}
	defer runStmt.Close()
	for _, r := range sess.Runs {
		if _, err := runStmt.Exec(sess.ID, r.Index, int64(r.StartStep), int64(r.EndStep), r.Meters, r.Finished); err != nil {
			return fmt.Errorf("storage: cannot save run %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return nil
}

// Session loads a full session, inputs included.
// Returns ErrNotFound if the ID is unknown.
func (s *Store) Session(id string) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		`SELECT id, game_id, user, seed, tick_rate, screen_w, screen_h, config, steps, started_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	if sess.Inputs, err = s.inputs(id); err != nil {
		return nil, err
	}
	if sess.Runs, err = s.runs(id); err != nil {
		return nil, err
	}
	return sess, nil
}

// RecentSessions lists the most recent sessions with their runs.
// Inputs are not loaded.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, user, seed, tick_rate, screen_w, screen_h, config, steps, started_at, ended_at
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range sessions {
		if sessions[i].Runs, err = s.runs(sessions[i].ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// DeleteSession removes a session and everything recorded for it.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, q := range []string{
		"DELETE FROM session_inputs WHERE session_id = ?",
		"DELETE FROM session_runs WHERE session_id = ?",
		"DELETE FROM sessions WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("storage: cannot delete session: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

func (s *Store) inputs(id string) ([]InputEvent, error) {
	rows, err := s.db.Query(
		"SELECT step, actions FROM session_inputs WHERE session_id = ? ORDER BY step",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var events []InputEvent
	for rows.Next() {
		var step int64
		var actions string
		if err := rows.Scan(&step, &actions); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		ev := InputEvent{Step: uint64(step)}
		if actions != "" {
			ev.Actions = strings.Split(actions, ",")
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return events, nil
}

func (s *Store) runs(id string) ([]RunResult, error) {
	rows, err := s.db.Query(
		`SELECT idx, start_step, end_step, meters, finished
		 FROM session_runs WHERE session_id = ? ORDER BY idx`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunResult
	for rows.Next() {
		var r RunResult
		var start, end int64
		if err := rows.Scan(&r.Index, &start, &end, &r.Meters, &r.Finished); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.StartStep = uint64(start)
		r.EndStep = uint64(end)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var sess Session
	var config string
	var steps, started, ended int64
	err := row.Scan(
		&sess.ID,
		&sess.GameID,
		&sess.User,
		&sess.Seed,
		&sess.TickRate,
		&sess.ScreenW,
		&sess.ScreenH,
		&config,
		&steps,
		&started,
		&ended,
	)
	if err != nil {
		return nil, err
	}
	sess.Config = []byte(config)
	sess.Steps = uint64(steps)
	sess.StartedAt = time.UnixMilli(started)
	sess.EndedAt = time.UnixMilli(ended)
	return &sess, nil
}
