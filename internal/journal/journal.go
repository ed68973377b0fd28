// Package journal keeps an append-only log of task mutations in SQLite.
//
// Each process opens the journal with a fresh session id, so the history
// command can group the changes made by one invocation of the planner.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

//go:embed schema.sql
var schemaSQL string

const defaultLimit = 20

// Entry is one recorded mutation.
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Op        string    `json:"op"`
	TaskID    int64     `json:"task_id"`
	Text      string    `json:"text,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// SQLiteJournal implements task.Journal.
type SQLiteJournal struct {
	db        *sql.DB
	sessionID string
}

var _ task.Journal = (*SQLiteJournal)(nil)

// Open creates the database file and schema if needed.
func Open(dbPath string) (*SQLiteJournal, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &SQLiteJournal{db: db, sessionID: uuid.New().String()}, nil
}

// SessionID identifies the entries written through this handle.
func (j *SQLiteJournal) SessionID() string {
	return j.sessionID
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Record appends ev under the current session.
func (j *SQLiteJournal) Record(ctx context.Context, ev task.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO journal (session_id, timestamp, op, task_id, text, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		j.sessionID,
		at.UTC().Format(time.RFC3339Nano),
		ev.Op,
		ev.TaskID,
		ev.Text,
		ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", ev.Op, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return j.query(ctx, `
		SELECT id, session_id, timestamp, op, task_id, text, detail
		FROM journal
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// ForTask returns every entry recorded for one task, oldest first.
func (j *SQLiteJournal) ForTask(ctx context.Context, taskID int64) ([]Entry, error) {
	return j.query(ctx, `
		SELECT id, session_id, timestamp, op, task_id, text, detail
		FROM journal
		WHERE task_id = ?
		ORDER BY id ASC
	`, taskID)
}

func (j *SQLiteJournal) query(ctx context.Context, q string, args ...interface{}) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("journal query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &e.SessionID, &ts, &e.Op, &e.TaskID, &e.Text, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err != nil {
			log.Printf("warning: failed to parse timestamp for journal entry %d: %v", e.ID, err)
		} else {
			e.Timestamp = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
