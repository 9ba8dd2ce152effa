package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ExecutionRecord is one row of the execution audit log.
type ExecutionRecord struct {
	ID        int64
	Timestamp time.Time
	Shell     string
	Command   string
	Stdout    string
	Stderr    string
}

// AuditLog persists every mediated command execution to a local SQLite
// database. It records executions only, never conversation turns, so the
// conversation itself stays ephemeral across restarts.
type AuditLog struct {
	dbPath string
	db     *sql.DB
	mutex  sync.Mutex
}

// NewAuditLog opens (creating if needed) the audit database at dbPath.
func NewAuditLog(dbPath string) (*AuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %v", err)
	}

	a := &AuditLog{dbPath: dbPath, db: db}
	if err := a.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %v", err)
	}
	return a, nil
}

// initializeSchema creates the executions table if needed.
func (a *AuditLog) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		shell TEXT NOT NULL,
		command TEXT NOT NULL,
		stdout TEXT,
		stderr TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_executions_timestamp ON executions(timestamp);
	`
	_, err := a.db.Exec(schema)
	return err
}

// RecordExecution appends one execution to the log.
func (a *AuditLog) RecordExecution(command string, shell ShellType, result ExecutionResult) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	_, err := a.db.Exec(
		"INSERT INTO executions (timestamp, shell, command, stdout, stderr) VALUES (?, ?, ?, ?, ?)",
		time.Now(), string(shell), command, result.Stdout, result.Stderr,
	)
	if err != nil {
		return fmt.Errorf("failed to record execution: %v", err)
	}
	return nil
}

// RecentExecutions returns up to limit records, newest first.
func (a *AuditLog) RecentExecutions(limit int) ([]ExecutionRecord, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	rows, err := a.db.Query(
		"SELECT id, timestamp, shell, command, stdout, stderr FROM executions ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExecutionRecord
	for rows.Next() {
		var r ExecutionRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Shell, &r.Command, &r.Stdout, &r.Stderr); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountExecutions returns the total number of recorded executions.
func (a *AuditLog) CountExecutions() (int, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	var count int
	err := a.db.QueryRow("SELECT COUNT(*) FROM executions").Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (a *AuditLog) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.db.Close()
}
