package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/lox/foundation/core/error"
)

// Status is the outcome of one interactive input
type Status string

const (
	StatusOK           Status = "ok"
	StatusSyntaxError  Status = "syntax_error"
	StatusRuntimeError Status = "runtime_error"
)

// Entry is one recorded input of an interactive session
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Output    string    `json:"output,omitempty"`
	Status    Status    `json:"status"`
}

// Filter defines criteria for querying entries
type Filter struct {
	SessionID string
	Status    Status
	Since     time.Time
	Limit     int
	Offset    int
}

// Store defines the interface for history persistence
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{Path: ".lox/history.db"}
	}
	return Config{Path: filepath.Join(home, ".lox", "history.db")}
}

// NewSQLiteStore opens (and creates if needed) a SQLite history database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "store.New").
			WithDetail("path", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError(err, "failed to open database", "store.New").
			WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "store.New").
			WithDetail("path", cfg.Path)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		output TEXT,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append records a new entry. Missing ids and timestamps are filled in.
func (s *SQLiteStore) Append(ctx context.Context, entry *Entry) error {
	if err := prepare(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, session_id, timestamp, source, output, status) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SessionID, entry.Timestamp, entry.Source, entry.Output, string(entry.Status))
	if err != nil {
		return storageError(err, "failed to insert entry", "store.Append").
			WithDetail("session", entry.SessionID)
	}
	return nil
}

// Query returns entries matching the filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, session_id, timestamp, source, output, status FROM entries WHERE 1=1`
	var args []interface{}

	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query entries", "store.Query")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var output sql.NullString
		var status string

		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Timestamp, &entry.Source, &output, &status); err != nil {
			return nil, storageError(err, "failed to scan entry", "store.Query")
		}
		if output.Valid {
			entry.Output = output.String
		}
		entry.Status = Status(status)

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read entries", "store.Query")
	}

	return entries, nil
}

// Prune deletes entries older than the given age
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, storageError(err, "failed to prune entries", "store.Prune")
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records a copy of the entry
func (m *MemoryStore) Append(ctx context.Context, entry *Entry) error {
	if err := prepare(entry); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *entry
	m.entries = append(m.entries, &stored)
	return nil
}

// Query returns entries matching the filter, newest first
func (m *MemoryStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*Entry
	for _, e := range m.entries {
		if filter.SessionID != "" && e.SessionID != filter.SessionID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		entry := *e
		result = append(result, &entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if filter.Limit <= 0 {
		return result, nil
	}
	if filter.Offset >= len(result) {
		return nil, nil
	}
	result = result[filter.Offset:]
	if len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Prune deletes entries older than the given age
func (m *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := m.entries[:0]
	var deleted int64
	for _, e := range m.entries {
		if e.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return deleted, nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

func prepare(entry *Entry) error {
	if entry == nil {
		return mdwerror.New("entry is nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.Append")
	}
	if entry.SessionID == "" {
		return mdwerror.New("entry has no session id").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.Append")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Status == "" {
		entry.Status = StatusOK
	}
	return nil
}

func storageError(err error, message, operation string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithOperation(operation)
}

var _ Store = (*SQLiteStore)(nil)
var _ Store = (*MemoryStore)(nil)
