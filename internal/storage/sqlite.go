// Package storage persists a write-mostly log of processed messages. The log
// exists for audit and the status endpoint; the pipeline never reads it back
// to make decisions.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// MessageRecord is one processed inbound message.
type MessageRecord struct {
	ID          string
	WaID        string
	Sender      string
	DisplayName string
	Type        string
	Content     string
	MediaPath   string
	MimeType    string
	ByteSize    int64
	Digest      string
	CreatedAt   time.Time
}

// OpenSQLite opens (and creates if needed) the SQLite database at path and
// ensures required tables exist.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(pctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign_keys: %w", err)
	}
	if _, err := db.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if err := BootstrapSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// BootstrapSQLite creates tables/indexes if missing.
func BootstrapSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS messages (
  id           TEXT PRIMARY KEY,
  wa_id        TEXT,
  sender       TEXT NOT NULL,
  display_name TEXT,
  type         TEXT NOT NULL,
  content      TEXT,
  media_path   TEXT,
  mime_type    TEXT,
  byte_size    INTEGER NOT NULL DEFAULT 0,
  digest       TEXT,
  created_at   TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS messages_sender_created_at_idx ON messages(sender, created_at);`,
		`CREATE INDEX IF NOT EXISTS messages_type_idx ON messages(type);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap sqlite: %w", err)
		}
	}
	return nil
}

// MessageLog writes processed messages to the database. A nil receiver is a
// no-op so callers need no guard when logging is disabled.
type MessageLog struct {
	db *sql.DB
}

// NewMessageLog wraps an open database.
func NewMessageLog(db *sql.DB) *MessageLog {
	return &MessageLog{db: db}
}

// Record inserts one message. Duplicate ids are ignored rather than erroring
// because platform redeliveries can slip past the dedupe window.
func (l *MessageLog) Record(ctx context.Context, rec MessageRecord) error {
	if l == nil || l.db == nil {
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO messages
  (id, wa_id, sender, display_name, type, content, media_path, mime_type, byte_size, digest, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.WaID, rec.Sender, rec.DisplayName, rec.Type, rec.Content,
		rec.MediaPath, rec.MimeType, rec.ByteSize, rec.Digest,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record message: %w", err)
	}
	return nil
}

// Recent returns up to limit messages, newest first.
func (l *MessageLog) Recent(ctx context.Context, limit int) ([]MessageRecord, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, wa_id, sender, display_name, type, content, media_path, mime_type, byte_size, digest, created_at
FROM messages ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent messages: %w", err)
	}
	defer rows.Close()

	var out []MessageRecord
	for rows.Next() {
		var rec MessageRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.WaID, &rec.Sender, &rec.DisplayName, &rec.Type,
			&rec.Content, &rec.MediaPath, &rec.MimeType, &rec.ByteSize, &rec.Digest, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
