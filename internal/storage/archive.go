// Package storage persists an append-only audit archive of executed
// commands. The live ledger lives only in the in-memory store; this
// archive is what survives restarts and evictions.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// CommandRecord is one archived command execution.
type CommandRecord struct {
	ID       string
	UserID   string
	Verb     string
	Command  string
	Response string
	At       time.Time
}

// Archive is the sqlite-backed command event log.
type Archive struct {
	db *sql.DB
}

// NewArchive opens (creating if needed) the archive database and applies
// pending migrations.
func NewArchive(dbPath string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Append stores one record. Replaying the same event id is a no-op, so
// AMQP redeliveries stay idempotent.
func (a *Archive) Append(ctx context.Context, rec CommandRecord) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO command_events (id, user_id, verb, command, response, at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, rec.ID, rec.UserID, rec.Verb, rec.Command, rec.Response, rec.At)
	if err != nil {
		return fmt.Errorf("insert command event: %w", err)
	}

	slog.InfoContext(ctx, "Command event archived",
		"event_id", rec.ID,
		"verb", rec.Verb)
	return nil
}

// RecentByUser returns the user's latest records, newest first.
func (a *Archive) RecentByUser(ctx context.Context, userID string, limit int) ([]CommandRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, user_id, verb, command, response, at
		FROM command_events
		WHERE user_id = ?
		ORDER BY at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query command events: %w", err)
	}
	defer rows.Close()

	var out []CommandRecord
	for rows.Next() {
		var rec CommandRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Verb, &rec.Command, &rec.Response, &rec.At); err != nil {
			return nil, fmt.Errorf("scan command event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the total number of archived events.
func (a *Archive) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM command_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count command events: %w", err)
	}
	return n, nil
}
