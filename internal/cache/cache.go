// Package cache provides a SQLite-backed mirror of the last synchronized
// notification view. It exists so status-bar integrations can read the tray
// state without a network round-trip; the server remains authoritative and
// the mirror is rewritten wholesale after every refresh or confirmed
// mutation.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cristianoliveira/notitray/internal/domain"
)

// ErrEmpty indicates the cache has never been written.
var ErrEmpty = errors.New("cache is empty")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notifications (
	position     INTEGER NOT NULL,
	id           TEXT PRIMARY KEY,
	subject_id   TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL,
	message      TEXT NOT NULL,
	kind         TEXT NOT NULL,
	is_read      INTEGER NOT NULL DEFAULT 0,
	read_at      TEXT,
	related_kind TEXT NOT NULL DEFAULT '',
	related_id   TEXT NOT NULL DEFAULT '',
	metadata     TEXT NOT NULL DEFAULT '{}',
	created_at   TEXT NOT NULL DEFAULT '',
	updated_at   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_notifications_position ON notifications(position);
CREATE TABLE IF NOT EXISTS sync_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Cache is a SQLite-backed snapshot mirror.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at the provided path.
func Open(dbPath string) (*Cache, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("cache: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}

	c := &Cache{db: db}
	if err := c.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

func (c *Cache) init() error {
	if _, err := c.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("cache: set busy timeout: %w", err)
	}

	if _, err := c.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("cache: create schema: %w", err)
	}

	return nil
}

// Close closes the underlying SQLite connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ReplaceAll rewrites the mirror with the given view in one transaction.
// Ordering is preserved through the position column.
func (c *Cache) ReplaceAll(notifs []domain.Notification, unread int) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM notifications"); err != nil {
		return fmt.Errorf("cache: clear notifications: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO notifications
		(position, id, subject_id, title, message, kind, is_read, read_at, related_kind, related_id, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // read-only statement handle

	for i, n := range notifs {
		metadata := "{}"
		if len(n.Metadata) > 0 {
			data, err := json.Marshal(n.Metadata)
			if err != nil {
				return fmt.Errorf("cache: marshal metadata for %s: %w", n.ID, err)
			}
			metadata = string(data)
		}

		var readAt any
		if n.ReadAt != nil {
			readAt = n.ReadAt.UTC().Format(time.RFC3339Nano)
		}

		isRead := 0
		if n.IsRead {
			isRead = 1
		}

		if _, err := stmt.Exec(i, n.ID, n.SubjectID, n.Title, n.Message, n.Kind.String(),
			isRead, readAt, n.RelatedKind, n.RelatedID, metadata,
			n.CreatedAt.UTC().Format(time.RFC3339Nano), n.UpdatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("cache: insert %s: %w", n.ID, err)
		}
	}

	meta := map[string]string{
		"unread_count": strconv.Itoa(unread),
		"synced_at":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	for key, value := range meta {
		if _, err := tx.Exec(`INSERT INTO sync_meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("cache: write meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: commit: %w", err)
	}
	return nil
}

// Snapshot returns the mirrored notification list and unread count.
// Returns ErrEmpty if the cache was never written.
func (c *Cache) Snapshot() ([]domain.Notification, int, error) {
	var unreadValue string
	err := c.db.QueryRow("SELECT value FROM sync_meta WHERE key = 'unread_count'").Scan(&unreadValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrEmpty
	}
	if err != nil {
		return nil, 0, fmt.Errorf("cache: read meta: %w", err)
	}
	unread, err := strconv.Atoi(unreadValue)
	if err != nil {
		return nil, 0, fmt.Errorf("cache: parse unread count: %w", err)
	}

	rows, err := c.db.Query(`SELECT id, subject_id, title, message, kind, is_read, read_at,
		related_kind, related_id, metadata, created_at, updated_at
		FROM notifications ORDER BY position`)
	if err != nil {
		return nil, 0, fmt.Errorf("cache: query notifications: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var notifs []domain.Notification
	for rows.Next() {
		var (
			n         domain.Notification
			kind      string
			isRead    int
			readAt    sql.NullString
			metadata  string
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&n.ID, &n.SubjectID, &n.Title, &n.Message, &kind, &isRead, &readAt,
			&n.RelatedKind, &n.RelatedID, &metadata, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("cache: scan notification: %w", err)
		}

		n.Kind = domain.Kind(kind)
		n.IsRead = isRead != 0
		if readAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, readAt.String); err == nil {
				n.ReadAt = &t
			}
		}
		if metadata != "" && metadata != "{}" {
			_ = json.Unmarshal([]byte(metadata), &n.Metadata)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			n.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			n.UpdatedAt = t
		}

		notifs = append(notifs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("cache: iterate notifications: %w", err)
	}

	return notifs, unread, nil
}

// SyncedAt returns the time of the last successful mirror write.
func (c *Cache) SyncedAt() (time.Time, error) {
	var value string
	err := c.db.QueryRow("SELECT value FROM sync_meta WHERE key = 'synced_at'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrEmpty
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("cache: read meta: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("cache: parse synced_at: %w", err)
	}
	return t, nil
}
