// Package chatdb provides read-only access to the macOS Messages
// database (chat.db): opening it safely, resolving addresses and chat
// names to their internal identifiers, and querying message rows.
package chatdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound indicates an address or chat name matched zero rows.
	// A declared participant or chat must exist, so resolution fails
	// fast instead of returning an empty result.
	ErrNotFound = errors.New("not found in chat.db")

	// ErrAccessDenied indicates the database file exists but cannot be
	// read, typically because the process lacks Full Disk Access.
	ErrAccessDenied = errors.New("cannot access chat.db")
)

const accessHelp = `there was an error accessing the messages database.
To give access to the messages database on a Mac:
  1. Open System Preferences
  2. Go to Security and Privacy > Privacy > Full Disk Access
  3. Give whatever application you are running this from Full Disk Access
  4. Run the command again`

// DB handles read-only access to chat.db.
type DB struct {
	db *sql.DB
}

// DefaultPath returns the location of chat.db, honoring the
// TEXTVAULT_CHAT_DB env override (useful for tests and exports).
func DefaultPath() string {
	if override := os.Getenv("TEXTVAULT_CHAT_DB"); override != "" {
		return os.ExpandEnv(override)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Messages", "chat.db")
}

// Open opens chat.db read-only and verifies it is actually readable.
// The access probe runs immediately because database/sql defers real
// connection errors until first use.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("chat.db not found at %s", path)
	}

	// Note: Don't use immutable=1 for a live macOS Messages DB (uses WAL)
	uri := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite3", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat.db: %w", err)
	}

	// Read-only pragmas for performance
	pragmas := []string{
		"PRAGMA query_only=ON",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA cache_size=-262144",  // 256MB cache
		"PRAGMA mmap_size=268435456", // 256MB memory map
	}
	for _, pragma := range pragmas {
		// Ignore pragma errors (some may not be supported)
		_, _ = db.Exec(pragma)
	}

	var probe int
	if err := db.QueryRow("SELECT COUNT(*) FROM handle").Scan(&probe); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v\n%s", ErrAccessDenied, err, accessHelp)
	}

	return &DB{db: db}, nil
}

// Close closes the connection. Safe to call on a nil or never-opened DB.
func (c *DB) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Stats contains summary statistics about the message store.
type Stats struct {
	TotalMessages int       `json:"total_messages"`
	TotalChats    int       `json:"total_chats"`
	TotalHandles  int       `json:"total_handles"`
	OldestDate    time.Time `json:"oldest_date,omitempty"`
	NewestDate    time.Time `json:"newest_date,omitempty"`
}

// Stats returns message, chat, and handle counts plus the date range
// of stored messages.
func (c *DB) Stats() (*Stats, error) {
	var s Stats
	var oldestNano, newestNano sql.NullInt64

	err := c.db.QueryRow(`
		SELECT COUNT(*), MIN(date), MAX(date)
		FROM message
	`).Scan(&s.TotalMessages, &oldestNano, &newestNano)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	if err := c.db.QueryRow("SELECT COUNT(*) FROM chat").Scan(&s.TotalChats); err != nil {
		return nil, fmt.Errorf("failed to count chats: %w", err)
	}
	if err := c.db.QueryRow("SELECT COUNT(*) FROM handle").Scan(&s.TotalHandles); err != nil {
		return nil, fmt.Errorf("failed to count handles: %w", err)
	}

	// Apple timestamps are nanoseconds since 2001-01-01 00:00:00 UTC
	appleEpoch := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if oldestNano.Valid && oldestNano.Int64 > 0 {
		s.OldestDate = appleEpoch.Add(time.Duration(oldestNano.Int64) * time.Nanosecond)
	}
	if newestNano.Valid && newestNano.Int64 > 0 {
		s.NewestDate = appleEpoch.Add(time.Duration(newestNano.Int64) * time.Nanosecond)
	}

	return &s, nil
}
