// Package cache implements the local snapshot store.
//
// The cache is a single SQLite table of whole-collection JSON blobs
// addressed by a fixed key per collection ("events", "guests", ...).
// It is the standing fallback for the remote store: every successful
// remote write is mirrored here, and reads are answered from here when
// the remote store is unavailable. It is a snapshot, not a write-ahead
// log; mutations made while disconnected are not queued for replay.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrMiss indicates no snapshot exists for the requested key.
var ErrMiss = errors.New("cache miss")

// Fixed snapshot keys, one per collection.
const (
	KeyEvents    = "events"
	KeyGuests    = "guests"
	KeyDishes    = "dishes"
	KeyItems     = "items"
	KeyMessages  = "messages"
	KeyTemplates = "templates"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_on TIMESTAMP NOT NULL
);`

// Cache is a key/value snapshot store backed by SQLite.
type Cache struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (and if necessary creates) the cache database at path.
// Use ":memory:" for an ephemeral cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get unmarshals the snapshot stored under key into v.
// Returns ErrMiss when no snapshot exists.
func (c *Cache) Get(ctx context.Context, key string, v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var blob []byte
	err := c.db.QueryRowContext(ctx, "SELECT value FROM snapshots WHERE key = ?", key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("read snapshot %q: %w", key, err)
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return nil
}

// Put stores v as the whole-collection snapshot under key, replacing
// any previous snapshot.
func (c *Cache) Put(ctx context.Context, key string, v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	_, err = c.db.ExecContext(ctx,
		"INSERT INTO snapshots (key, value, updated_on) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_on = excluded.updated_on",
		key, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot stored under key. Deleting a missing key
// is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
