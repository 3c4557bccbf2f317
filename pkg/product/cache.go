package product

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS products (
	barcode    TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
`

// ErrCacheMiss is returned when a barcode has no cached payload.
var ErrCacheMiss = errors.New("product not in cache")

// Cache stores raw fetched product payloads in a local sqlite database so
// repeated analyses of the same barcode work offline.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring cache database: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Put stores (or replaces) the raw payload for a barcode.
func (c *Cache) Put(barcode string, payload []byte) error {
	_, err := c.db.Exec(`
		INSERT INTO products (barcode, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(barcode) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		barcode, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("caching product %s: %w", barcode, err)
	}
	return nil
}

// Get returns the cached raw payload for a barcode, or ErrCacheMiss.
func (c *Cache) Get(barcode string) ([]byte, error) {
	var payload []byte
	err := c.db.QueryRow(
		"SELECT payload FROM products WHERE barcode = ?", barcode,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache for %s: %w", barcode, err)
	}
	return payload, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
