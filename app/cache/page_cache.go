package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"yatube/app/logger"
)

const (
	// KeyPrefix namespaces every cached page inside the badger keyspace.
	KeyPrefix = "page:"

	// IndexPageKey holds the rendered global feed.
	IndexPageKey = "index_page"

	// DefaultTTL is how long a rendered page stays fresh.
	DefaultTTL = 20 * time.Second
)

// Config configures the page cache store.
type Config struct {
	// Path is the badger directory; empty keeps the cache in memory.
	Path string
	TTL  time.Duration
}

// PageCache stores rendered pages under fixed keys for a fixed TTL.
// Entries are never invalidated by writes; they expire or are cleared.
type PageCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open creates a badger-backed page cache.
func Open(cfg Config) (*PageCache, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open page cache: %w", err)
	}
	return New(db, cfg.TTL), nil
}

// New wraps an already open badger database.
func New(db *badger.DB, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PageCache{db: db, ttl: ttl}
}

// TTL returns the freshness window.
func (c *PageCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached page for key, if it is still fresh.
func (c *PageCache) Get(key string) ([]byte, bool, error) {
	var page []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(KeyPrefix + key))
		if err != nil {
			return err
		}
		page, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return page, true, nil
}

// Set stores page under key for one TTL window.
func (c *PageCache) Set(key string, page []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(KeyPrefix+key), page).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Fetch returns the fresh cached page for key or renders, stores and
// returns a new one. A failed render is not cached.
func (c *PageCache) Fetch(key string, render func() ([]byte, error)) ([]byte, error) {
	page, ok, err := c.Get(key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("page cache read failed, rendering")
	}
	if ok {
		return page, nil
	}

	page, err = render()
	if err != nil {
		return nil, err
	}
	if err := c.Set(key, page); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("page cache write failed")
	}
	return page, nil
}

// Invalidate drops a single key.
func (c *PageCache) Invalidate(key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(KeyPrefix + key))
	})
}

// Clear drops every cached page.
func (c *PageCache) Clear() error {
	return c.db.DropPrefix([]byte(KeyPrefix))
}

// Close closes the underlying store.
func (c *PageCache) Close() error {
	return c.db.Close()
}
