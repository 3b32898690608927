// Package caching provides a file-backed byte cache with a TTL.
package caching

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/cauldron/internal/common"
)

// Cache stores one file per key under a directory. Entries older than the
// TTL are treated as missing.
type Cache struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

// Path returns the cache directory.
func (c *Cache) Path() string { return c.path }

// key generates a SHA256 hash of the cache key to use as a filename.
func (c *Cache) key(k string) string {
	return common.ContentHash([]byte(k))
}

func (c *Cache) expired(mod time.Time) bool {
	return c.ttl > 0 && c.now().Sub(mod) > c.ttl
}

// Get returns the cached data and true if the entry exists and is fresh.
func (c *Cache) Get(k string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(k))

	info, err := os.Stat(filePath)
	if err != nil || c.expired(info.ModTime()) {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data under k. The write is atomic: readers see either the old
// entry or the new one.
func (c *Cache) Set(k string, data []byte) error {
	tmp, err := os.CreateTemp(c.path, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.path, c.key(k))); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}

// Prune removes expired entries and returns how many were removed.
func (c *Cache) Prune() (int, error) {
	entries, err := os.ReadDir(c.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !c.expired(info.ModTime()) {
			continue
		}
		if err := os.Remove(filepath.Join(c.path, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
