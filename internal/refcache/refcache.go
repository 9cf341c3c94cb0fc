// ABOUTME: Reference audio disk cache
// ABOUTME: Stores fetched synthesis output keyed by blake3 of the request
package refcache

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// Cache stores synthesized reference audio on disk. The server deletes
// its copy after the client confirms playback, so the cache is what
// makes replaying a phrase free across sessions.
type Cache struct {
	dir string
}

// New opens a cache rooted at dir, creating it if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key derives a cache key from the synthesis request parameters.
// Parts are length-separated before hashing so ("ab","c") and
// ("a","bc") produce different keys.
func Key(parts ...string) string {
	h := blake3.New(32, nil)
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Get returns the cached audio for key, or ok=false on a miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	log.Printf("Reference cache hit: %s (%d bytes)", key, len(data))
	return data, true
}

// Put stores audio under key and returns its path.
func (c *Cache) Put(key string, data []byte) (string, error) {
	path := c.path(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cache entry: %w", err)
	}
	log.Printf("Reference cached: %s (%d bytes)", key, len(data))
	return path, nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".audio")
}
