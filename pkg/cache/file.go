package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps entries as JSON files under a directory, fanned out
// into subdirectories by digest prefix so a long-lived cache does not pile
// thousands of plans into one listing. It backs the CLI, where runs are
// short-lived and a cache daemon is not worth the setup.
type FileCache struct {
	dir string
}

// NewFileCache opens a file cache rooted at dir, creating the directory
// if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope: the cached bytes plus an absolute
// expiry. A zero expiry never lapses.
type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the entry for key. Corrupt and expired entries count as
// misses and their files are removed on the way out.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores data under key. The entry is written to a temp file in the
// target directory and renamed into place, so an interrupted run never
// leaves a half-written entry for a later Get to trip over.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; files need no teardown.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key to <dir>/<2-char digest prefix>/<rest>.json.
func (c *FileCache) entryPath(key string) string {
	digest := Hash([]byte(key))
	return filepath.Join(c.dir, digest[:2], digest[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
