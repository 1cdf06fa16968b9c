// Package offline keeps the terminal usable without connectivity: a
// file-backed asset cache plus a fetcher applying per-origin caching
// policies.
package offline

import (
	"crypto/sha256"
	"encoding/hex"
	json "github.com/go-json-experiment/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Namespace versions the cache layout. Opening a cache written under a
// different namespace purges it, mirroring a service worker activation
// sweeping old cache generations.
const Namespace = "osint-terminal-v1.1"

const namespaceFile = "NAMESPACE"

// Entry is the metadata sidecar stored next to each cached body.
type Entry struct {
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Cache stores response bodies on disk, keyed by URL hash. Writes go through
// a temp file and rename, so a crash never leaves a half-written entry
// readable.
type Cache struct {
	dir    string
	logger *slog.Logger
	mu     sync.RWMutex
}

// OpenCache opens (or creates) the cache at dir. A namespace mismatch drops
// every stored entry before the cache is handed out.
func OpenCache(dir string, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	marker := filepath.Join(dir, namespaceFile)
	existing, err := os.ReadFile(marker) //#nosec G304 -- path derives from our own cache dir
	if err == nil && string(existing) != Namespace {
		if logger != nil {
			logger.Info("purging stale offline cache",
				slog.String("old", string(existing)),
				slog.String("new", Namespace))
		}
		if err := purgeDir(dir); err != nil {
			return nil, fmt.Errorf("purge stale cache: %w", err)
		}
	}
	if err := os.WriteFile(marker, []byte(Namespace), 0o600); err != nil {
		return nil, fmt.Errorf("write namespace marker: %w", err)
	}

	return &Cache{dir: dir, logger: logger}, nil
}

// Put stores a response body and its metadata under url.
func (c *Cache) Put(url, contentType string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(url)
	if err := writeAtomic(filepath.Join(c.dir, key+".bin"), body); err != nil {
		return fmt.Errorf("write cached body: %w", err)
	}

	meta, err := json.Marshal(Entry{URL: url, ContentType: contentType, FetchedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := writeAtomic(filepath.Join(c.dir, key+".json"), meta); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Get returns the cached entry and body for url. Missing entries report
// os.ErrNotExist.
func (c *Cache) Get(url string) (*Entry, []byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := cacheKey(url)
	meta, err := os.ReadFile(filepath.Join(c.dir, key+".json")) //#nosec G304 -- key is a hash
	if err != nil {
		return nil, nil, err
	}
	var entry Entry
	if err := json.Unmarshal(meta, &entry); err != nil {
		return nil, nil, fmt.Errorf("parse cache entry: %w", err)
	}

	body, err := os.ReadFile(filepath.Join(c.dir, key+".bin")) //#nosec G304 -- key is a hash
	if err != nil {
		return nil, nil, err
	}
	return &entry, body, nil
}

// Purge drops every cached entry, keeping the namespace marker.
func (c *Cache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := purgeDir(c.dir); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, namespaceFile), []byte(Namespace), 0o600)
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
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

func purgeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
