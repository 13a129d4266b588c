// Package server holds shared state for the MCP server.
package server

import (
	"sync"
	"time"

	"github.com/uiprobe/uiprobe/internal/model"
)

// cacheKey identifies a unique traversal scope.
type cacheKey struct {
	PID         int
	VisibleOnly bool
}

type cacheEntry struct {
	snapshot  *model.Snapshot
	timestamp time.Time
}

// SnapshotCache is a TTL cache for traversal snapshots. MCP clients tend
// to re-read the same app between actions; a short TTL avoids hammering
// the accessibility layer without serving stale trees for long.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// NewSnapshotCache creates a cache. A ttl of 0 disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns a cached snapshot within TTL, or calls walk and stores the
// result.
func (c *SnapshotCache) Get(pid int, visibleOnly bool, walk func() (*model.Snapshot, error)) (*model.Snapshot, error) {
	key := cacheKey{PID: pid, VisibleOnly: visibleOnly}

	if c.ttl > 0 {
		c.mu.Lock()
		entry, ok := c.entries[key]
		c.mu.Unlock()
		if ok && time.Since(entry.timestamp) < c.ttl {
			return entry.snapshot, nil
		}
	}

	snap, err := walk()
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[key] = cacheEntry{snapshot: snap, timestamp: time.Now()}
		c.mu.Unlock()
	}
	return snap, nil
}

// InvalidatePID drops cached snapshots for one process, typically after
// an action that changed its UI.
func (c *SnapshotCache) InvalidatePID(pid int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.PID == pid {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll drops every cached snapshot.
func (c *SnapshotCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
