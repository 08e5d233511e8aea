package index

import (
	"context"
	"sync"
	"time"
)

// MemoryIndex is an in-process key-value backend. It stands in for Redis or
// SQLite in tests, in the CLI and when METEO_STORAGE_DRIVER=memory.
// Nothing survives a restart.
type MemoryIndex struct {
	mu        sync.RWMutex
	values    map[string]string // key -> raw value
	lastWrite time.Time
}

// NewMemoryIndex creates an empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		values: make(map[string]string),
	}
}

// ReadRaw returns the value under key
func (idx *MemoryIndex) ReadRaw(_ context.Context, key string) (string, bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	v, ok := idx.values[key]
	return v, ok, nil
}

// WriteRaw replaces the value under key
func (idx *MemoryIndex) WriteRaw(_ context.Context, key, value string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.values[key] = value
	idx.lastWrite = time.Now()
	return nil
}

// Ping always succeeds.
func (idx *MemoryIndex) Ping(context.Context) error { return nil }

// Count returns the number of stored keys
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.values)
}

// GetLastWrite returns the timestamp of the last write
func (idx *MemoryIndex) GetLastWrite() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastWrite
}

// ─────────────────────────────────────────────────────────────────
// Name cache
// ─────────────────────────────────────────────────────────────────

// MemoryNames caches localized city names for the lifetime of the process.
type MemoryNames struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewMemoryNames creates an empty name cache
func NewMemoryNames() *MemoryNames {
	return &MemoryNames{names: make(map[string]string)}
}

// GetName returns the cached name, "" on a miss
func (c *MemoryNames) GetName(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.names[key], nil
}

// SetName stores name under key
func (c *MemoryNames) SetName(_ context.Context, key, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names[key] = name
	return nil
}
