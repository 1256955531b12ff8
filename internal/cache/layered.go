package cache

import "time"

// LayeredCache holds encoded credit entries, keyed by CacheKey over the
// document digest and extraction settings. The go-cache layer serves
// repeat lookups within a process (watch mode, batch runs with duplicate
// documents); the disk layer carries entries across runs.
type LayeredCache struct {
	memory    Cache
	disk      Cache
	memoryTTL time.Duration
}

// NewLayeredCache creates a layered cache whose disk entries live under
// diskDir
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory:    NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:      NewDiskCache(diskDir, diskTTL),
		memoryTTL: memoryTTL,
	}
}

// Get looks up a credit entry in memory, then on disk. Entries found on
// disk are copied into memory so the next lookup skips the file read.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if entry, ok := c.memory.Get(key); ok {
		return entry, true
	}

	entry, ok := c.disk.Get(key)
	if !ok {
		return nil, false
	}
	_ = c.memory.Set(key, entry, c.memoryTTL)
	return entry, true
}

// Set writes a credit entry to both layers. A ttl shorter than the memory
// TTL also caps the memory copy; 0 means each layer's default.
func (c *LayeredCache) Set(key string, entry []byte, ttl time.Duration) error {
	memTTL := c.memoryTTL
	if ttl != 0 && ttl < memTTL {
		memTTL = ttl
	}
	if err := c.memory.Set(key, entry, memTTL); err != nil {
		return err
	}
	return c.disk.Set(key, entry, ttl)
}

// Delete drops one document's entry from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear drops every cached credit, including the files on disk
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
