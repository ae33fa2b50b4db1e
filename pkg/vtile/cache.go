package vtile

import (
	"container/list"
	"fmt"
	"image"
	"sync"

	"github.com/beetlebugorg/vtrender/internal/label"
)

// IconCache keeps derived icons (cropped, tinted, resampled) with LRU
// eviction by approximate memory use.
//
// Example:
//
//	cache := vtile.NewIconCache(16 * 1024 * 1024) // 16MB
//	icon, err := cache.Get("park-11|1", func() (*vtile.Icon, error) {
//	    return makeIcon()
//	})
type IconCache struct {
	maxMemory  int64 // bytes, 0 = unlimited
	usedMemory int64
	icons      map[string]*cacheEntry
	lru        *list.List // most recent at front
	mu         sync.Mutex
}

type cacheEntry struct {
	key         string
	icon        *label.Icon
	memorySize  int64
	element     *list.Element
	accessCount int
}

// NewIconCache creates a cache limited to maxMemoryBytes. Zero means no
// limit.
func NewIconCache(maxMemoryBytes int64) *IconCache {
	return &IconCache{
		maxMemory: maxMemoryBytes,
		icons:     make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get returns the cached icon for key or builds it with loader. A nil icon
// from loader is returned but not cached.
func (c *IconCache) Get(key string, loader func() (*label.Icon, error)) (*label.Icon, error) {
	c.mu.Lock()
	if entry, ok := c.icons[key]; ok {
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.mu.Unlock()
		return entry.icon, nil
	}
	c.mu.Unlock()

	icon, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load icon %q: %w", key, err)
	}
	if icon != nil {
		// too large to cache is not an error for the caller
		_ = c.Add(key, icon)
	}
	return icon, nil
}

// Add stores icon under key, evicting least recently used icons to make
// room.
func (c *IconCache) Add(key string, icon *label.Icon) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.icons[key]; ok {
		c.usedMemory += estimateIconMemory(icon) - entry.memorySize
		entry.icon = icon
		entry.memorySize = estimateIconMemory(icon)
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		return nil
	}

	memSize := estimateIconMemory(icon)
	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("icon too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}
	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		key:         key,
		icon:        icon,
		memorySize:  memSize,
		accessCount: 1,
	}
	entry.element = c.lru.PushFront(entry)
	c.icons[key] = entry
	c.usedMemory += memSize
	return nil
}

// evictLRU must be called with c.mu held.
func (c *IconCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.icons, entry.key)
	c.usedMemory -= entry.memorySize
}

// Remove drops key from the cache.
func (c *IconCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.icons[key]; ok {
		c.lru.Remove(entry.element)
		delete(c.icons, key)
		c.usedMemory -= entry.memorySize
	}
}

// Clear empties the cache.
func (c *IconCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.icons = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *IconCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, entry := range c.icons {
		total += entry.accessCount
	}
	return CacheStats{
		IconCount:   len(c.icons),
		UsedMemory:  c.usedMemory,
		MaxMemory:   c.maxMemory,
		TotalAccess: total,
	}
}

// CacheStats holds cache metrics.
type CacheStats struct {
	IconCount   int   // Number of icons currently cached
	UsedMemory  int64 // Estimated memory usage in bytes
	MaxMemory   int64 // Maximum memory limit in bytes
	TotalAccess int   // Accesses across all cached icons
}

// estimateIconMemory counts 4 bytes per pixel plus a fixed overhead.
func estimateIconMemory(icon *label.Icon) int64 {
	size := int64(256)
	if icon == nil || icon.Image == nil {
		return size
	}
	b := icon.Image.Bounds()
	if _, ok := icon.Image.(*image.Gray); ok {
		return size + int64(b.Dx()*b.Dy())
	}
	return size + int64(b.Dx()*b.Dy())*4
}
