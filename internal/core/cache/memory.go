package cache

import (
	"sync"
	"sync/atomic"

	"github.com/penwyp/go-peak-window/internal/util"
)

// Entry holds the scan results for one sequence
type Entry struct {
	Forward int
	Reverse int
	Steps   int
}

// Stats reports cache effectiveness
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// MemoryCache stores scan results keyed by the exact sequence.
// It lives for a single evaluation run and is never persisted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	hits    atomic.Int64
	misses  atomic.Int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]Entry),
	}
}

// Key returns the cache key for a sequence
func Key(seq []int) string {
	return util.SequenceKey(seq)
}

func (mc *MemoryCache) Get(seq []int) (Entry, bool) {
	key := Key(seq)

	mc.mu.RLock()
	entry, ok := mc.entries[key]
	mc.mu.RUnlock()

	if ok {
		mc.hits.Add(1)
	} else {
		mc.misses.Add(1)
	}
	return entry, ok
}

func (mc *MemoryCache) Set(seq []int, entry Entry) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries[Key(seq)] = entry
}

func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

// Clear drops all entries and resets counters
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries = make(map[string]Entry)
	mc.hits.Store(0)
	mc.misses.Store(0)
}

func (mc *MemoryCache) Stats() Stats {
	return Stats{
		Entries: mc.Len(),
		Hits:    mc.hits.Load(),
		Misses:  mc.misses.Load(),
	}
}
