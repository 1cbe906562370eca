package pathfinding

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	"elbow/core"
)

// PathCacheKey represents a unique key for caching routes
type PathCacheKey struct {
	From, To    core.Point
	RequestHash uint64 // Hash of directions, bounds, margin and clearances
}

// PathCache stores previously computed routes for reuse. A connector is
// re-rendered far more often than its endpoints move, so most lookups hit.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey]core.Path
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]core.Path),
		maxSize: maxSize,
	}
}

// Get retrieves a path from the cache if it exists
func (pc *PathCache) Get(key PathCacheKey) (core.Path, bool) {
	pc.mu.RLock()
	path, found := pc.cache[key]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
		path.Points = append([]core.Point(nil), path.Points...)
	} else {
		atomic.AddInt64(&pc.misses, 1)
	}

	return path, found
}

// Put stores a path in the cache
func (pc *PathCache) Put(key PathCacheKey, path core.Path) {
	if pc.maxSize <= 0 {
		return
	}
	path.Points = append([]core.Point(nil), path.Points...)

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, exists := pc.cache[key]; !exists && len(pc.cache) >= pc.maxSize {
		// Simple eviction: remove an arbitrary entry
		for k := range pc.cache {
			delete(pc.cache, k)
			atomic.AddInt64(&pc.evictions, 1)
			break
		}
	}

	pc.cache[key] = path
}

// Clear removes all entries from the cache
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey]core.Path)
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))

	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

// cacheKey derives the cache key of a request.
func cacheKey(req Request) PathCacheKey {
	h := fnv.New64a()
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeBounds := func(b core.Bounds) {
		writeFloat(b.Min.X)
		writeFloat(b.Min.Y)
		writeFloat(b.Max.X)
		writeFloat(b.Max.Y)
	}
	writeTerminal := func(t Terminal) {
		if t.Attached {
			writeFloat(1)
		} else {
			writeFloat(0)
		}
		h.Write([]byte(t.ShapeID))
		writeFloat(float64(t.Direction))
		writeBounds(t.Bounds)
		writeFloat(t.Clearance)
	}

	writeTerminal(req.Start)
	writeTerminal(req.End)
	writeFloat(req.Margin)
	for _, o := range req.Obstacles {
		h.Write([]byte(o.ID))
		writeBounds(o.Bounds)
		writeBounds(o.Padded)
	}

	return PathCacheKey{From: req.Start.Point, To: req.End.Point, RequestHash: h.Sum64()}
}
