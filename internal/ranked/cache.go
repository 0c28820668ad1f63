package ranked

import "sync"

// DefaultCacheSize bounds the rank memo cache.
const DefaultCacheSize = 1000

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// RankCache memoizes RP to rank mappings. Eviction is FIFO: once the
// cap is reached the oldest key goes, regardless of how recently it was
// hit. Safe for concurrent use.
type RankCache struct {
	mu      sync.Mutex
	cap     int
	entries map[int]CalculatedRank
	order   []int
	hits    uint64
	misses  uint64
}

func NewRankCache(capacity int) *RankCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &RankCache{
		cap:     capacity,
		entries: make(map[int]CalculatedRank, capacity),
		order:   make([]int, 0, capacity),
	}
}

func (c *RankCache) Get(totalRP int) (CalculatedRank, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rank, ok := c.entries[totalRP]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return rank, ok
}

func (c *RankCache) Set(totalRP int, rank CalculatedRank) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[totalRP]; ok {
		c.entries[totalRP] = rank
		return
	}
	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[totalRP] = rank
	c.order = append(c.order, totalRP)
}

func (c *RankCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every entry and zeroes the counters.
func (c *RankCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]CalculatedRank, c.cap)
	c.order = c.order[:0]
	c.hits, c.misses = 0, 0
}

func (c *RankCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.entries)}
}
