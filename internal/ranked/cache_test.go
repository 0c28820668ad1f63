package ranked

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCacheHitMiss(t *testing.T) {
	cache := NewRankCache(10)
	e := NewEngineWithCache(cache, zerolog.Nop())

	first := e.CalculateRank(1250)
	second := e.CalculateRank(1250)
	assert.Equal(t, first, second)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestRankCacheFIFOEviction(t *testing.T) {
	cache := NewRankCache(3)
	e := NewEngineWithCache(cache, zerolog.Nop())

	for _, rp := range []int{10, 20, 30} {
		e.CalculateRank(rp)
	}
	require.Equal(t, 3, cache.Len())

	// A fourth distinct key pushes out the oldest one.
	e.CalculateRank(40)
	assert.Equal(t, 3, cache.Len())

	_, ok := cache.Get(10)
	assert.False(t, ok)
	_, ok = cache.Get(20)
	assert.True(t, ok)
	_, ok = cache.Get(40)
	assert.True(t, ok)
}

func TestRankCacheEvictionIgnoresRecency(t *testing.T) {
	cache := NewRankCache(2)
	e := NewEngineWithCache(cache, zerolog.Nop())

	e.CalculateRank(10)
	e.CalculateRank(20)
	e.CalculateRank(10) // hit; FIFO order unchanged
	e.CalculateRank(30)

	_, ok := cache.Get(10)
	assert.False(t, ok, "oldest key should be evicted even after a recent hit")
	_, ok = cache.Get(20)
	assert.True(t, ok)
}

func TestRankCacheReset(t *testing.T) {
	cache := NewRankCache(5)
	e := NewEngineWithCache(cache, zerolog.Nop())

	e.CalculateRank(100)
	e.CalculateRank(100)
	cache.Reset()

	stats := cache.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, stats.Size)
}

func TestEngineWithoutCache(t *testing.T) {
	e := NewEngineWithCache(nil, zerolog.Nop())

	rank := e.CalculateRank(1950)
	assert.Equal(t, TierEmerald, rank.Tier)
	assert.Equal(t, CacheStats{}, e.CacheStats())
}

func TestEngineCacheStats(t *testing.T) {
	e := NewEngine(zerolog.Nop())

	e.CalculateRank(42)
	e.CalculateRank(42)
	e.CalculateRank(7)

	stats := e.CacheStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 2, stats.Size)

	e.ResetCache()
	assert.Equal(t, CacheStats{}, e.CacheStats())
}
