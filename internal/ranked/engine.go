// Package ranked derives display ranking data from raw RP and ranked
// match history: ladder placement, a Glicko-inspired skill estimate, a
// next-match RP projection, demotion-shield state and a confidence
// score for the whole estimate. Every computation is a pure
// transformation of its inputs; nothing here reads or writes state
// beyond an optional memo cache for rank lookups.
package ranked

import "github.com/rs/zerolog"

// Engine bundles the rank and rating computations behind one
// injectable component.
type Engine struct {
	cache  *RankCache
	logger zerolog.Logger
}

// NewEngine returns an engine with the default memo cache.
func NewEngine(logger zerolog.Logger) *Engine {
	return NewEngineWithCache(NewRankCache(DefaultCacheSize), logger)
}

// NewEngineWithCache lets callers size or disable memoization; a nil
// cache turns it off entirely.
func NewEngineWithCache(cache *RankCache, logger zerolog.Logger) *Engine {
	return &Engine{
		cache:  cache,
		logger: logger.With().Str("component", "ranked-engine").Logger(),
	}
}

// CalculateRank maps a total RP value onto the ladder. Negative RP
// clamps to zero.
func (e *Engine) CalculateRank(totalRP int) CalculatedRank {
	if totalRP < 0 {
		totalRP = 0
	}
	if e.cache != nil {
		if rank, ok := e.cache.Get(totalRP); ok {
			return rank
		}
	}
	rank := e.mapRank(totalRP)
	if e.cache != nil {
		e.cache.Set(totalRP, rank)
	}
	return rank
}

func (e *Engine) mapRank(totalRP int) CalculatedRank {
	def, ok := lookupTier(totalRP)
	if !ok {
		// Unreachable while the top tier stays unbounded; logged loudly
		// so a broken table cannot pass silently.
		e.logger.Error().Int("total_rp", totalRP).Msg("no tier matched, defaulting to Bronze 1")
		def = tierTable[0]
	}
	return rankWithin(def, totalRP)
}

// CacheStats exposes memo-cache counters, zero values when the cache is
// disabled.
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.Stats()
}

// ResetCache clears the memo cache if one is attached.
func (e *Engine) ResetCache() {
	if e.cache != nil {
		e.cache.Reset()
	}
}
