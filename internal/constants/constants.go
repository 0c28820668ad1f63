package constants

import "time"

const (
	PlayerRefreshTTL    = 5 * time.Minute
	MatchRefreshTTL     = 5 * time.Minute
	LeaderboardCacheTTL = 2 * time.Minute
	LastFetchDelay      = 10 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SearchSuggestionLimit   = 10
	RankedHistoryLimit      = 30
	LeaderboardDefaultLimit = 25
	LeaderboardMaxLimit     = 100
)
