package service

import (
	"context"
	"sync"
	"time"

	"bedwars-tracker/internal/constants"
	"bedwars-tracker/internal/domain"
	"bedwars-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type cachedBoard struct {
	players   []domain.Player
	fetchedAt time.Time
}

type LeaderboardService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger

	mu sync.RWMutex
	// boards caches Top results keyed by limit
	boards map[int]cachedBoard
}

func NewLeaderboardService(repo *repository.PlayerRepository, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		repo:   repo,
		logger: logger,
		boards: make(map[int]cachedBoard),
	}
}

func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]domain.Player, error) {
	if limit <= 0 {
		limit = constants.LeaderboardDefaultLimit
	}
	if limit > constants.LeaderboardMaxLimit {
		limit = constants.LeaderboardMaxLimit
	}

	s.mu.RLock()
	board, ok := s.boards[limit]
	s.mu.RUnlock()

	if ok && time.Since(board.fetchedAt) < constants.LeaderboardCacheTTL {
		s.logger.Debug().Int("limit", limit).Msg("returning cached leaderboard")
		return board.players, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.TopByRP(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("failed to load leaderboard")
		return nil, err
	}

	s.mu.Lock()
	s.boards[limit] = cachedBoard{players: players, fetchedAt: time.Now()}
	s.mu.Unlock()

	s.logger.Info().Int("limit", limit).Int("count", len(players)).Msg("leaderboard refreshed")
	return players, nil
}

// Invalidate drops every cached board. Standings changed, so the next
// read has to hit the database.
func (s *LeaderboardService) Invalidate() {
	s.mu.Lock()
	s.boards = make(map[int]cachedBoard)
	s.mu.Unlock()
}
