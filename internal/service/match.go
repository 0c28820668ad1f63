package service

import (
	"context"
	"fmt"

	"bedwars-tracker/internal/api"
	"bedwars-tracker/internal/constants"
	"bedwars-tracker/internal/domain"
	"bedwars-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchService struct {
	stats      *api.StatsClient
	matchRepo  *repository.MatchRepository
	playerRepo *repository.PlayerRepository
	boards     *LeaderboardService
	logger     zerolog.Logger
}

func NewMatchService(stats *api.StatsClient, matchRepo *repository.MatchRepository, playerRepo *repository.PlayerRepository, boards *LeaderboardService, logger zerolog.Logger) *MatchService {
	return &MatchService{stats: stats, matchRepo: matchRepo, playerRepo: playerRepo, boards: boards, logger: logger}
}

func (s *MatchService) GetHistory(ctx context.Context, userID string, refresh bool) ([]domain.RankedMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, err := s.playerRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("player not found")
		return nil, fmt.Errorf("player not found: %w", err)
	}

	s.logger.Info().Str("username", player.Username).Str("user_id", userID).Msg("fetching match history")

	shouldRefresh, err := s.playerRepo.ShouldRefresh(ctx, userID, constants.MatchRefreshTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to check if history should be refreshed")
		return nil, fmt.Errorf("failed to check if history should be refreshed: %w", err)
	}

	stored, err := s.matchRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to count stored matches")
		return nil, fmt.Errorf("failed to count stored matches: %w", err)
	}

	if stored == 0 {
		s.logger.Debug().Str("user_id", userID).Msg("no stored matches, forcing refresh")
		shouldRefresh = true
	}

	if refresh {
		s.logger.Debug().Str("user_id", userID).Msg("manual refresh requested")
		shouldRefresh = true
	}

	s.logger.Debug().Bool("should_refresh", shouldRefresh).Str("user_id", userID).Msg("refresh decision for history")

	if !shouldRefresh {
		s.logger.Info().Str("user_id", userID).Msg("returning cached history")
		return s.matchRepo.ListByUser(ctx, userID, constants.RankedHistoryLimit)
	}

	matches, standing, err := s.fetchLiveData(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to fetch live data")
		return nil, fmt.Errorf("failed to fetch live data: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Int("match_count", len(matches.Data)).Msg("upserting live history")
	s.upsertHistory(ctx, player, matches.Data)
	s.applyStanding(ctx, player, standing.Data)

	s.logger.Info().Str("user_id", userID).Msg("history fetched successfully")
	return s.matchRepo.ListByUser(ctx, userID, constants.RankedHistoryLimit)
}

func (s *MatchService) fetchLiveData(ctx context.Context, userID string) (*api.MatchesResponse, *api.StandingResponse, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var matches *api.MatchesResponse
	var standing *api.StandingResponse

	g.Go(func() error {
		var err error
		matches, err = s.stats.GetRecentMatches(gCtx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		standing, err = s.stats.GetRankedStanding(gCtx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to fetch live data from API")
		return nil, nil, fmt.Errorf("failed to fetch live data: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Int("match_count", len(matches.Data)).Msg("live data fetched successfully")
	return matches, standing, nil
}

func (s *MatchService) upsertHistory(ctx context.Context, player *domain.Player, matches []api.RankedMatchData) {
	var records []domain.RankedMatch
	for _, m := range matches {
		outcome := domain.Outcome(m.Outcome)
		if !outcome.Valid() {
			s.logger.Warn().Str("match_id", m.ID).Str("outcome", m.Outcome).Msg("skipping match with unknown outcome")
			continue
		}

		records = append(records, domain.RankedMatch{
			ID:       m.ID,
			UserID:   player.UserID,
			SeasonID: m.SeasonID,
			Outcome:  outcome,
			RPChange: m.RPChange,
			Shielded: m.Shielded,
			RPAfter:  m.RPAfter,
			PlayedAt: m.PlayedAt,
		})
	}

	if len(records) == 0 {
		return
	}

	if err := s.matchRepo.UpsertBatch(ctx, records); err != nil {
		s.logger.Error().Err(err).Str("user_id", player.UserID).Msg("failed to upsert match history")
	}
}

func (s *MatchService) applyStanding(ctx context.Context, player *domain.Player, standing api.StandingData) {
	player.RP = standing.RP
	player.ShieldGames = standing.ShieldGames
	player.SeasonID = standing.SeasonID
	player.NewSeason = standing.NewSeason
	player.PrevSeasonRating = standing.PrevSeasonRating

	if err := s.playerRepo.UpdateStanding(ctx, player); err != nil {
		s.logger.Warn().Err(err).Str("user_id", player.UserID).Msg("failed to update standing")
		return
	}

	s.boards.Invalidate()
}
