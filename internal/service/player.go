package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"bedwars-tracker/internal/api"
	"bedwars-tracker/internal/constants"
	"bedwars-tracker/internal/domain"
	"bedwars-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerService struct {
	stats  *api.StatsClient
	repo   *repository.PlayerRepository
	boards *LeaderboardService
	logger zerolog.Logger
}

func NewPlayerService(stats *api.StatsClient, repo *repository.PlayerRepository, boards *LeaderboardService, logger zerolog.Logger) *PlayerService {
	return &PlayerService{stats: stats, repo: repo, boards: boards, logger: logger}
}

func (s *PlayerService) GetPlayer(ctx context.Context, username string, refresh bool) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	username, err := url.QueryUnescape(username)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape username: %w", err)
	}

	s.logger.Info().Str("username", username).Bool("refresh", refresh).Msg("getting player")

	var shouldRefresh bool

	player, err := s.repo.GetByUsername(ctx, username)
	if err == nil && player != nil {
		shouldRefresh, err = s.repo.ShouldRefresh(ctx, player.UserID, constants.PlayerRefreshTTL)
		if err != nil {
			return nil, err
		}

		if refresh {
			shouldRefresh = true
			s.logger.Debug().Str("user_id", player.UserID).Msg("manual refresh requested")
		}

		if !shouldRefresh {
			s.logger.Info().Str("user_id", player.UserID).Msg("returning cached player")
			return player, nil
		}
	} else {
		shouldRefresh = true
		s.logger.Debug().Str("username", username).Msg("player not found in database, fetching from API")
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	account, err := s.stats.GetAccount(apiCtx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to fetch account")
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	standingCtx, standingCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer standingCancel()

	standing, err := s.stats.GetRankedStanding(standingCtx, account.Data.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", account.Data.UserID).Msg("failed to fetch ranked standing")
		return nil, fmt.Errorf("failed to fetch ranked standing: %w", err)
	}

	player = &domain.Player{
		UserID:           account.Data.UserID,
		Username:         account.Data.Username,
		DisplayName:      account.Data.DisplayName,
		RP:               standing.Data.RP,
		ShieldGames:      standing.Data.ShieldGames,
		SeasonID:         standing.Data.SeasonID,
		NewSeason:        standing.Data.NewSeason,
		PrevSeasonRating: standing.Data.PrevSeasonRating,
	}

	if err := s.repo.Upsert(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("user_id", player.UserID).Msg("failed to upsert player")
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	s.boards.Invalidate()

	userID := player.UserID
	g := new(errgroup.Group)
	g.Go(func() error {
		time.Sleep(constants.LastFetchDelay)
		s.logger.Debug().Str("user_id", userID).Msg("setting last fetch at")
		if err := s.repo.SetLastFetchAt(userID, time.Now()); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to set last fetch at")
			return err
		}
		return nil
	})

	go func() {
		if err := g.Wait(); err != nil {
			s.logger.Error().Err(err).Msg("background task failed")
		}
	}()

	s.logger.Info().Str("user_id", player.UserID).Msg("player fetched successfully")
	return player, nil
}

func (s *PlayerService) SearchSuggestions(ctx context.Context, query string) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Debug().Str("query", query).Msg("searching players")

	players, err := s.repo.Search(ctx, query, constants.SearchSuggestionLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search players")
		return nil, err
	}

	s.logger.Info().Int("count", len(players)).Str("query", query).Msg("search completed")
	return players, nil
}

func (s *PlayerService) GetPlayerByUserID(ctx context.Context, userID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Debug().Str("user_id", userID).Msg("getting player by user id")

	player, err := s.repo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("player not found")
		return nil, err
	}

	return player, nil
}
