package service

import (
	"context"

	"bedwars-tracker/internal/domain"
	"bedwars-tracker/internal/ranked"

	"github.com/rs/zerolog"
)

type RankedService struct {
	playerSvc *PlayerService
	matchSvc  *MatchService
	engine    *ranked.Engine
	logger    zerolog.Logger
}

func NewRankedService(playerSvc *PlayerService, matchSvc *MatchService, engine *ranked.Engine, logger zerolog.Logger) *RankedService {
	return &RankedService{playerSvc: playerSvc, matchSvc: matchSvc, engine: engine, logger: logger}
}

// RankedSummary is everything the tracker shows on a player's ranked
// card: the mapped rank, the skill estimate with its projection, shield
// state and how much to trust the numbers.
type RankedSummary struct {
	Player       domain.Player
	Rank         ranked.CalculatedRank
	RPToNext     int
	NextDivision *ranked.Division
	Style        ranked.TierStyle
	Estimate     ranked.RatingEstimate
	Projection   ranked.Projection
	Shield       ranked.ShieldState
	Confidence   ranked.ConfidenceResult
	SampleSize   int
	TotalMatches int
}

type RankPreview struct {
	Rank         ranked.CalculatedRank
	RPToNext     int
	NextDivision *ranked.Division
	Style        ranked.TierStyle
}

func (s *RankedService) GetSummary(ctx context.Context, username string, refresh bool) (*RankedSummary, error) {
	player, err := s.playerSvc.GetPlayer(ctx, username, refresh)
	if err != nil {
		return nil, err
	}

	history, err := s.matchSvc.GetHistory(ctx, player.UserID, refresh)
	if err != nil {
		return nil, err
	}

	// GetHistory can move the standing, re-read before deriving
	player, err = s.playerSvc.GetPlayerByUserID(ctx, player.UserID)
	if err != nil {
		return nil, err
	}

	if err := ranked.ValidateTotalRP(player.RP); err != nil {
		s.logger.Warn().Err(err).Str("user_id", player.UserID).Int("rp", player.RP).Msg("standing rejected")
		return nil, err
	}

	// only the current season feeds the replay
	var seasonMatches []domain.RankedMatch
	for _, m := range history {
		if m.SeasonID == player.SeasonID {
			seasonMatches = append(seasonMatches, m)
		}
	}
	records := domain.MatchRecords(seasonMatches)

	rank := s.engine.CalculateRank(player.RP)

	var explicitShield *int
	if player.ShieldGames > 0 {
		explicitShield = &player.ShieldGames
	}
	shield := s.engine.ComputeShieldState(rank.DisplayRP, records, explicitShield)

	est, err := s.engine.EstimateRating(rank.Division(), rank.DisplayRP, records, player.PrevSeasonRating, player.NewSeason)
	if err != nil {
		return nil, err
	}

	proj, err := s.engine.ProjectNext(est, rank.Division(), rank.DisplayRP)
	if err != nil {
		return nil, err
	}

	summary := &RankedSummary{
		Player:       *player,
		Rank:         rank,
		RPToNext:     ranked.RPToNext(rank),
		Style:        ranked.TierStyleFor(rank.Tier),
		Estimate:     est,
		Projection:   proj,
		Shield:       shield,
		Confidence:   s.engine.ScoreConfidence(records, player.NewSeason),
		SampleSize:   len(records),
		TotalMatches: len(history),
	}
	if next, ok := ranked.NextDivision(rank.Division()); ok {
		summary.NextDivision = &next
	}

	s.logger.Info().
		Str("user_id", player.UserID).
		Str("rank", rank.DisplayName()).
		Float64("rating", est.Rating).
		Int("projected_gain", proj.ProjectedGain).
		Msg("ranked summary built")

	return summary, nil
}

// Preview maps a raw RP value without touching player data. Used by the
// ladder preview endpoint.
func (s *RankedService) Preview(totalRP int) (*RankPreview, error) {
	if err := ranked.ValidateTotalRP(totalRP); err != nil {
		return nil, err
	}

	rank := s.engine.CalculateRank(totalRP)
	preview := &RankPreview{
		Rank:     rank,
		RPToNext: ranked.RPToNext(rank),
		Style:    ranked.TierStyleFor(rank.Tier),
	}
	if next, ok := ranked.NextDivision(rank.Division()); ok {
		preview.NextDivision = &next
	}
	return preview, nil
}
