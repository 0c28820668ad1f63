package server

import (
	"time"

	"bedwars-tracker/internal/api"
	"bedwars-tracker/internal/domain"
	"bedwars-tracker/internal/ranked"
	"bedwars-tracker/internal/service"
)

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type RankResponse struct {
	Tier      string `json:"tier"`
	Level     int    `json:"level"`
	Name      string `json:"name"`
	DisplayRP int    `json:"display_rp"`
	TotalRP   int    `json:"total_rp"`
	TierIndex int    `json:"tier_index"`
	RPToNext  int    `json:"rp_to_next"`
	NextRank  string `json:"next_rank,omitempty"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
}

type RatingResponse struct {
	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"deviation"`
	Volatility float64 `json:"volatility"`
}

type ProjectionResponse struct {
	ProjectedGain int     `json:"projected_gain"`
	RatingDiff    float64 `json:"rating_diff"`
	Alignment     string  `json:"alignment"`
}

type ShieldResponse struct {
	Active    bool `json:"active"`
	GamesUsed int  `json:"games_used"`
	MaxGames  int  `json:"max_games"`
	Warning   bool `json:"warning"`
}

type ConfidenceResponse struct {
	Label      string `json:"label"`
	Percentage int    `json:"percentage"`
}

type PlayerSummaryResponse struct {
	UserID       string             `json:"user_id"`
	Username     string             `json:"username"`
	DisplayName  string             `json:"display_name"`
	SeasonID     string             `json:"season_id"`
	NewSeason    bool               `json:"new_season"`
	Rank         RankResponse       `json:"rank"`
	Rating       RatingResponse     `json:"rating"`
	Projection   ProjectionResponse `json:"projection"`
	Shield       ShieldResponse     `json:"shield"`
	Confidence   ConfidenceResponse `json:"confidence"`
	SampleSize   int                `json:"sample_size"`
	TotalMatches int                `json:"total_matches"`
}

type MatchResponse struct {
	ID       string    `json:"id"`
	SeasonID string    `json:"season_id"`
	Outcome  string    `json:"outcome"`
	RPChange int       `json:"rp_change"`
	Shielded bool      `json:"shielded"`
	RPAfter  int       `json:"rp_after"`
	PlayedAt time.Time `json:"played_at"`
}

type MatchListResponse struct {
	Total   int             `json:"total"`
	Matches []MatchResponse `json:"matches"`
}

type SuggestionResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	RP          int    `json:"rp"`
	Rank        string `json:"rank"`
}

type SuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type LeaderboardEntryResponse struct {
	Position    int          `json:"position"`
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Rank        RankResponse `json:"rank"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}

type CacheStatsResponse struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

type StatusResponse struct {
	RateLimit api.RateLimitInfo  `json:"rate_limit"`
	RankCache CacheStatsResponse `json:"rank_cache"`
}

func toRankResponse(rank ranked.CalculatedRank, rpToNext int, next *ranked.Division, style ranked.TierStyle) RankResponse {
	resp := RankResponse{
		Tier:      rank.Tier.String(),
		Level:     rank.Level,
		Name:      rank.DisplayName(),
		DisplayRP: rank.DisplayRP,
		TotalRP:   rank.TotalRP,
		TierIndex: rank.TierIndex,
		RPToNext:  rpToNext,
		Color:     style.Color,
		Icon:      style.Icon,
	}
	if next != nil {
		resp.NextRank = next.String()
	}
	return resp
}

func toPlayerSummaryResponse(sum *service.RankedSummary) PlayerSummaryResponse {
	return PlayerSummaryResponse{
		UserID:      sum.Player.UserID,
		Username:    sum.Player.Username,
		DisplayName: sum.Player.DisplayName,
		SeasonID:    sum.Player.SeasonID,
		NewSeason:   sum.Player.NewSeason,
		Rank:        toRankResponse(sum.Rank, sum.RPToNext, sum.NextDivision, sum.Style),
		Rating: RatingResponse{
			Rating:     sum.Estimate.Rating,
			Deviation:  sum.Estimate.Deviation,
			Volatility: sum.Estimate.Volatility,
		},
		Projection: ProjectionResponse{
			ProjectedGain: sum.Projection.ProjectedGain,
			RatingDiff:    sum.Projection.RatingDiff,
			Alignment:     string(sum.Projection.Alignment),
		},
		Shield: ShieldResponse{
			Active:    sum.Shield.Active,
			GamesUsed: sum.Shield.GamesUsed,
			MaxGames:  ranked.ShieldMaxGames,
			Warning:   sum.Shield.Warning,
		},
		Confidence: ConfidenceResponse{
			Label:      string(sum.Confidence.Label),
			Percentage: sum.Confidence.Percentage,
		},
		SampleSize:   sum.SampleSize,
		TotalMatches: sum.TotalMatches,
	}
}

func toMatchListResponse(matches []domain.RankedMatch) MatchListResponse {
	resp := MatchListResponse{
		Total:   len(matches),
		Matches: make([]MatchResponse, len(matches)),
	}
	for i, m := range matches {
		resp.Matches[i] = MatchResponse{
			ID:       m.ID,
			SeasonID: m.SeasonID,
			Outcome:  string(m.Outcome),
			RPChange: m.RPChange,
			Shielded: m.Shielded,
			RPAfter:  m.RPAfter,
			PlayedAt: m.PlayedAt,
		}
	}
	return resp
}
