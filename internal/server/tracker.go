package server

import (
	"net/http"
	"strconv"
	"time"

	"bedwars-tracker/internal/api"
	"bedwars-tracker/internal/ranked"
	"bedwars-tracker/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	playerSvc *service.PlayerService
	matchSvc  *service.MatchService
	rankedSvc *service.RankedService
	boardSvc  *service.LeaderboardService
	stats     *api.StatsClient
	engine    *ranked.Engine
	logger    zerolog.Logger
}

func NewTrackerServer(
	playerSvc *service.PlayerService,
	matchSvc *service.MatchService,
	rankedSvc *service.RankedService,
	boardSvc *service.LeaderboardService,
	stats *api.StatsClient,
	engine *ranked.Engine,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		playerSvc: playerSvc,
		matchSvc:  matchSvc,
		rankedSvc: rankedSvc,
		boardSvc:  boardSvc,
		stats:     stats,
		engine:    engine,
		logger:    logger,
	}
}

// Routes builds the public router. /players/search is registered before
// /players/{username} so the literal segment wins.
func (s *TrackerServer) Routes() *mux.Router {
	router := mux.NewRouter()

	apiV1 := router.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/health", s.handleHealth).Methods("GET")
	apiV1.HandleFunc("/status", s.handleStatus).Methods("GET")
	apiV1.HandleFunc("/players/search", s.handleSearch).Methods("GET")
	apiV1.HandleFunc("/players/{username}", s.handleGetPlayer).Methods("GET")
	apiV1.HandleFunc("/players/{username}/matches", s.handleGetMatches).Methods("GET")
	apiV1.HandleFunc("/ranks/preview", s.handlePreview).Methods("GET")
	apiV1.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")

	return router
}

func (s *TrackerServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Time: time.Now().UTC()})
}

func (s *TrackerServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	cacheStats := s.engine.CacheStats()
	s.writeJSON(w, http.StatusOK, StatusResponse{
		RateLimit: s.stats.GetRateLimitInfo(),
		RankCache: CacheStatsResponse{
			Size:   cacheStats.Size,
			Hits:   cacheStats.Hits,
			Misses: cacheStats.Misses,
		},
	})
}

func (s *TrackerServer) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	refresh := r.URL.Query().Get("refresh") == "true"

	summary, err := s.rankedSvc.GetSummary(r.Context(), username, refresh)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toPlayerSummaryResponse(summary))
}

func (s *TrackerServer) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	refresh := r.URL.Query().Get("refresh") == "true"

	player, err := s.playerSvc.GetPlayer(r.Context(), username, false)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	matches, err := s.matchSvc.GetHistory(r.Context(), player.UserID, refresh)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toMatchListResponse(matches))
}

func (s *TrackerServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, r, "query parameter q is required", http.StatusBadRequest)
		return
	}

	players, err := s.playerSvc.SearchSuggestions(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := SuggestionsResponse{Suggestions: make([]SuggestionResponse, len(players))}
	for i, p := range players {
		rank := s.engine.CalculateRank(p.RP)
		resp.Suggestions[i] = SuggestionResponse{
			UserID:      p.UserID,
			Username:    p.Username,
			DisplayName: p.DisplayName,
			RP:          p.RP,
			Rank:        rank.DisplayName(),
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *TrackerServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	rpStr := r.URL.Query().Get("rp")
	if rpStr == "" {
		s.writeError(w, r, "query parameter rp is required", http.StatusBadRequest)
		return
	}

	rp, err := strconv.Atoi(rpStr)
	if err != nil {
		s.writeError(w, r, "rp must be an integer", http.StatusBadRequest)
		return
	}

	preview, err := s.rankedSvc.Preview(rp)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toRankResponse(preview.Rank, preview.RPToNext, preview.NextDivision, preview.Style))
}

func (s *TrackerServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	players, err := s.boardSvc.Top(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := LeaderboardResponse{Entries: make([]LeaderboardEntryResponse, len(players))}
	for i, p := range players {
		rank := s.engine.CalculateRank(p.RP)
		var next *ranked.Division
		if n, ok := ranked.NextDivision(rank.Division()); ok {
			next = &n
		}
		resp.Entries[i] = LeaderboardEntryResponse{
			Position:    i + 1,
			UserID:      p.UserID,
			Username:    p.Username,
			DisplayName: p.DisplayName,
			Rank:        toRankResponse(rank, ranked.RPToNext(rank), next, ranked.TierStyleFor(rank.Tier)),
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}
