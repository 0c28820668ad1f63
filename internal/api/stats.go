package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"bedwars-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// StatsClient talks to the community stats API that exposes BedWars
// accounts, ranked standings and match history.
type StatsClient struct {
	apiKey      string
	baseURL     string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Bucket    string `json:"bucket"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewStatsClient(cfg *config.Config) *StatsClient {
	return &StatsClient{
		apiKey:  cfg.StatsAPIKey,
		baseURL: cfg.StatsAPIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Limit:     90,
			Remaining: 90,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *StatsClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *StatsClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if bucket := string(resp.Header.Peek("X-Ratelimit-Bucket")); bucket != "" {
		c.rateLimit.Bucket = bucket
	}
	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *StatsClient) GetAccount(ctx context.Context, username string) (*AccountResponse, error) {
	url := fmt.Sprintf("%s/v1/accounts/by-username/%s", c.baseURL, username)
	return doRequest[AccountResponse](ctx, c, url)
}

func (c *StatsClient) GetRankedStanding(ctx context.Context, userID string) (*StandingResponse, error) {
	url := fmt.Sprintf("%s/v1/players/%s/ranked", c.baseURL, userID)
	return doRequest[StandingResponse](ctx, c, url)
}

func (c *StatsClient) GetRecentMatches(ctx context.Context, userID string) (*MatchesResponse, error) {
	url := fmt.Sprintf("%s/v1/players/%s/matches?queue=ranked", c.baseURL, userID)
	return doRequest[MatchesResponse](ctx, c, url)
}

func doRequest[T any](ctx context.Context, client *StatsClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() == fasthttp.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type AccountResponse struct {
	Status int         `json:"status"`
	Data   AccountData `json:"data"`
}

type AccountData struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type StandingResponse struct {
	Status int          `json:"status"`
	Data   StandingData `json:"data"`
}

type StandingData struct {
	RP               int      `json:"rp"`
	SeasonID         string   `json:"season_id"`
	NewSeason        bool     `json:"new_season"`
	ShieldGames      int      `json:"shield_games_used"`
	PrevSeasonRating *float64 `json:"previous_season_rating"`
}

type MatchesResponse struct {
	Status  int               `json:"status"`
	Results ResponseStats     `json:"results"`
	Data    []RankedMatchData `json:"data"`
}

// RankedMatchData is one history entry as the API reports it, oldest
// first within a page.
type RankedMatchData struct {
	ID       string    `json:"id"`
	SeasonID string    `json:"season_id"`
	Outcome  string    `json:"outcome"`
	RPChange int       `json:"rp_change"`
	Shielded bool      `json:"shielded"`
	RPAfter  int       `json:"rp_after"`
	PlayedAt time.Time `json:"played_at"`
}

type ResponseStats struct {
	Total    int `json:"total"`
	Returned int `json:"returned"`
}
