package ranked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedwars-tracker/internal/domain"
)

func win(rp int) domain.MatchRecord {
	return domain.MatchRecord{Outcome: domain.OutcomeWin, RPChange: rp}
}

func loss(rp int) domain.MatchRecord {
	return domain.MatchRecord{Outcome: domain.OutcomeLoss, RPChange: rp}
}

func draw(rp int) domain.MatchRecord {
	return domain.MatchRecord{Outcome: domain.OutcomeDraw, RPChange: rp}
}

func shieldedLoss() domain.MatchRecord {
	return domain.MatchRecord{Outcome: domain.OutcomeLoss, RPChange: 0, Shielded: true}
}

func floatPtr(v float64) *float64 { return &v }

func TestEstimateRatingSeeds(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name       string
		div        Division
		currentRP  int
		prev       *float64
		newSeason  bool
		rating     float64
		deviation  float64
		volatility float64
	}{
		{
			name:       "mid bronze, established season",
			div:        Division{TierBronze, 1},
			currentRP:  45,
			rating:     45,
			deviation:  1.8,
			volatility: 0.08,
		},
		{
			name:       "fresh season without carry-over",
			div:        Division{TierGold, 2},
			newSeason:  true,
			rating:     900,
			deviation:  2.5,
			volatility: 0.08,
		},
		{
			name:       "fresh season blends previous rating",
			div:        Division{TierSilver, 1},
			currentRP:  50,
			prev:       floatPtr(800),
			newSeason:  true,
			rating:     625,
			deviation:  2.2,
			volatility: 0.06,
		},
		{
			name:       "established season ignores previous rating",
			div:        Division{TierSilver, 1},
			currentRP:  50,
			prev:       floatPtr(800),
			rating:     450,
			deviation:  1.8,
			volatility: 0.06,
		},
		{
			name:       "nightmare holds its anchor",
			div:        Division{TierNightmare, 0},
			currentRP:  500,
			rating:     2500,
			deviation:  1.8,
			volatility: 0.08,
		},
		{
			name:       "emerald interpolates toward nightmare",
			div:        Division{TierEmerald, 0},
			currentRP:  50,
			rating:     2200,
			deviation:  1.8,
			volatility: 0.08,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := e.EstimateRating(tt.div, tt.currentRP, nil, tt.prev, tt.newSeason)
			require.NoError(t, err)
			assert.Equal(t, tt.rating, est.Rating)
			assert.Equal(t, tt.deviation, est.Deviation)
			assert.Equal(t, tt.volatility, est.Volatility)
		})
	}
}

func TestEstimateRatingMatchesRPInsideMultiLevelTiers(t *testing.T) {
	e := newTestEngine()

	// With no history the interpolated estimate lands exactly on the
	// player's total RP anywhere below Emerald.
	for _, rp := range []int{45, 555, 1111, 1499, 1875} {
		rank := e.CalculateRank(rp)
		est, err := e.EstimateRating(rank.Division(), rank.DisplayRP, nil, nil, false)
		require.NoError(t, err)
		assert.Equal(t, float64(rp), est.Rating, "rp=%d", rp)
	}
}

func TestEstimateRatingReplay(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name       string
		div        Division
		currentRP  int
		history    []domain.MatchRecord
		rating     float64
		deviation  float64
		volatility float64
	}{
		{
			name:       "single expected win",
			div:        Division{TierPlatinum, 1},
			currentRP:  50,
			history:    []domain.MatchRecord{win(18)},
			rating:     1264,
			deviation:  1.77,
			volatility: 0.081,
		},
		{
			name:       "small win still gains the floor",
			div:        Division{TierBronze, 1},
			history:    []domain.MatchRecord{win(2)},
			rating:     5,
			deviation:  1.89,
			volatility: 0.087,
		},
		{
			name:       "small loss still drops the floor",
			div:        Division{TierDiamond, 3},
			history:    []domain.MatchRecord{loss(-4)},
			rating:     1795,
			deviation:  1.79,
			volatility: 0.082,
		},
		{
			name:       "draw moves half the swing",
			div:        Division{TierDiamond, 3},
			history:    []domain.MatchRecord{draw(2)},
			rating:     1801,
			deviation:  1.75,
			volatility: 0.08,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := e.EstimateRating(tt.div, tt.currentRP, tt.history, nil, false)
			require.NoError(t, err)
			assert.Equal(t, tt.rating, est.Rating)
			assert.Equal(t, tt.deviation, est.Deviation)
			assert.Equal(t, tt.volatility, est.Volatility)
		})
	}
}

func TestEstimateRatingShieldedLossesKeepFalling(t *testing.T) {
	e := newTestEngine()

	// Two shielded losses freeze displayed RP at the level floor but
	// the estimate keeps sliding below the division anchor.
	history := []domain.MatchRecord{shieldedLoss(), shieldedLoss()}
	est, err := e.EstimateRating(Division{TierGold, 1}, 0, history, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 781.0, est.Rating)
	assert.Less(t, est.Rating, 800.0)
	assert.Equal(t, 1.82, est.Deviation)
	assert.Equal(t, 0.086, est.Volatility)
}

func TestEstimateRatingReplayOrderMatters(t *testing.T) {
	e := newTestEngine()
	div := Division{TierDiamond, 3}

	forward, err := e.EstimateRating(div, 0, []domain.MatchRecord{win(30), loss(-20)}, nil, false)
	require.NoError(t, err)
	reversed, err := e.EstimateRating(div, 0, []domain.MatchRecord{loss(-20), win(30)}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, forward.Rating, reversed.Rating)
	assert.NotEqual(t, forward.Deviation, reversed.Deviation)
}

func TestEstimateRatingDeviationFloor(t *testing.T) {
	e := newTestEngine()

	history := make([]domain.MatchRecord, 0, 25)
	for i := 0; i < 25; i++ {
		history = append(history, draw(2))
	}
	est, err := e.EstimateRating(Division{TierDiamond, 3}, 0, history, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 1825.0, est.Rating)
	assert.Equal(t, 0.8, est.Deviation)
	assert.Equal(t, 0.08, est.Volatility)
}

func TestEstimateRatingUnknownDivision(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		div  Division
	}{
		{"level out of range", Division{TierGold, 5}},
		{"unknown tier", Division{Tier(42), 1}},
		{"numbered level in single-level tier", Division{TierEmerald, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.EstimateRating(tt.div, 0, nil, nil, false)
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, "division", verr.Field)
		})
	}
}
