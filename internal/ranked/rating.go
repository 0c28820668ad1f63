package ranked

import (
	"fmt"
	"math"

	"bedwars-tracker/internal/domain"
)

// The tier ladder only resolves skill to within a level, so RP alone is
// too coarse for matchmaking-quality comparisons. The estimator anchors
// a continuous rating on the player's division, then replays recent
// results to pull the estimate toward observed performance.

// referenceRatings anchors each division on the continuous scale. The
// values must increase strictly from the bottom of the ladder to the
// top; init below enforces that.
var referenceRatings = map[Division]float64{
	{Tier: TierBronze, Level: 1}:    0,
	{Tier: TierBronze, Level: 2}:    100,
	{Tier: TierBronze, Level: 3}:    200,
	{Tier: TierBronze, Level: 4}:    300,
	{Tier: TierSilver, Level: 1}:    400,
	{Tier: TierSilver, Level: 2}:    500,
	{Tier: TierSilver, Level: 3}:    600,
	{Tier: TierSilver, Level: 4}:    700,
	{Tier: TierGold, Level: 1}:      800,
	{Tier: TierGold, Level: 2}:      900,
	{Tier: TierGold, Level: 3}:      1000,
	{Tier: TierGold, Level: 4}:      1100,
	{Tier: TierPlatinum, Level: 1}:  1200,
	{Tier: TierPlatinum, Level: 2}:  1300,
	{Tier: TierPlatinum, Level: 3}:  1400,
	{Tier: TierPlatinum, Level: 4}:  1500,
	{Tier: TierDiamond, Level: 1}:   1600,
	{Tier: TierDiamond, Level: 2}:   1700,
	{Tier: TierDiamond, Level: 3}:   1800,
	{Tier: TierEmerald, Level: 0}:   1900,
	{Tier: TierNightmare, Level: 0}: 2500,
}

func init() {
	prev := math.Inf(-1)
	for _, div := range Divisions() {
		ref, ok := referenceRatings[div]
		if !ok {
			panic(fmt.Sprintf("ranked: no reference rating for %s", div))
		}
		if ref <= prev {
			panic(fmt.Sprintf("ranked: reference rating for %s does not increase", div))
		}
		prev = ref
	}
}

// Replay tuning. Base values are the RP swings a mid-ladder player
// sees; ratingPivot scales the expectation up for players below that
// point and down for players above it.
const (
	ratingPivot = 1800.0

	baseExpectedWin  = 15.0
	baseExpectedLoss = -12.0
	baseExpectedDraw = 2.0

	expectedScaleMin = 0.5
	expectedScaleMax = 2.0

	// shieldedLossRP stands in for the frozen rpChange of a shielded
	// loss so the estimate keeps moving while displayed RP does not.
	shieldedLossRP = -12.0

	surpriseDivisor = 20.0

	ratingStepScale = 0.8
	drawStepScale   = 0.5

	winFloorGain  = 5.0
	lossFloorDrop = -5.0

	deviationDecay  = 0.05
	deviationGain   = 0.1
	deviationFloor  = 0.8
	volatilityGain  = 0.005
	volatilityFloor = 0.04

	rdSeedStable    = 1.8
	rdSeedNewSeason = 2.5
	rdSeedCarryOver = 2.2
	volSeedFresh    = 0.08
	volSeedWithPrev = 0.06
)

// RatingEstimate is the Glicko-style skill triple. Deviation narrows as
// results match expectations and widens with surprises; volatility only
// accumulates. No hard bounds on the rating itself.
type RatingEstimate struct {
	Rating     float64
	Deviation  float64
	Volatility float64
}

// EstimateRating derives the skill estimate for a player sitting in div
// with currentRP progress into the level, then replays history in the
// order supplied. That order is authoritative and is never re-sorted;
// callers hand matches over oldest first.
func (e *Engine) EstimateRating(div Division, currentRP int, history []domain.MatchRecord, prevSeasonRating *float64, newSeason bool) (RatingEstimate, error) {
	base, err := interpolatedRating(div, currentRP)
	if err != nil {
		return RatingEstimate{}, err
	}

	rating := base
	rd := rdSeedStable
	if newSeason {
		rd = rdSeedNewSeason
	}
	vol := volSeedFresh
	if prevSeasonRating != nil {
		vol = volSeedWithPrev
	}
	if newSeason && prevSeasonRating != nil {
		rating = (*prevSeasonRating + base) / 2
		rd = rdSeedCarryOver
	}

	for _, m := range history {
		eff := effectiveRPChange(m)
		expected := expectedRPChange(m.Outcome, rating)
		surprise := math.Abs(eff-expected) / surpriseDivisor

		switch m.Outcome {
		case domain.OutcomeWin:
			rating += math.Max(winFloorGain, eff*ratingStepScale)
		case domain.OutcomeLoss:
			rating += math.Min(lossFloorDrop, eff*ratingStepScale)
		default:
			rating += eff * drawStepScale
		}

		rd = math.Max(deviationFloor, rd-deviationDecay+surprise*deviationGain)
		vol = math.Max(volatilityFloor, vol+surprise*volatilityGain)
	}

	return RatingEstimate{
		Rating:     math.Round(rating),
		Deviation:  round2(rd),
		Volatility: round3(vol),
	}, nil
}

// interpolatedRating positions a player between their division's anchor
// and the next one by intra-level progress. The top division has no
// next and stays on its own anchor.
func interpolatedRating(div Division, currentRP int) (float64, error) {
	ref, ok := referenceRatings[div]
	if !ok {
		return 0, &ValidationError{
			Field:  "division",
			Reason: fmt.Sprintf("unknown division %s", div),
		}
	}
	nextRef := ref
	if next, hasNext := NextDivision(div); hasNext {
		nextRef = referenceRatings[next]
	}
	progress := clampF(float64(currentRP)/levelSpanRP, 0, 1)
	return ref + (nextRef-ref)*progress, nil
}

func expectedRPChange(outcome domain.Outcome, rating float64) float64 {
	base := baseExpectedDraw
	switch outcome {
	case domain.OutcomeWin:
		base = baseExpectedWin
	case domain.OutcomeLoss:
		base = baseExpectedLoss
	}
	return base * clampF(ratingPivot/rating, expectedScaleMin, expectedScaleMax)
}

func effectiveRPChange(m domain.MatchRecord) float64 {
	if m.Shielded {
		return shieldedLossRP
	}
	return float64(m.RPChange)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
