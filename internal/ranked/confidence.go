package ranked

import (
	"math"

	"bedwars-tracker/internal/domain"
)

type ConfidenceLabel string

const (
	ConfidenceLow    ConfidenceLabel = "Low"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceHigh   ConfidenceLabel = "High"
)

// ConfidenceResult rates how much trust a rating estimate deserves
// given the sample it was built from.
type ConfidenceResult struct {
	Label      ConfidenceLabel
	Percentage int
}

const (
	confidenceHighAt   = 75
	confidenceMediumAt = 50

	// missingSeasonContextPenalty is deducted from every score
	// unconditionally.
	missingSeasonContextPenalty = 10

	shieldedSampleBonus = 5
)

// ScoreConfidence scores the estimate's trustworthiness from sample
// size, swing consistency, season freshness and win-rate plausibility.
// Purely additive; clamped to [0,100].
func (e *Engine) ScoreConfidence(history []domain.MatchRecord, newSeason bool) ConfidenceResult {
	score := sampleSizeScore(len(history))
	score += varianceScore(history)
	if newSeason {
		score += 10
	} else {
		score += 15
	}
	if len(history) >= 5 {
		score += winRateScore(history)
	}
	score -= missingSeasonContextPenalty
	if hasShielded(history) {
		score += shieldedSampleBonus
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return ConfidenceResult{Label: labelFor(score), Percentage: score}
}

func sampleSizeScore(n int) int {
	switch {
	case n >= 8:
		return 40
	case n >= 5:
		return 30
	case n >= 3:
		return 20
	default:
		return 10
	}
}

// varianceScore rewards consistent RP swings. An empty sample has no
// variance to speak of and takes the lowest bucket.
func varianceScore(history []domain.MatchRecord) int {
	if len(history) == 0 {
		return 10
	}
	switch v := rpSwingVariance(history); {
	case v < 25:
		return 30
	case v < 50:
		return 20
	default:
		return 10
	}
}

// rpSwingVariance is the population variance of |effectiveRpChange|
// across the sample.
func rpSwingVariance(history []domain.MatchRecord) float64 {
	mean := 0.0
	for _, m := range history {
		mean += math.Abs(effectiveRPChange(m))
	}
	mean /= float64(len(history))

	variance := 0.0
	for _, m := range history {
		d := math.Abs(effectiveRPChange(m)) - mean
		variance += d * d
	}
	return variance / float64(len(history))
}

func winRateScore(history []domain.MatchRecord) int {
	wins := 0
	for _, m := range history {
		if m.Outcome == domain.OutcomeWin {
			wins++
		}
	}
	switch rate := float64(wins) / float64(len(history)); {
	case rate >= 0.4 && rate <= 0.7:
		return 15
	case rate >= 0.3 && rate <= 0.8:
		return 10
	default:
		return 5
	}
}

func hasShielded(history []domain.MatchRecord) bool {
	for _, m := range history {
		if m.Shielded {
			return true
		}
	}
	return false
}

func labelFor(score int) ConfidenceLabel {
	switch {
	case score >= confidenceHighAt:
		return ConfidenceHigh
	case score >= confidenceMediumAt:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
