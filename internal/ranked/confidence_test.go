package ranked

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bedwars-tracker/internal/domain"
)

func TestScoreConfidence(t *testing.T) {
	e := newTestEngine()

	steadyWins := func(n int) []domain.MatchRecord {
		out := make([]domain.MatchRecord, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, win(15))
		}
		return out
	}

	tests := []struct {
		name       string
		history    []domain.MatchRecord
		newSeason  bool
		percentage int
		label      ConfidenceLabel
	}{
		{
			name:       "empty sample in a fresh season",
			newSeason:  true,
			percentage: 20,
			label:      ConfidenceLow,
		},
		{
			name:       "eight steady wins",
			history:    steadyWins(8),
			percentage: 80,
			label:      ConfidenceHigh,
		},
		{
			name: "balanced large sample",
			history: []domain.MatchRecord{
				win(15), win(15), win(15), win(15), win(15),
				loss(-12), loss(-12), loss(-12),
			},
			percentage: 90,
			label:      ConfidenceHigh,
		},
		{
			name: "losing record right on the high cutoff",
			history: []domain.MatchRecord{
				win(25), win(25), win(25),
				loss(-10), loss(-10), loss(-10), loss(-10),
				loss(-10), loss(-10), loss(-10),
			},
			percentage: 75,
			label:      ConfidenceHigh,
		},
		{
			name:       "small erratic sample",
			history:    []domain.MatchRecord{win(50), loss(-2), draw(1)},
			percentage: 35,
			label:      ConfidenceLow,
		},
		{
			name: "plausible but wild swings in a fresh season",
			history: []domain.MatchRecord{
				win(40), win(40), win(5), loss(-30), loss(-2),
			},
			newSeason:  true,
			percentage: 55,
			label:      ConfidenceMedium,
		},
		{
			name:       "three flat losses right on the medium cutoff",
			history:    []domain.MatchRecord{loss(-12), loss(-12), loss(-12)},
			newSeason:  true,
			percentage: 50,
			label:      ConfidenceMedium,
		},
		{
			name: "shielded matches add a little trust",
			history: []domain.MatchRecord{
				win(15), win(15), win(15), loss(-12), shieldedLoss(),
			},
			newSeason:  true,
			percentage: 80,
			label:      ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.ScoreConfidence(tt.history, tt.newSeason)
			assert.Equal(t, tt.percentage, result.Percentage)
			assert.Equal(t, tt.label, result.Label)
		})
	}
}

func TestScoreConfidenceEmptyHistoryStaysLow(t *testing.T) {
	e := newTestEngine()

	result := e.ScoreConfidence(nil, true)
	assert.Equal(t, ConfidenceLow, result.Label)
	assert.LessOrEqual(t, result.Percentage, 30)
}

func TestScoreConfidenceBounds(t *testing.T) {
	e := newTestEngine()

	// The additive weights cannot exceed the clamp range today; make
	// sure the result stays inside it anyway across assorted samples.
	samples := [][]domain.MatchRecord{
		nil,
		{win(15)},
		{loss(-12), loss(-12), loss(-12), loss(-12), loss(-12), loss(-12)},
		{win(15), win(15), win(15), win(15), win(15), win(15), win(15), win(15), shieldedLoss()},
	}
	for _, history := range samples {
		for _, newSeason := range []bool{true, false} {
			result := e.ScoreConfidence(history, newSeason)
			assert.GreaterOrEqual(t, result.Percentage, 0)
			assert.LessOrEqual(t, result.Percentage, 100)
		}
	}
}
