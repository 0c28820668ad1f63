package ranked

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bedwars-tracker/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestComputeShieldState(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		currentRP int
		history   []domain.MatchRecord
		explicit  *int
		want      ShieldState
	}{
		{
			name:      "two shielded losses at the floor",
			currentRP: 0,
			history:   []domain.MatchRecord{shieldedLoss(), shieldedLoss()},
			want:      ShieldState{Active: true, GamesUsed: 2, Warning: true},
		},
		{
			name:      "zero rp loss counts without the flag",
			currentRP: 0,
			history:   []domain.MatchRecord{loss(0)},
			want:      ShieldState{Active: true, GamesUsed: 1, Warning: false},
		},
		{
			name:      "regular losses do not consume the shield",
			currentRP: 0,
			history:   []domain.MatchRecord{loss(-12), loss(-15)},
			want:      ShieldState{Active: false, GamesUsed: 0, Warning: false},
		},
		{
			name:      "shield only engages at the level floor",
			currentRP: 37,
			history:   []domain.MatchRecord{shieldedLoss(), shieldedLoss(), shieldedLoss()},
			want:      ShieldState{Active: false, GamesUsed: 3, Warning: true},
		},
		{
			name:      "wins never count",
			currentRP: 0,
			history:   []domain.MatchRecord{{Outcome: domain.OutcomeWin, RPChange: 0}},
			want:      ShieldState{Active: false, GamesUsed: 0, Warning: false},
		},
		{
			name:      "explicit count overrides history",
			currentRP: 0,
			history:   []domain.MatchRecord{shieldedLoss()},
			explicit:  intPtr(3),
			want:      ShieldState{Active: true, GamesUsed: 3, Warning: true},
		},
		{
			name:      "explicit zero disarms",
			currentRP: 0,
			history:   []domain.MatchRecord{shieldedLoss()},
			explicit:  intPtr(0),
			want:      ShieldState{Active: false, GamesUsed: 0, Warning: false},
		},
		{
			name:      "empty history",
			currentRP: 0,
			want:      ShieldState{Active: false, GamesUsed: 0, Warning: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ComputeShieldState(tt.currentRP, tt.history, tt.explicit))
		})
	}
}

func TestShieldAndEstimateDiverge(t *testing.T) {
	e := newTestEngine()

	// The payload has to show both sides of a shielded streak: RP frozen
	// at the floor, rating already below the division anchor.
	history := []domain.MatchRecord{shieldedLoss(), shieldedLoss()}

	shield := e.ComputeShieldState(0, history, nil)
	assert.True(t, shield.Active)
	assert.True(t, shield.Warning)

	est, err := e.EstimateRating(Division{TierGold, 1}, 0, history, nil, false)
	assert.NoError(t, err)
	assert.Less(t, est.Rating, 800.0)
}
