package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeValid(t *testing.T) {
	assert.True(t, OutcomeWin.Valid())
	assert.True(t, OutcomeLoss.Valid())
	assert.True(t, OutcomeDraw.Valid())
	assert.False(t, Outcome("forfeit").Valid())
	assert.False(t, Outcome("").Valid())
}

func TestMatchRecordsKeepOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	matches := []RankedMatch{
		{ID: "a", UserID: "u1", Outcome: OutcomeWin, RPChange: 18, RPAfter: 63, PlayedAt: base},
		{ID: "b", UserID: "u1", Outcome: OutcomeLoss, RPChange: 0, Shielded: true, RPAfter: 63, PlayedAt: base.Add(time.Hour)},
		{ID: "c", UserID: "u1", Outcome: OutcomeDraw, RPChange: 2, RPAfter: 65, PlayedAt: base.Add(2 * time.Hour)},
	}

	records := MatchRecords(matches)

	assert.Equal(t, []MatchRecord{
		{ID: "a", Outcome: OutcomeWin, RPChange: 18},
		{ID: "b", Outcome: OutcomeLoss, RPChange: 0, Shielded: true},
		{ID: "c", Outcome: OutcomeDraw, RPChange: 2},
	}, records)
}

func TestMatchRecordsEmpty(t *testing.T) {
	assert.Empty(t, MatchRecords(nil))
}
