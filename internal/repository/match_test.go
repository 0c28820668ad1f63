package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedwars-tracker/internal/config"
	"bedwars-tracker/internal/database"
	"bedwars-tracker/internal/domain"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.New(&config.Config{DBPath: filepath.Join(t.TempDir(), "tracker.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewSqlx(db)
}

func seedPlayer(t *testing.T, db *sqlx.DB, userID string) {
	t.Helper()

	players := NewPlayerRepository(db, zerolog.Nop())
	require.NoError(t, players.Upsert(context.Background(), &domain.Player{
		UserID:   userID,
		Username: "tester-" + userID,
		SeasonID: "season-7",
	}))
}

func TestUpsertBatchUpdatesOnTimestampCorrection(t *testing.T) {
	db := newTestDB(t)
	seedPlayer(t, db, "u1")
	repo := NewMatchRepository(db, zerolog.Nop())
	ctx := context.Background()

	playedAt := time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)
	match := domain.RankedMatch{
		ID:       "m1",
		UserID:   "u1",
		SeasonID: "season-7",
		Outcome:  domain.OutcomeWin,
		RPChange: 20,
		RPAfter:  1270,
		PlayedAt: playedAt,
	}
	require.NoError(t, repo.UpsertBatch(ctx, []domain.RankedMatch{match}))

	// The API moved the match by a few seconds; the stored row has to
	// follow the id, not turn into a duplicate or a failed batch.
	corrected := playedAt.Add(45 * time.Second)
	match.PlayedAt = corrected
	match.RPChange = 21
	match.RPAfter = 1271
	require.NoError(t, repo.UpsertBatch(ctx, []domain.RankedMatch{match}))

	// A verbatim refetch of the corrected match stays a no-op update.
	require.NoError(t, repo.UpsertBatch(ctx, []domain.RankedMatch{match}))

	stored, err := repo.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "m1", stored[0].ID)
	assert.Equal(t, 21, stored[0].RPChange)
	assert.Equal(t, 1271, stored[0].RPAfter)
	assert.True(t, stored[0].PlayedAt.Equal(corrected))
}

func TestUpsertBatchDeduplicatesByPlayedAt(t *testing.T) {
	db := newTestDB(t)
	seedPlayer(t, db, "u2")
	repo := NewMatchRepository(db, zerolog.Nop())
	ctx := context.Background()

	playedAt := time.Date(2026, 8, 21, 9, 30, 0, 0, time.UTC)
	first := domain.RankedMatch{
		UserID:   "u2",
		SeasonID: "season-7",
		Outcome:  domain.OutcomeLoss,
		RPChange: -10,
		RPAfter:  980,
		PlayedAt: playedAt,
	}
	require.NoError(t, repo.UpsertBatch(ctx, []domain.RankedMatch{first}))

	stored, err := repo.ListByUser(ctx, "u2", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	generatedID := stored[0].ID
	require.NotEmpty(t, generatedID)

	// Without an upstream id every fetch generates a fresh one; the
	// same played_at still resolves to the already stored row.
	refetch := first
	refetch.Outcome = domain.OutcomeDraw
	refetch.RPChange = 2
	refetch.RPAfter = 992
	require.NoError(t, repo.UpsertBatch(ctx, []domain.RankedMatch{refetch}))

	stored, err = repo.ListByUser(ctx, "u2", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, generatedID, stored[0].ID)
	assert.Equal(t, domain.OutcomeDraw, stored[0].Outcome)
	assert.Equal(t, 2, stored[0].RPChange)

	count, err := repo.CountByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
