package repository

import (
	"context"
	"fmt"
	"time"

	"bedwars-tracker/internal/constants"
	"bedwars-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sqlx.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     db,
		logger: logger,
	}
}

type rankedMatchRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	SeasonID  string    `db:"season_id"`
	Outcome   string    `db:"outcome"`
	RPChange  int       `db:"rp_change"`
	Shielded  bool      `db:"shielded"`
	RPAfter   int       `db:"rp_after"`
	PlayedAt  time.Time `db:"played_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const rankedMatchColumns = `id, user_id, season_id, outcome, rp_change, shielded, rp_after, played_at, created_at, updated_at`

func (row rankedMatchRow) toDomain() domain.RankedMatch {
	return domain.RankedMatch{
		ID:        row.ID,
		UserID:    row.UserID,
		SeasonID:  row.SeasonID,
		Outcome:   domain.Outcome(row.Outcome),
		RPChange:  row.RPChange,
		Shielded:  row.Shielded,
		RPAfter:   row.RPAfter,
		PlayedAt:  row.PlayedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// A refetch can collide on the id when the upstream corrected the
// timestamp, or on (user_id, played_at) when the id was generated
// locally; both update the stored row in place.
const upsertRankedMatchQuery = `
	INSERT INTO ranked_matches (id, user_id, season_id, outcome, rp_change, shielded, rp_after, played_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		season_id = excluded.season_id,
		outcome = excluded.outcome,
		rp_change = excluded.rp_change,
		shielded = excluded.shielded,
		rp_after = excluded.rp_after,
		played_at = excluded.played_at,
		updated_at = excluded.updated_at
	ON CONFLICT (user_id, played_at) DO UPDATE SET
		season_id = excluded.season_id,
		outcome = excluded.outcome,
		rp_change = excluded.rp_change,
		shielded = excluded.shielded,
		rp_after = excluded.rp_after,
		updated_at = excluded.updated_at`

func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []domain.RankedMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matches) {
			end = len(matches)
		}

		for _, match := range matches[i:end] {
			id := match.ID
			if id == "" {
				id, err = gonanoid.New()
				if err != nil {
					return fmt.Errorf("failed to generate nanoid: %w", err)
				}
			}
			createdAt := match.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}

			_, err := tx.ExecContext(ctx, upsertRankedMatchQuery,
				id, match.UserID, match.SeasonID, string(match.Outcome),
				match.RPChange, match.Shielded, match.RPAfter,
				match.PlayedAt, createdAt, now)
			if err != nil {
				return fmt.Errorf("failed to upsert ranked match %s: %w", id, err)
			}
		}
	}

	return tx.Commit()
}

// ListByUser returns up to limit of the player's most recent matches,
// ordered oldest first so the rating replay can walk them directly.
func (r *MatchRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.RankedMatch, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT %s FROM ranked_matches WHERE user_id = ? ORDER BY played_at DESC LIMIT ?
		) ORDER BY played_at ASC`, rankedMatchColumns, rankedMatchColumns)

	var rows []rankedMatchRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, err
	}

	result := make([]domain.RankedMatch, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

func (r *MatchRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM ranked_matches WHERE user_id = ?", userID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
