package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bedwars-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewPlayerRepository(db *sqlx.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     db,
		logger: logger,
	}
}

type playerRow struct {
	UserID           string          `db:"user_id"`
	Username         string          `db:"username"`
	DisplayName      string          `db:"display_name"`
	RP               int             `db:"rp"`
	ShieldGames      int             `db:"shield_games"`
	SeasonID         string          `db:"season_id"`
	NewSeason        bool            `db:"new_season"`
	PrevSeasonRating sql.NullFloat64 `db:"prev_season_rating"`
	LastFetchAt      sql.NullTime    `db:"last_fetch_at"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

const playerColumns = `user_id, username, display_name, rp, shield_games, season_id, new_season, prev_season_rating, last_fetch_at, created_at, updated_at`

func (row playerRow) toDomain() domain.Player {
	player := domain.Player{
		UserID:      row.UserID,
		Username:    row.Username,
		DisplayName: row.DisplayName,
		RP:          row.RP,
		ShieldGames: row.ShieldGames,
		SeasonID:    row.SeasonID,
		NewSeason:   row.NewSeason,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.PrevSeasonRating.Valid {
		rating := row.PrevSeasonRating.Float64
		player.PrevSeasonRating = &rating
	}
	if row.LastFetchAt.Valid {
		fetchedAt := row.LastFetchAt.Time
		player.LastFetchAt = &fetchedAt
	}
	return player
}

func fromDomain(player *domain.Player) playerRow {
	row := playerRow{
		UserID:      player.UserID,
		Username:    player.Username,
		DisplayName: player.DisplayName,
		RP:          player.RP,
		ShieldGames: player.ShieldGames,
		SeasonID:    player.SeasonID,
		NewSeason:   player.NewSeason,
		CreatedAt:   player.CreatedAt,
		UpdatedAt:   player.UpdatedAt,
	}
	if player.PrevSeasonRating != nil {
		row.PrevSeasonRating = sql.NullFloat64{Float64: *player.PrevSeasonRating, Valid: true}
	}
	if player.LastFetchAt != nil {
		row.LastFetchAt = sql.NullTime{Time: *player.LastFetchAt, Valid: true}
	}
	return row
}

func (r *PlayerRepository) Get(ctx context.Context, userID string) (*domain.Player, error) {
	var row playerRow
	query := fmt.Sprintf("SELECT %s FROM players WHERE user_id = ?", playerColumns)
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, err
	}

	player := row.toDomain()
	return &player, nil
}

func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	var row playerRow
	query := fmt.Sprintf("SELECT %s FROM players WHERE username = ?", playerColumns)
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		return nil, err
	}

	player := row.toDomain()
	return &player, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	const query = `
		INSERT INTO players (user_id, username, display_name, rp, shield_games, season_id, new_season, prev_season_rating, last_fetch_at, created_at, updated_at)
		VALUES (:user_id, :username, :display_name, :rp, :shield_games, :season_id, :new_season, :prev_season_rating, :last_fetch_at, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name,
			rp = excluded.rp,
			shield_games = excluded.shield_games,
			season_id = excluded.season_id,
			new_season = excluded.new_season,
			prev_season_rating = excluded.prev_season_rating,
			last_fetch_at = excluded.last_fetch_at,
			updated_at = excluded.updated_at`

	now := time.Now()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = now
	}
	player.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, fromDomain(player)); err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.UserID, err)
	}
	return nil
}

func (r *PlayerRepository) UpdateStanding(ctx context.Context, player *domain.Player) error {
	var prevRating sql.NullFloat64
	if player.PrevSeasonRating != nil {
		prevRating = sql.NullFloat64{Float64: *player.PrevSeasonRating, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"UPDATE players SET rp = ?, shield_games = ?, season_id = ?, new_season = ?, prev_season_rating = ?, updated_at = ? WHERE user_id = ?",
		player.RP, player.ShieldGames, player.SeasonID, player.NewSeason, prevRating, time.Now(), player.UserID)
	if err != nil {
		return fmt.Errorf("failed to update standing for player %s: %w", player.UserID, err)
	}
	return nil
}

func (r *PlayerRepository) ShouldRefresh(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	var lastFetchAt sql.NullTime
	err := r.db.GetContext(ctx, &lastFetchAt, "SELECT last_fetch_at FROM players WHERE user_id = ?", userID)
	if err == sql.ErrNoRows {
		r.logger.Debug().Str("user_id", userID).Msg("player not found, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get player")
		return false, err
	}
	if !lastFetchAt.Valid {
		r.logger.Debug().Str("user_id", userID).Msg("player never fetched, should refresh")
		return true, nil
	}

	timeSince := time.Since(lastFetchAt.Time)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Str("user_id", userID).
		Time("last_fetch_at", lastFetchAt.Time).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if player should refresh")

	return shouldRefresh, nil
}

func (r *PlayerRepository) SetLastFetchAt(userID string, lastFetchAt time.Time) error {
	r.logger.Debug().
		Str("user_id", userID).
		Time("last_fetch_at", lastFetchAt).
		Msg("setting last fetch at")

	_, err := r.db.ExecContext(context.Background(),
		"UPDATE players SET last_fetch_at = ?, updated_at = ? WHERE user_id = ?",
		lastFetchAt, time.Now(), userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to set last fetch at")
		return err
	}

	r.logger.Debug().Str("user_id", userID).Msg("last fetch at set successfully")
	return nil
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]domain.Player, error) {
	searchPattern := "%" + query + "%"
	var rows []playerRow
	stmt := fmt.Sprintf("SELECT %s FROM players WHERE username LIKE ? OR display_name LIKE ? ORDER BY rp DESC LIMIT ?", playerColumns)
	if err := r.db.SelectContext(ctx, &rows, stmt, searchPattern, searchPattern, limit); err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

func (r *PlayerRepository) TopByRP(ctx context.Context, limit int) ([]domain.Player, error) {
	var rows []playerRow
	stmt := fmt.Sprintf("SELECT %s FROM players ORDER BY rp DESC, username ASC LIMIT ?", playerColumns)
	if err := r.db.SelectContext(ctx, &rows, stmt, limit); err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}
