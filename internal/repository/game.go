package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

func (r *gameRepo) Create(ctx context.Context, db DBTX, game *domain.Game) error {
	_, err := db.Exec(ctx, `
		INSERT INTO games (id, season_id, home_team_id, away_team_id, game_date, location)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		game.ID, game.SeasonID, game.HomeTeamID, game.AwayTeamID, pgDate(game.GameDate), game.Location)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		SELECT id, season_id, home_team_id, away_team_id, game_date, location, has_violation, created_at, updated_at
		FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *gameRepo) ListBySeason(ctx context.Context, db DBTX, seasonID uuid.UUID) ([]domain.Game, error) {
	rows, err := db.Query(ctx, `
		SELECT id, season_id, home_team_id, away_team_id, game_date, location, has_violation, created_at, updated_at
		FROM games WHERE season_id = $1 ORDER BY game_date ASC, created_at ASC`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func (r *gameRepo) SetViolationFlag(ctx context.Context, db DBTX, gameID uuid.UUID, hasViolation bool) error {
	tag, err := db.Exec(ctx, `
		UPDATE games SET has_violation = $1, updated_at = now() WHERE id = $2`,
		hasViolation, gameID)
	if err != nil {
		return fmt.Errorf("set violation flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("game", gameID.String())
	}
	return nil
}

func (r *gameRepo) Delete(ctx context.Context, db DBTX, gameID uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("game", gameID.String())
	}
	return nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	var gameDate time.Time
	err := row.Scan(&g.ID, &g.SeasonID, &g.HomeTeamID, &g.AwayTeamID, &gameDate,
		&g.Location, &g.HasViolation, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	g.GameDate = compliance.DateOf(gameDate)
	return &g, nil
}
