package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	_, err := db.Exec(ctx, `
		INSERT INTO players (id, team_id, first_name, last_name, league_age)
		VALUES ($1, $2, $3, $4, $5)`,
		player.ID, player.TeamID, player.FirstName, player.LastName, player.LeagueAge)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		SELECT id, team_id, first_name, last_name, league_age, created_at, updated_at
		FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT id, team_id, first_name, last_name, league_age, created_at, updated_at
		FROM players WHERE team_id = $1 ORDER BY last_name ASC, first_name ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *playerRepo) Update(ctx context.Context, db DBTX, player *domain.Player) error {
	tag, err := db.Exec(ctx, `
		UPDATE players
		SET first_name = $1, last_name = $2, league_age = $3, updated_at = now()
		WHERE id = $4`,
		player.FirstName, player.LastName, player.LeagueAge, player.ID)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", player.ID.String())
	}
	return nil
}

func (r *playerRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Player, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, team_id, first_name, last_name, league_age, created_at, updated_at
		FROM players WHERE id = $1 FOR UPDATE`, id)
	return scanPlayer(row)
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.FirstName, &p.LastName, &p.LeagueAge, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
