package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

type teamRepo struct{}

// NewTeamRepository returns a pgx-backed TeamRepository.
func NewTeamRepository() TeamRepository {
	return &teamRepo{}
}

func (r *teamRepo) Create(ctx context.Context, db DBTX, team *domain.Team) error {
	_, err := db.Exec(ctx, `
		INSERT INTO teams (id, season_id, name)
		VALUES ($1, $2, $3)`,
		team.ID, team.SeasonID, team.Name)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *teamRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Team, error) {
	row := db.QueryRow(ctx, `
		SELECT id, season_id, name, created_at
		FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

func (r *teamRepo) ListBySeason(ctx context.Context, db DBTX, seasonID uuid.UUID) ([]domain.Team, error) {
	rows, err := db.Query(ctx, `
		SELECT id, season_id, name, created_at
		FROM teams WHERE season_id = $1 ORDER BY name ASC`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(&t.ID, &t.SeasonID, &t.Name, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return &t, nil
}
