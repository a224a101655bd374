package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

type assignmentRepo struct{}

// NewAssignmentRepository returns a pgx-backed AssignmentRepository.
func NewAssignmentRepository() AssignmentRepository {
	return &assignmentRepo{}
}

func (r *assignmentRepo) ReplaceForGame(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, assignments []domain.PositionAssignment) error {
	if _, err := tx.Exec(ctx, `DELETE FROM position_assignments WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO position_assignments (id, game_id, player_id, inning, position)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (game_id, player_id, inning, position) DO NOTHING`,
			a.ID, gameID, a.PlayerID, a.Inning, string(a.Position))
		if err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	return nil
}

func (r *assignmentRepo) ListByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.PositionAssignment, error) {
	rows, err := db.Query(ctx, `
		SELECT id, game_id, player_id, inning, position
		FROM position_assignments
		WHERE game_id = $1
		ORDER BY player_id, inning, position`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.PositionAssignment
	for rows.Next() {
		var a domain.PositionAssignment
		if err := rows.Scan(&a.ID, &a.GameID, &a.PlayerID, &a.Inning, &a.Position); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
