package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

type pitchingRepo struct{}

// NewPitchingRepository returns a pgx-backed PitchingRepository.
func NewPitchingRepository() PitchingRepository {
	return &pitchingRepo{}
}

func (r *pitchingRepo) ReplaceForGame(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, appearances []domain.PitchingAppearance) error {
	if _, err := tx.Exec(ctx, `DELETE FROM pitching_appearances WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("clear appearances: %w", err)
	}

	for _, a := range appearances {
		var nextEligible interface{}
		if a.NextEligiblePitchDate != nil {
			nextEligible = pgDate(*a.NextEligiblePitchDate)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO pitching_appearances
			  (id, game_id, player_id, final_pitch_count, penultimate_batter_count, next_eligible_pitch_date)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, gameID, a.PlayerID, a.FinalPitchCount, a.PenultimateBatterCount, nextEligible)
		if err != nil {
			return fmt.Errorf("insert appearance: %w", err)
		}
	}
	return nil
}

func (r *pitchingRepo) ListByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.PitchingAppearance, error) {
	rows, err := db.Query(ctx, `
		SELECT id, game_id, player_id, final_pitch_count, penultimate_batter_count, next_eligible_pitch_date, created_at
		FROM pitching_appearances
		WHERE game_id = $1
		ORDER BY player_id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list appearances: %w", err)
	}
	defer rows.Close()

	var appearances []domain.PitchingAppearance
	for rows.Next() {
		var a domain.PitchingAppearance
		var nextEligible *time.Time
		err := rows.Scan(&a.ID, &a.GameID, &a.PlayerID, &a.FinalPitchCount,
			&a.PenultimateBatterCount, &nextEligible, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan appearance: %w", err)
		}
		if nextEligible != nil {
			d := compliance.DateOf(*nextEligible)
			a.NextEligiblePitchDate = &d
		}
		appearances = append(appearances, a)
	}
	return appearances, rows.Err()
}

// LatestEligibility sources the eligibility date from the chronologically
// latest appearance that existed before the current save, excluding the game
// being evaluated. Same-date ties break by appearance creation order.
func (r *pitchingRepo) LatestEligibility(ctx context.Context, db DBTX, playerID, excludeGameID uuid.UUID) (*compliance.Date, error) {
	row := db.QueryRow(ctx, `
		SELECT pa.next_eligible_pitch_date
		FROM pitching_appearances pa
		JOIN games g ON g.id = pa.game_id
		WHERE pa.player_id = $1
		  AND pa.game_id <> $2
		  AND pa.next_eligible_pitch_date IS NOT NULL
		ORDER BY g.game_date DESC, pa.created_at DESC
		LIMIT 1`, playerID, excludeGameID)

	var next time.Time
	if err := row.Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest eligibility: %w", err)
	}
	d := compliance.DateOf(next)
	return &d, nil
}
