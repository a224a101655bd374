package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SeasonRepository provides access to seasons.
type SeasonRepository interface {
	Create(ctx context.Context, db DBTX, season *domain.Season) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Season, error)
	List(ctx context.Context, db DBTX) ([]domain.Season, error)
}

// TeamRepository provides access to teams.
type TeamRepository interface {
	Create(ctx context.Context, db DBTX, team *domain.Team) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Team, error)
	ListBySeason(ctx context.Context, db DBTX, seasonID uuid.UUID) ([]domain.Team, error)
}

// PlayerRepository provides access to players.
type PlayerRepository interface {
	Create(ctx context.Context, db DBTX, player *domain.Player) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error)
	ListByTeam(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Player, error)
	Update(ctx context.Context, db DBTX, player *domain.Player) error

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) on the
	// player. Game saves take this lock before reading or writing the
	// player's pitching history, which serializes concurrent eligibility
	// reads/writes for the same player. Callers must lock players in a
	// deterministic order to avoid deadlocks.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Player, error)
}

// GameRepository provides access to games.
type GameRepository interface {
	Create(ctx context.Context, db DBTX, game *domain.Game) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error)
	ListBySeason(ctx context.Context, db DBTX, seasonID uuid.UUID) ([]domain.Game, error)

	// SetViolationFlag writes the advisory aggregate flag. Display-only; a
	// failed write must not roll back the player-data save that produced it.
	SetViolationFlag(ctx context.Context, db DBTX, gameID uuid.UUID, hasViolation bool) error

	// Delete removes a game; assignments and appearances cascade.
	Delete(ctx context.Context, db DBTX, gameID uuid.UUID) error
}

// AssignmentRepository provides access to position_assignments.
type AssignmentRepository interface {
	// ReplaceForGame deletes a game's assignment rows and inserts the given
	// set, implementing the full re-save semantics of the game player section.
	ReplaceForGame(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, assignments []domain.PositionAssignment) error

	ListByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.PositionAssignment, error)
}

// PitchingRepository provides access to pitching_appearances.
type PitchingRepository interface {
	// ReplaceForGame deletes a game's appearance rows and inserts the given
	// set, including each appearance's recomputed next-eligible date.
	ReplaceForGame(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, appearances []domain.PitchingAppearance) error

	ListByGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.PitchingAppearance, error)

	// LatestEligibility returns the next-eligible-pitch date from the
	// player's chronologically latest appearance, excluding the game being
	// evaluated. Ties on game date break by appearance creation order. Nil
	// when the player has no prior pitching history.
	LatestEligibility(ctx context.Context, db DBTX, playerID, excludeGameID uuid.UUID) (*compliance.Date, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the data
	// change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events for the notifier poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, []int64, error)

	// MarkPublished removes published events by sequence ID.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// AuthUserRepository provides access to auth_users.
type AuthUserRepository interface {
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error)
	Create(ctx context.Context, db DBTX, user *domain.AuthUser) error
}
