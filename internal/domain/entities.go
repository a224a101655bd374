package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
)

// Season represents a seasons row.
type Season struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Year      int             `json:"year"`
	StartDate compliance.Date `json:"start_date"`
	EndDate   compliance.Date `json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
}

// Team represents a teams row. A team belongs to exactly one season.
type Team struct {
	ID        uuid.UUID `json:"id"`
	SeasonID  uuid.UUID `json:"season_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Player represents a players row. LeagueAge is the player's age for rule
// purposes and is read-only input to the compliance engine.
type Player struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LeagueAge int       `json:"league_age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Game represents a games row. HasViolation is the advisory aggregate flag
// written back after evaluation; it is display-only and never blocks saves.
type Game struct {
	ID           uuid.UUID       `json:"id"`
	SeasonID     uuid.UUID       `json:"season_id"`
	HomeTeamID   uuid.UUID       `json:"home_team_id"`
	AwayTeamID   uuid.UUID       `json:"away_team_id"`
	GameDate     compliance.Date `json:"game_date"`
	Location     string          `json:"location,omitempty"`
	HasViolation bool            `json:"has_violation"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PositionAssignment records that a player pitched or caught a given inning of
// a game. Unique per (game, player, inning, position); owned by the game and
// deleted with it.
type PositionAssignment struct {
	ID       uuid.UUID           `json:"id"`
	GameID   uuid.UUID           `json:"game_id"`
	PlayerID uuid.UUID           `json:"player_id"`
	Inning   int                 `json:"inning"`
	Position compliance.Position `json:"position"`
}

// PitchingAppearance records a player's pitch counts for one game.
// NextEligiblePitchDate is written by the rest-day calculator at save time and
// read by the rest-day rule on the player's next game; it is the only state
// the engine carries across games. Invariant: PenultimateBatterCount <=
// FinalPitchCount.
type PitchingAppearance struct {
	ID                     uuid.UUID        `json:"id"`
	GameID                 uuid.UUID        `json:"game_id"`
	PlayerID               uuid.UUID        `json:"player_id"`
	FinalPitchCount        int              `json:"final_pitch_count"`
	PenultimateBatterCount int              `json:"penultimate_batter_count"`
	NextEligiblePitchDate  *compliance.Date `json:"next_eligible_pitch_date,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
}

// AuthUser holds credentials from auth_users. Coach accounts are scoped to a
// team; league-official accounts have no team.
type AuthUser struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Realm        string     `json:"realm"`
	TeamID       *uuid.UUID `json:"team_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// GuardResult is the outcome of a pre-request guard check (rate limiter,
// login lockout).
type GuardResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"`
}
