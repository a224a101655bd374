package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
)

// RosterService imports team rosters from CSV uploads.
type RosterService struct {
	pool    *pgxpool.Pool
	teams   repository.TeamRepository
	players repository.PlayerRepository
	outbox  repository.OutboxRepository
	logger  *slog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(pool *pgxpool.Pool, teams repository.TeamRepository, players repository.PlayerRepository, outbox repository.OutboxRepository, logger *slog.Logger) *RosterService {
	return &RosterService{pool: pool, teams: teams, players: players, outbox: outbox, logger: logger}
}

// RosterRow is one parsed player from a roster CSV.
type RosterRow struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	LeagueAge int    `json:"league_age"`
}

// RowError reports a rejected CSV line. Imports are all-or-nothing only at
// the line level: good lines import, bad lines are reported back.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult summarizes a roster import.
type ImportResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors,omitempty"`
}

// ParseRoster reads a roster CSV with header first_name,last_name,league_age.
// Columns may appear in any order; unknown columns are ignored.
func ParseRoster(r io.Reader) ([]RosterRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"first_name", "last_name", "league_age"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("csv missing required column %q", required)
		}
	}

	var rows []RosterRow
	var errs []RowError
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, RowError{Line: line, Message: err.Error()})
			continue
		}

		row := RosterRow{
			FirstName: strings.TrimSpace(record[cols["first_name"]]),
			LastName:  strings.TrimSpace(record[cols["last_name"]]),
		}
		age, err := strconv.Atoi(strings.TrimSpace(record[cols["league_age"]]))
		if err != nil {
			errs = append(errs, RowError{Line: line, Message: "league_age must be an integer"})
			continue
		}
		row.LeagueAge = age

		if err := domain.ValidateName("first_name", row.FirstName); err != nil {
			errs = append(errs, RowError{Line: line, Message: err.Error()})
			continue
		}
		if err := domain.ValidateName("last_name", row.LastName); err != nil {
			errs = append(errs, RowError{Line: line, Message: err.Error()})
			continue
		}
		if err := domain.ValidateLeagueAge(row.LeagueAge); err != nil {
			errs = append(errs, RowError{Line: line, Message: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs, nil
}

// ImportCSV parses the upload and inserts the valid rows into the team's
// roster in one transaction.
func (s *RosterService) ImportCSV(ctx context.Context, teamID uuid.UUID, upload io.Reader) (*ImportResult, error) {
	team, err := s.teams.FindByID(ctx, s.pool, teamID)
	if err != nil {
		return nil, domain.ErrInternal("find team", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound("team", teamID.String())
	}

	rows, rowErrs, err := ParseRoster(upload)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		// Deterministic IDs make re-importing the same roster an update
		// rather than a duplicate insert.
		id := importPlayerID(teamID, row)
		existing, err := s.players.FindByID(ctx, tx, id)
		if err != nil {
			return nil, domain.ErrInternal("find player", err)
		}
		if existing != nil {
			existing.FirstName = row.FirstName
			existing.LastName = row.LastName
			existing.LeagueAge = row.LeagueAge
			if err := s.players.Update(ctx, tx, existing); err != nil {
				return nil, domain.ErrInternal("update player", err)
			}
			continue
		}
		player := &domain.Player{
			ID:        id,
			TeamID:    teamID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			LeagueAge: row.LeagueAge,
		}
		if err := s.players.Create(ctx, tx, player); err != nil {
			return nil, domain.ErrInternal("create player", err)
		}
	}

	if len(rows) > 0 {
		if err := s.outbox.Insert(ctx, tx, domain.NewRosterImportedEvent(teamID, len(rows))); err != nil {
			return nil, domain.ErrInternal("queue import event", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("roster imported", "team_id", teamID, "imported", len(rows), "rejected", len(rowErrs))
	return &ImportResult{Imported: len(rows), Errors: rowErrs}, nil
}

// importPlayerID derives a stable player ID from the team and the player's
// name, so the same CSV line always maps to the same row.
func importPlayerID(teamID uuid.UUID, row RosterRow) uuid.UUID {
	return uuid.NewSHA1(teamID, []byte(strings.ToLower(row.FirstName)+"|"+strings.ToLower(row.LastName)))
}
