package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/infra"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
)

// GameService owns game creation and the save/evaluate cycle for a game's
// player section. Rule evaluation and persistence are separate phases:
// evaluation is pure and cannot fail a save, and its results are written back
// as advisory data only.
type GameService struct {
	pool        *pgxpool.Pool
	games       repository.GameRepository
	teams       repository.TeamRepository
	players     repository.PlayerRepository
	assignments repository.AssignmentRepository
	pitching    repository.PitchingRepository
	outbox      repository.OutboxRepository
	ageRules    []compliance.AgeRule
	metrics     *infra.Metrics
	logger      *slog.Logger
}

// NewGameService creates a GameService using the current league age rules.
func NewGameService(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	teams repository.TeamRepository,
	players repository.PlayerRepository,
	assignments repository.AssignmentRepository,
	pitching repository.PitchingRepository,
	outbox repository.OutboxRepository,
	metrics *infra.Metrics,
	logger *slog.Logger,
) *GameService {
	return &GameService{
		pool:        pool,
		games:       games,
		teams:       teams,
		players:     players,
		assignments: assignments,
		pitching:    pitching,
		outbox:      outbox,
		ageRules:    compliance.DefaultAgeRules(),
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateGameInput holds the game creation request fields.
type CreateGameInput struct {
	SeasonID   uuid.UUID `json:"season_id"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	GameDate   string    `json:"game_date"`
	Location   string    `json:"location"`
}

// CreateGame inserts a new game with no player data yet.
func (s *GameService) CreateGame(ctx context.Context, input CreateGameInput) (*domain.Game, error) {
	gameDate, err := compliance.ParseDate(input.GameDate)
	if err != nil {
		return nil, domain.ErrValidation("game_date must be YYYY-MM-DD")
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, domain.ErrValidation("home and away team must differ")
	}
	for _, teamID := range []uuid.UUID{input.HomeTeamID, input.AwayTeamID} {
		team, err := s.teams.FindByID(ctx, s.pool, teamID)
		if err != nil {
			return nil, domain.ErrInternal("find team", err)
		}
		if team == nil {
			return nil, domain.ErrNotFound("team", teamID.String())
		}
	}

	game := &domain.Game{
		ID:         uuid.New(),
		SeasonID:   input.SeasonID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		GameDate:   gameDate,
		Location:   input.Location,
	}
	if err := s.games.Create(ctx, s.pool, game); err != nil {
		return nil, domain.ErrInternal("create game", err)
	}
	return s.games.FindByID(ctx, s.pool, game.ID)
}

// PlayerSectionInput is one player's row in the game-entry form: the innings
// they pitched and caught plus the two raw pitch counts.
type PlayerSectionInput struct {
	PlayerID               uuid.UUID `json:"player_id"`
	PitchedInnings         []int     `json:"pitched_innings"`
	CaughtInnings          []int     `json:"caught_innings"`
	FinalPitchCount        int       `json:"final_pitch_count"`
	PenultimateBatterCount int       `json:"penultimate_batter_count"`
}

// SaveResult is returned from a player-section save: the persisted data's
// evaluation, which the caller renders as warnings.
type SaveResult struct {
	Game       *domain.Game              `json:"game"`
	Evaluation compliance.GameEvaluation `json:"evaluation"`
}

// SavePlayerSection replaces a game's position and pitching data, evaluates
// the six safety rules, recomputes each pitcher's next eligible date, and
// writes the advisory violation flag. The whole save runs in one transaction;
// player rows are locked in ID order so concurrent saves touching the same
// player's pitching history serialize rather than race.
func (s *GameService) SavePlayerSection(ctx context.Context, gameID uuid.UUID, inputs []PlayerSectionInput) (*SaveResult, error) {
	if err := validateSection(inputs); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	game, err := s.games.FindByID(ctx, tx, gameID)
	if err != nil {
		return nil, domain.ErrInternal("find game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", gameID.String())
	}
	wasFlagged := game.HasViolation

	// Deterministic lock order across concurrent saves.
	sorted := make([]PlayerSectionInput, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PlayerID.String() < sorted[j].PlayerID.String()
	})

	ages := make(map[uuid.UUID]int, len(sorted))
	for _, in := range sorted {
		player, err := s.players.LockForUpdate(ctx, tx, in.PlayerID)
		if err != nil {
			return nil, domain.ErrInternal("lock player", err)
		}
		if player == nil {
			return nil, domain.ErrNotFound("player", in.PlayerID.String())
		}
		ages[in.PlayerID] = player.LeagueAge
	}

	assignments := buildAssignments(gameID, sorted)
	if err := s.assignments.ReplaceForGame(ctx, tx, gameID, assignments); err != nil {
		return nil, domain.ErrInternal("save assignments", err)
	}

	// Evaluate against the prior eligibility on record for each player, read
	// under the player lock and excluding the game being saved.
	lines := make([]compliance.PlayerLine, 0, len(sorted))
	for _, in := range sorted {
		prior, err := s.pitching.LatestEligibility(ctx, tx, in.PlayerID, gameID)
		if err != nil {
			return nil, domain.ErrInternal("load eligibility", err)
		}
		lines = append(lines, compliance.PlayerLine{
			PlayerID:               in.PlayerID,
			Age:                    ages[in.PlayerID],
			Pitched:                in.PitchedInnings,
			Caught:                 in.CaughtInnings,
			FinalPitchCount:        in.FinalPitchCount,
			PenultimateBatterCount: in.PenultimateBatterCount,
			NextEligible:           prior,
		})
	}
	evaluation := compliance.EvaluateGame(s.ageRules, game.GameDate, lines)
	s.countEvaluation(evaluation)

	// Rest-day calculator: one appearance per pitcher, carrying the
	// recomputed next eligible date for future games.
	var appearances []domain.PitchingAppearance
	var eligibilityEvents []domain.OutboxDraft
	for _, in := range sorted {
		pitched := compliance.SortedDistinct(in.PitchedInnings)
		if len(pitched) == 0 {
			continue
		}
		app := domain.PitchingAppearance{
			ID:                     uuid.New(),
			GameID:                 gameID,
			PlayerID:               in.PlayerID,
			FinalPitchCount:        in.FinalPitchCount,
			PenultimateBatterCount: in.PenultimateBatterCount,
		}
		official := compliance.OfficialPitchCount(in.PenultimateBatterCount, true)
		if next, ok := compliance.NextEligiblePitchDate(s.ageRules, ages[in.PlayerID], official, game.GameDate); ok {
			app.NextEligiblePitchDate = &next
			eligibilityEvents = append(eligibilityEvents, domain.NewEligibilityUpdatedEvent(in.PlayerID, gameID, next))
		}
		appearances = append(appearances, app)
	}
	if err := s.pitching.ReplaceForGame(ctx, tx, gameID, appearances); err != nil {
		return nil, domain.ErrInternal("save appearances", err)
	}

	if err := s.games.SetViolationFlag(ctx, tx, gameID, evaluation.HasViolation); err != nil {
		return nil, domain.ErrInternal("set violation flag", err)
	}

	if evaluation.HasViolation {
		if err := s.outbox.Insert(ctx, tx, domain.NewViolationFlaggedEvent(gameID, game.GameDate, evaluation.Violations)); err != nil {
			return nil, domain.ErrInternal("queue violation event", err)
		}
	} else if wasFlagged {
		if err := s.outbox.Insert(ctx, tx, domain.NewViolationClearedEvent(gameID)); err != nil {
			return nil, domain.ErrInternal("queue cleared event", err)
		}
	}
	for _, evt := range eligibilityEvents {
		if err := s.outbox.Insert(ctx, tx, evt); err != nil {
			return nil, domain.ErrInternal("queue eligibility event", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	game.HasViolation = evaluation.HasViolation
	s.logger.Info("player section saved",
		"game_id", gameID,
		"players", len(sorted),
		"has_violation", evaluation.HasViolation,
	)
	return &SaveResult{Game: game, Evaluation: evaluation}, nil
}

// Evaluate re-runs the rules over a game's stored data without writing
// anything. Saving and re-evaluating the same data yields identical results.
func (s *GameService) Evaluate(ctx context.Context, gameID uuid.UUID) (*compliance.GameEvaluation, error) {
	game, err := s.games.FindByID(ctx, s.pool, gameID)
	if err != nil {
		return nil, domain.ErrInternal("find game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", gameID.String())
	}

	assignments, err := s.assignments.ListByGame(ctx, s.pool, gameID)
	if err != nil {
		return nil, domain.ErrInternal("load assignments", err)
	}
	appearances, err := s.pitching.ListByGame(ctx, s.pool, gameID)
	if err != nil {
		return nil, domain.ErrInternal("load appearances", err)
	}

	lines, err := s.buildStoredLines(ctx, game, assignments, appearances)
	if err != nil {
		return nil, err
	}

	evaluation := compliance.EvaluateGame(s.ageRules, game.GameDate, lines)
	s.countEvaluation(evaluation)
	return &evaluation, nil
}

// PlayerEligibility returns the player's current next-eligible-pitch date
// from their latest appearance, or nil if they have never pitched.
func (s *GameService) PlayerEligibility(ctx context.Context, playerID uuid.UUID) (*compliance.Date, error) {
	player, err := s.players.FindByID(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", playerID.String())
	}
	date, err := s.pitching.LatestEligibility(ctx, s.pool, playerID, uuid.Nil)
	if err != nil {
		return nil, domain.ErrInternal("load eligibility", err)
	}
	return date, nil
}

// buildStoredLines reconstructs per-player rule input from stored rows: every
// player with any assignment or appearance in the game gets a line.
func (s *GameService) buildStoredLines(ctx context.Context, game *domain.Game, assignments []domain.PositionAssignment, appearances []domain.PitchingAppearance) ([]compliance.PlayerLine, error) {
	rows := make([]compliance.AssignmentRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, compliance.AssignmentRow{PlayerID: a.PlayerID, Inning: a.Inning, Position: a.Position})
	}
	grouped := compliance.GroupInnings(rows)

	counts := make(map[uuid.UUID]domain.PitchingAppearance, len(appearances))
	playerIDs := make(map[uuid.UUID]bool)
	for id := range grouped {
		playerIDs[id] = true
	}
	for _, app := range appearances {
		counts[app.PlayerID] = app
		playerIDs[app.PlayerID] = true
	}

	// Stable order keeps evaluation output deterministic.
	ids := make([]uuid.UUID, 0, len(playerIDs))
	for id := range playerIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var lines []compliance.PlayerLine
	for _, id := range ids {
		player, err := s.players.FindByID(ctx, s.pool, id)
		if err != nil {
			return nil, domain.ErrInternal("find player", err)
		}
		if player == nil {
			return nil, domain.ErrInternal("load player", fmt.Errorf("player %s referenced by game %s missing", id, game.ID))
		}
		prior, err := s.pitching.LatestEligibility(ctx, s.pool, id, game.ID)
		if err != nil {
			return nil, domain.ErrInternal("load eligibility", err)
		}

		line := compliance.PlayerLine{
			PlayerID:     id,
			Age:          player.LeagueAge,
			Pitched:      grouped[id].Pitched,
			Caught:       grouped[id].Caught,
			NextEligible: prior,
		}
		if app, ok := counts[id]; ok {
			line.FinalPitchCount = app.FinalPitchCount
			line.PenultimateBatterCount = app.PenultimateBatterCount
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *GameService) countEvaluation(evaluation compliance.GameEvaluation) {
	if s.metrics == nil {
		return
	}
	s.metrics.Evaluations.Inc()
	for _, v := range evaluation.Violations {
		s.metrics.ViolationsFound.WithLabelValues(v.Rule.String()).Inc()
	}
}

func validateSection(inputs []PlayerSectionInput) error {
	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, in := range inputs {
		if in.PlayerID == uuid.Nil {
			return domain.ErrValidation("player_id is required")
		}
		if seen[in.PlayerID] {
			return domain.ErrValidation(fmt.Sprintf("duplicate row for player %s", in.PlayerID))
		}
		seen[in.PlayerID] = true

		for _, inning := range append(append([]int{}, in.PitchedInnings...), in.CaughtInnings...) {
			if err := domain.ValidateInning(inning); err != nil {
				return domain.ErrValidation(err.Error())
			}
		}
		if len(in.PitchedInnings) > 0 {
			if err := domain.ValidatePitchCounts(in.FinalPitchCount, in.PenultimateBatterCount); err != nil {
				return domain.ErrValidation(err.Error())
			}
		}
	}
	return nil
}

func buildAssignments(gameID uuid.UUID, inputs []PlayerSectionInput) []domain.PositionAssignment {
	var out []domain.PositionAssignment
	for _, in := range inputs {
		for _, inning := range compliance.SortedDistinct(in.PitchedInnings) {
			out = append(out, domain.PositionAssignment{
				ID: uuid.New(), GameID: gameID, PlayerID: in.PlayerID,
				Inning: inning, Position: compliance.PositionPitcher,
			})
		}
		for _, inning := range compliance.SortedDistinct(in.CaughtInnings) {
			out = append(out, domain.PositionAssignment{
				ID: uuid.New(), GameID: gameID, PlayerID: in.PlayerID,
				Inning: inning, Position: compliance.PositionCatcher,
			})
		}
	}
	return out
}
