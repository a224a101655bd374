package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/service"
)

// PlayerHandler handles player CRUD and eligibility lookups.
type PlayerHandler struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	games   *service.GameService
	db      repository.DBTX
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(players repository.PlayerRepository, teams repository.TeamRepository, games *service.GameService, db repository.DBTX) *PlayerHandler {
	return &PlayerHandler{players: players, teams: teams, games: games, db: db}
}

type playerRequest struct {
	TeamID    uuid.UUID `json:"team_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LeagueAge int       `json:"league_age"`
}

func (req playerRequest) validate() error {
	if err := domain.ValidateName("first_name", req.FirstName); err != nil {
		return err
	}
	if err := domain.ValidateName("last_name", req.LastName); err != nil {
		return err
	}
	return domain.ValidateLeagueAge(req.LeagueAge)
}

// Create handles POST /players.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	team, err := h.teams.FindByID(r.Context(), h.db, req.TeamID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find team", err))
		return
	}
	if team == nil {
		RespondError(w, domain.ErrNotFound("team", req.TeamID.String()))
		return
	}

	player := &domain.Player{
		ID:        uuid.New(),
		TeamID:    req.TeamID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		LeagueAge: req.LeagueAge,
	}
	if err := h.players.Create(r.Context(), h.db, player); err != nil {
		RespondError(w, domain.ErrInternal("create player", err))
		return
	}

	created, err := h.players.FindByID(r.Context(), h.db, player.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find player", err))
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /players/{playerID}.
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid player ID"))
		return
	}
	var req playerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid JSON body"))
		return
	}
	if err := req.validate(); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	player, err := h.players.FindByID(r.Context(), h.db, playerID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find player", err))
		return
	}
	if player == nil {
		RespondError(w, domain.ErrNotFound("player", playerID.String()))
		return
	}

	player.FirstName = req.FirstName
	player.LastName = req.LastName
	player.LeagueAge = req.LeagueAge
	if err := h.players.Update(r.Context(), h.db, player); err != nil {
		RespondError(w, domain.ErrInternal("update player", err))
		return
	}
	RespondJSON(w, http.StatusOK, player)
}

// ListByTeam handles GET /teams/{teamID}/players.
func (h *PlayerHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid team ID"))
		return
	}
	players, err := h.players.ListByTeam(r.Context(), h.db, teamID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list players", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

// Eligibility handles GET /players/{playerID}/eligibility. A null date means
// the player has no pitching history and may pitch on any day.
func (h *PlayerHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid player ID"))
		return
	}
	date, err := h.games.PlayerEligibility(r.Context(), playerID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"player_id":                playerID,
		"next_eligible_pitch_date": date,
	})
}
