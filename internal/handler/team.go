package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/service"
)

// TeamHandler handles team CRUD and roster imports.
type TeamHandler struct {
	teams   repository.TeamRepository
	seasons repository.SeasonRepository
	roster  *service.RosterService
	db      repository.DBTX
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teams repository.TeamRepository, seasons repository.SeasonRepository, roster *service.RosterService, db repository.DBTX) *TeamHandler {
	return &TeamHandler{teams: teams, seasons: seasons, roster: roster, db: db}
}

type createTeamRequest struct {
	SeasonID uuid.UUID `json:"season_id"`
	Name     string    `json:"name"`
}

// Create handles POST /teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid JSON body"))
		return
	}
	if err := domain.ValidateName("name", req.Name); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	season, err := h.seasons.FindByID(r.Context(), h.db, req.SeasonID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find season", err))
		return
	}
	if season == nil {
		RespondError(w, domain.ErrNotFound("season", req.SeasonID.String()))
		return
	}

	team := &domain.Team{ID: uuid.New(), SeasonID: req.SeasonID, Name: req.Name}
	if err := h.teams.Create(r.Context(), h.db, team); err != nil {
		RespondError(w, domain.ErrInternal("create team", err))
		return
	}

	created, err := h.teams.FindByID(r.Context(), h.db, team.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find team", err))
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}

// Get handles GET /teams/{teamID}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid team ID"))
		return
	}
	team, err := h.teams.FindByID(r.Context(), h.db, teamID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find team", err))
		return
	}
	if team == nil {
		RespondError(w, domain.ErrNotFound("team", teamID.String()))
		return
	}
	RespondJSON(w, http.StatusOK, team)
}

// ImportRoster handles POST /teams/{teamID}/roster/import. The request body is
// the raw CSV upload.
func (h *TeamHandler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid team ID"))
		return
	}
	result, err := h.roster.ImportCSV(r.Context(), teamID, r.Body)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
