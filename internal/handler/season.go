package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
)

// SeasonHandler handles season CRUD.
type SeasonHandler struct {
	seasons repository.SeasonRepository
	teams   repository.TeamRepository
	db      repository.DBTX
}

// NewSeasonHandler creates a new SeasonHandler.
func NewSeasonHandler(seasons repository.SeasonRepository, teams repository.TeamRepository, db repository.DBTX) *SeasonHandler {
	return &SeasonHandler{seasons: seasons, teams: teams, db: db}
}

type createSeasonRequest struct {
	Name      string `json:"name"`
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Create handles POST /seasons.
func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSeasonRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid JSON body"))
		return
	}
	if err := domain.ValidateName("name", req.Name); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	start, err := compliance.ParseDate(req.StartDate)
	if err != nil {
		RespondError(w, domain.ErrValidation("start_date must be YYYY-MM-DD"))
		return
	}
	end, err := compliance.ParseDate(req.EndDate)
	if err != nil {
		RespondError(w, domain.ErrValidation("end_date must be YYYY-MM-DD"))
		return
	}
	if end.Before(start) {
		RespondError(w, domain.ErrValidation("end_date precedes start_date"))
		return
	}

	season := &domain.Season{
		ID:        uuid.New(),
		Name:      req.Name,
		Year:      req.Year,
		StartDate: start,
		EndDate:   end,
	}
	if err := h.seasons.Create(r.Context(), h.db, season); err != nil {
		RespondError(w, domain.ErrInternal("create season", err))
		return
	}

	created, err := h.seasons.FindByID(r.Context(), h.db, season.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find season", err))
		return
	}
	RespondJSON(w, http.StatusCreated, created)
}

// List handles GET /seasons.
func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasons.List(r.Context(), h.db)
	if err != nil {
		RespondError(w, domain.ErrInternal("list seasons", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"seasons": seasons})
}

// ListTeams handles GET /seasons/{seasonID}/teams.
func (h *SeasonHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	seasonID, err := uuid.Parse(chi.URLParam(r, "seasonID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid season ID"))
		return
	}
	teams, err := h.teams.ListBySeason(r.Context(), h.db, seasonID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list teams", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}
