package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/service"
)

// GameHandler handles game CRUD, the player-section save, and re-evaluation.
type GameHandler struct {
	svc         *service.GameService
	games       repository.GameRepository
	assignments repository.AssignmentRepository
	pitching    repository.PitchingRepository
	db          repository.DBTX
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(svc *service.GameService, games repository.GameRepository, assignments repository.AssignmentRepository, pitching repository.PitchingRepository, db repository.DBTX) *GameHandler {
	return &GameHandler{svc: svc, games: games, assignments: assignments, pitching: pitching, db: db}
}

// Create handles POST /games.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateGameInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid JSON body"))
		return
	}
	game, err := h.svc.CreateGame(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, game)
}

// Get handles GET /games/{gameID}, returning the game with its stored
// assignment and appearance rows.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game ID"))
		return
	}
	game, err := h.games.FindByID(r.Context(), h.db, gameID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find game", err))
		return
	}
	if game == nil {
		RespondError(w, domain.ErrNotFound("game", gameID.String()))
		return
	}

	assignments, err := h.assignments.ListByGame(r.Context(), h.db, gameID)
	if err != nil {
		RespondError(w, domain.ErrInternal("load assignments", err))
		return
	}
	appearances, err := h.pitching.ListByGame(r.Context(), h.db, gameID)
	if err != nil {
		RespondError(w, domain.ErrInternal("load appearances", err))
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"game":        game,
		"assignments": assignments,
		"appearances": appearances,
	})
}

// ListBySeason handles GET /seasons/{seasonID}/games.
func (h *GameHandler) ListBySeason(w http.ResponseWriter, r *http.Request) {
	seasonID, err := uuid.Parse(chi.URLParam(r, "seasonID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid season ID"))
		return
	}
	games, err := h.games.ListBySeason(r.Context(), h.db, seasonID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list games", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

type savePlayersRequest struct {
	Players []service.PlayerSectionInput `json:"players"`
}

// SavePlayers handles PUT /games/{gameID}/players. The body replaces the
// game's entire player section; the response carries the resulting rule
// evaluation as advisory warnings.
func (h *GameHandler) SavePlayers(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game ID"))
		return
	}
	var req savePlayersRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid JSON body"))
		return
	}
	result, err := h.svc.SavePlayerSection(r.Context(), gameID, req.Players)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Violations handles GET /games/{gameID}/violations: a read-only re-run of the
// rules over the game's stored data.
func (h *GameHandler) Violations(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game ID"))
		return
	}
	evaluation, err := h.svc.Evaluate(r.Context(), gameID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, evaluation)
}

// Delete handles DELETE /games/{gameID}. Assignments and appearances cascade
// with the game row.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game ID"))
		return
	}
	game, err := h.games.FindByID(r.Context(), h.db, gameID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find game", err))
		return
	}
	if game == nil {
		RespondError(w, domain.ErrNotFound("game", gameID.String()))
		return
	}
	if err := h.games.Delete(r.Context(), h.db, gameID); err != nil {
		RespondError(w, domain.ErrInternal("delete game", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"deleted": gameID})
}
