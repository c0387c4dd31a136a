package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// MaxLeaderboardLimit caps ?limit= on the leaderboard route
const MaxLeaderboardLimit = 100

// InitResponse is a loaded session
type InitResponse struct {
	Success bool `json:"success"`
	*domain.LoadResult
}

// SaveRequest carries the full snapshot; there are no partial saves
type SaveRequest struct {
	Snapshot *domain.PlayerSnapshot `json:"snapshot" validate:"required"`
}

// SaveResponse returns the refreshed rankings
type SaveResponse struct {
	Success        bool                      `json:"success"`
	Leaderboard    []domain.LeaderboardEntry `json:"leaderboard,omitempty"`
	PlayerStanding *domain.PlayerStanding    `json:"playerStanding,omitempty"`
}

// RegisterRequest asks for a display name
type RegisterRequest struct {
	RequestedName string `json:"requestedName" validate:"required,max=64"`
}

// RegisterResponse reports the canonical name or why it was refused
type RegisterResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LeaderboardResponse is the merged ranking view
type LeaderboardResponse struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

// GameHandlers serves the per-player routes
type GameHandlers struct {
	service GameService
}

// NewGameHandlers creates new game handlers
func NewGameHandlers(service GameService) *GameHandlers {
	return &GameHandlers{service: service}
}

// HandleInit loads or creates the caller's game
// @Summary Load game
// @Description Returns the caller's snapshot, the leaderboard and the caller's standing
// @Tags game
// @Produce json
// @Success 200 {object} InitResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /game/init [get]
func (h *GameHandlers) HandleInit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(r, w)
		if !ok {
			return
		}

		result, err := h.service.LoadSnapshot(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Load game", err)
			return
		}
		respondJSON(w, http.StatusOK, InitResponse{Success: true, LoadResult: result})
	}
}

// HandleSave persists the caller's full snapshot
// @Summary Save game
// @Tags game
// @Accept json
// @Produce json
// @Param request body SaveRequest true "Full snapshot"
// @Success 200 {object} SaveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /game/save [post]
func (h *GameHandlers) HandleSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(r, w)
		if !ok {
			return
		}
		var req SaveRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Save game"); err != nil {
			return
		}

		result, err := h.service.SaveSnapshot(r.Context(), id, *req.Snapshot)
		if err != nil {
			logger.FromContext(r.Context()).Info(LogMsgSaveRejected, logger.AttrKeyPlayerID, id.PlayerID, "error", err)
			respondServiceError(w, r, "Save game", err)
			return
		}
		respondJSON(w, http.StatusOK, SaveResponse{
			Success:        true,
			Leaderboard:    result.Leaderboard,
			PlayerStanding: result.PlayerStanding,
		})
	}
}

// HandleReset wipes the caller's progress; the registered name is kept
// @Summary Reset game
// @Tags game
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /game/reset [post]
func (h *GameHandlers) HandleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(r, w)
		if !ok {
			return
		}
		if err := h.service.ResetSnapshot(r.Context(), id); err != nil {
			respondServiceError(w, r, "Reset game", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

// HandleRegister claims a display name. Refusals are reported in the body
// with success=false, not as an HTTP error.
// @Summary Register name
// @Tags game
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Requested name"
// @Success 200 {object} RegisterResponse
// @Failure 503 {object} ErrorResponse
// @Router /game/register [post]
func (h *GameHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(r, w)
		if !ok {
			return
		}
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register name"); err != nil {
			return
		}

		name, err := h.service.RegisterName(r.Context(), id, req.RequestedName)
		switch {
		case errors.Is(err, domain.ErrInvalidName), errors.Is(err, domain.ErrNameTaken):
			_, msg := mapServiceErrorToUserMessage(err)
			respondJSON(w, http.StatusOK, RegisterResponse{Success: false, Error: msg})
			return
		case err != nil:
			respondServiceError(w, r, "Register name", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgNameRegistered, logger.AttrKeyPlayerID, id.PlayerID, "name", name)
		respondJSON(w, http.StatusOK, RegisterResponse{Success: true, Name: name})
	}
}

// HandleLeaderboard returns the merged money and depth ranking
// @Summary Leaderboard
// @Tags game
// @Produce json
// @Param limit query int false "Entries per ranking"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Router /leaderboard [get]
func (h *GameHandlers) HandleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(r, w, MaxLeaderboardLimit)
		if !ok {
			return
		}
		board, err := h.service.GetLeaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, LeaderboardResponse{Leaderboard: board})
	}
}
