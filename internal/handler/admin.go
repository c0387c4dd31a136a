package handler

import (
	"net/http"
	"time"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// AdminLeaderboardRequest is a bulk score upload
type AdminLeaderboardRequest struct {
	Players []domain.PlayerScore `json:"players" validate:"required,min=1,max=1000,dive"`
}

// AdminLeaderboardResponse reports how many rows were applied
type AdminLeaderboardResponse struct {
	Success bool `json:"success"`
	Updated int  `json:"updated"`
}

// MintTokenRequest asks for a signed player token
type MintTokenRequest struct {
	PlayerID   string `json:"playerId" validate:"required,max=128"`
	Name       string `json:"name" validate:"max=64"`
	TTLSeconds int64  `json:"ttlSeconds" validate:"gte=0"`
}

// MintTokenResponse carries the signed token
type MintTokenResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// AdminHandlers serves the API-key protected operator routes
type AdminHandlers struct {
	service AdminService
	tokens  TokenMinter
	now     func() time.Time
}

// NewAdminHandlers creates admin handlers. tokens may be nil when no JWT
// secret is configured; token minting then answers 503.
func NewAdminHandlers(service AdminService, tokens TokenMinter) *AdminHandlers {
	return &AdminHandlers{service: service, tokens: tokens, now: time.Now}
}

// HandleOverview returns the operator view of shared state
// @Summary Admin overview
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.AdminOverview
// @Router /admin/overview [get]
func (h *AdminHandlers) HandleOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := h.service.AdminOverview(r.Context())
		if err != nil {
			respondServiceError(w, r, "Admin overview", err)
			return
		}
		respondJSON(w, http.StatusOK, overview)
	}
}

// HandleUpsertLeaderboard applies a bulk score upload
// @Summary Bulk leaderboard update
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AdminLeaderboardRequest true "Scores"
// @Success 200 {object} AdminLeaderboardResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /admin/leaderboard [post]
func (h *AdminHandlers) HandleUpsertLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLeaderboardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin leaderboard"); err != nil {
			return
		}

		updated, err := h.service.AdminUpsertLeaderboard(r.Context(), req.Players)
		if err != nil {
			respondServiceError(w, r, "Admin leaderboard", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgLeaderboardBulk, "updated", updated)
		respondJSON(w, http.StatusOK, AdminLeaderboardResponse{Success: true, Updated: updated})
	}
}

// HandleMintToken signs a player token for bots and testing
// @Summary Mint player token
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body MintTokenRequest true "Subject"
// @Success 201 {object} MintTokenResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/tokens [post]
func (h *AdminHandlers) HandleMintToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.tokens == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgTokensUnavailable)
			return
		}
		var req MintTokenRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Mint token"); err != nil {
			return
		}

		ttl := time.Duration(req.TTLSeconds) * time.Second
		token, err := h.tokens.Mint(req.PlayerID, req.Name, ttl)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgServiceError, "op", "Mint token", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgMintTokenFailed)
			return
		}

		resp := MintTokenResponse{Token: token}
		if ttl > 0 {
			exp := h.now().Add(ttl).UTC()
			resp.ExpiresAt = &exp
		}
		logger.FromContext(r.Context()).Info(LogMsgTokenMinted, logger.AttrKeyPlayerID, req.PlayerID)
		respondJSON(w, http.StatusCreated, resp)
	}
}
