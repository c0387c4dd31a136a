package handler

import (
	"net/http"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// MaxActivityLimit caps ?limit= on the activity feed
const MaxActivityLimit = 200

// GoalsResponse lists today's community goals
type GoalsResponse struct {
	Goals []domain.DailyGoal `json:"goals"`
}

// ContributeRequest is a session's batched goal contribution
type ContributeRequest struct {
	Depth int64 `json:"depth" validate:"gte=0"`
	Ores  int64 `json:"ores" validate:"gte=0"`
	Money int64 `json:"money" validate:"gte=0"`
}

// PostActivityRequest adds an entry to the community feed
type PostActivityRequest struct {
	ActivityType domain.ActivityType `json:"activityType" validate:"required,oneof=achievement tool producer biome depth custom"`
	Details      string              `json:"details" validate:"required,max=1000"`
}

// ActivitiesResponse is the feed, newest first
type ActivitiesResponse struct {
	Activities []domain.Activity `json:"activities"`
}

// CommunityHandlers serves the shared-state routes
type CommunityHandlers struct {
	service CommunityService
}

// NewCommunityHandlers creates new community handlers
func NewCommunityHandlers(service CommunityService) *CommunityHandlers {
	return &CommunityHandlers{service: service}
}

// HandleStats returns deployment-wide totals
// @Summary Global stats
// @Tags community
// @Produce json
// @Success 200 {object} domain.GlobalStats
// @Router /community/stats [get]
func (h *CommunityHandlers) HandleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.service.GetGlobalStats(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get stats", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

// HandleGoals returns today's goal progress
// @Summary Daily goals
// @Tags community
// @Produce json
// @Success 200 {object} GoalsResponse
// @Router /community/goals [get]
func (h *CommunityHandlers) HandleGoals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goals, err := h.service.GetDailyGoals(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get goals", err)
			return
		}
		respondJSON(w, http.StatusOK, GoalsResponse{Goals: goals})
	}
}

// HandleContribute adds a session's deltas to today's goals
// @Summary Contribute to goals
// @Tags community
// @Accept json
// @Produce json
// @Param request body ContributeRequest true "Deltas"
// @Success 200 {object} GoalsResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /community/goals/contribute [post]
func (h *CommunityHandlers) HandleContribute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(r, w); !ok {
			return
		}
		var req ContributeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Contribute goals"); err != nil {
			return
		}

		err := h.service.ContributeGoals(r.Context(), domain.GoalContribution{
			Depth: req.Depth,
			Ores:  req.Ores,
			Money: req.Money,
		})
		if err != nil {
			respondServiceError(w, r, "Contribute goals", err)
			return
		}

		goals, err := h.service.GetDailyGoals(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get goals", err)
			return
		}
		respondJSON(w, http.StatusOK, GoalsResponse{Goals: goals})
	}
}

// HandlePostActivity adds a feed entry under the caller's display name
// @Summary Post activity
// @Tags community
// @Accept json
// @Produce json
// @Param request body PostActivityRequest true "Activity"
// @Success 201 {object} domain.Activity
// @Failure 400 {object} ValidationErrorResponse
// @Router /community/activity [post]
func (h *CommunityHandlers) HandlePostActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(r, w)
		if !ok {
			return
		}
		var req PostActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Post activity"); err != nil {
			return
		}

		activity, err := h.service.PostActivity(r.Context(), id, req.ActivityType, req.Details)
		if err != nil {
			respondServiceError(w, r, "Post activity", err)
			return
		}
		respondJSON(w, http.StatusCreated, activity)
	}
}

// HandleListActivity returns the most recent feed entries
// @Summary Recent activity
// @Tags community
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {object} ActivitiesResponse
// @Router /community/activity [get]
func (h *CommunityHandlers) HandleListActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(r, w, MaxActivityLimit)
		if !ok {
			return
		}
		activities, err := h.service.RecentActivities(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "List activity", err)
			return
		}
		respondJSON(w, http.StatusOK, ActivitiesResponse{Activities: activities})
	}
}
