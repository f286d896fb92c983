package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AkshitTiwarii/carbonx/internal/rewards"
	"github.com/AkshitTiwarii/carbonx/internal/store"
)

// RewardsHandler exposes the reward service over HTTP.
type RewardsHandler struct {
	service *rewards.Service
}

// NewRewardsHandler creates the handler set for the rewards API.
func NewRewardsHandler(service *rewards.Service) *RewardsHandler {
	return &RewardsHandler{service: service}
}

// RegisterRoutes mounts the rewards API under /api/rewards.
func (h *RewardsHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/rewards")
	api.POST("/update", h.UpdateRewards)
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/user/:id", h.GetUserRewards)
	api.GET("/badges", h.GetBadges)
}

// UpdateRewardsRequest is the request body for tracking an eco-action
type UpdateRewardsRequest struct {
	UserID     string         `json:"user_id"`
	ActionType string         `json:"action_type"`
	Amount     float64        `json:"amount"`
	Metadata   map[string]any `json:"metadata"`
}

// UpdateRewards records an eco-action and returns the points earned,
// new totals and any newly-unlocked badges
func (h *RewardsHandler) UpdateRewards(c *gin.Context) {
	var req UpdateRewardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	result, err := h.service.RecordAction(c.Request.Context(), rewards.RecordActionInput{
		UserID:     req.UserID,
		ActionType: req.ActionType,
		Amount:     req.Amount,
		Metadata:   req.Metadata,
	})
	if err != nil {
		if rewards.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update rewards", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"points_earned": result.PointsEarned,
		"total_points":  result.TotalPoints,
		"rank":          result.Rank,
		"new_badges":    result.NewBadges,
		"action":        result.Action,
	})
}

// GetLeaderboard returns the top users sorted by EcoPoints
func (h *RewardsHandler) GetLeaderboard(c *gin.Context) {
	limitParam := c.DefaultQuery("limit", strconv.Itoa(rewards.DefaultLeaderboardLimit))
	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		limit = rewards.DefaultLeaderboardLimit
	}
	region := c.Query("region")

	resp, err := h.service.Leaderboard(c.Request.Context(), limit, region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch leaderboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserRewards returns a user's full rewards profile
func (h *RewardsHandler) GetUserRewards(c *gin.Context) {
	userID := c.Param("id")

	profile, err := h.service.UserProfile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case rewards.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch user rewards", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetBadges returns the static badge catalog
func (h *RewardsHandler) GetBadges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"badges":  h.service.BadgeCatalog(),
	})
}
