package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AkshitTiwarii/carbonx/internal/models"
	"github.com/AkshitTiwarii/carbonx/internal/store"
)

// Service orchestrates the engines per request: load user, score the
// action, append history, recompute rank, evaluate badges, persist.
type Service struct {
	store store.Store
}

// NewService creates a reward service backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// RecordActionInput is a validated-on-entry action submission.
type RecordActionInput struct {
	UserID     string
	ActionType string
	Amount     float64
	Metadata   map[string]any
}

// RecordActionResult is the outcome of one tracked action.
type RecordActionResult struct {
	PointsEarned int
	TotalPoints  int
	Rank         int
	NewBadges    []models.BadgeDefinition
	Action       models.ActionRecord
}

// RecordAction applies one eco-action to the user's record: score it,
// append it to the history, recompute totals and rank, persist, then
// evaluate and persist any newly-earned badges.
func (s *Service) RecordAction(ctx context.Context, in RecordActionInput) (*RecordActionResult, error) {
	if in.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if in.ActionType == "" {
		return nil, ErrInvalidActionType
	}

	now := time.Now().UTC()
	amount := NormalizeAmount(in.Amount)

	// The whole read-modify-write cycle runs inside store.Update, so
	// concurrent requests for the same user cannot lose each other's
	// points or actions.
	var (
		action       models.ActionRecord
		pointsEarned int
		newTotal     int
		newRank      int
	)
	err := s.store.Update(ctx, in.UserID, func(user *models.UserRecord) error {
		pointsEarned = ComputePoints(in.ActionType, amount)
		newTotal = user.EcoPoints + pointsEarned
		newRank = ComputeRank(newTotal)

		action = models.ActionRecord{
			ID:           uuid.New(),
			Type:         in.ActionType,
			Amount:       amount,
			PointsEarned: pointsEarned,
			Timestamp:    now,
			Metadata:     in.Metadata,
		}

		user.AppendAction(action)
		user.EcoPoints = newTotal
		user.Rank = newRank
		user.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist action: %w", err)
	}

	// Badge evaluation runs a second cycle against the persisted record,
	// so the history already includes the triggering action.
	var newBadgeIDs []string
	err = s.store.Update(ctx, in.UserID, func(user *models.UserRecord) error {
		newBadgeIDs = EvaluateBadges(user, newTotal, in.ActionType)
		if len(newBadgeIDs) > 0 {
			user.Badges = append(user.Badges, newBadgeIDs...)
			user.UpdatedAt = time.Now().UTC()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist badges: %w", err)
	}

	newBadges := make([]models.BadgeDefinition, 0, len(newBadgeIDs))
	for _, id := range newBadgeIDs {
		if def, ok := models.BadgeByID(id); ok {
			newBadges = append(newBadges, def)
		}
	}

	log.WithFields(log.Fields{
		"user_id":       in.UserID,
		"action_type":   in.ActionType,
		"points_earned": pointsEarned,
		"total_points":  newTotal,
		"new_badges":    newBadgeIDs,
	}).Info("Recorded eco-action")

	return &RecordActionResult{
		PointsEarned: pointsEarned,
		TotalPoints:  newTotal,
		Rank:         newRank,
		NewBadges:    newBadges,
		Action:       action,
	}, nil
}

// Leaderboard returns the top users by EcoPoints. The region is a
// pass-through label only, defaulting to "global".
func (s *Service) Leaderboard(ctx context.Context, limit int, region string) (*models.LeaderboardResponse, error) {
	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	if region == "" {
		region = "global"
	}

	return &models.LeaderboardResponse{
		Success:     true,
		Leaderboard: BuildLeaderboard(users, limit),
		Region:      region,
		TotalUsers:  len(users),
	}, nil
}

// UserProfile returns a user's points, rank, global position, badge
// details, activity stats and the ten most recent actions. Returns
// store.ErrNotFound when the user has no record.
func (s *Service) UserProfile(ctx context.Context, userID string) (*models.UserProfileResponse, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	user, ok := users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}

	badges := make([]models.BadgeDefinition, 0, len(user.Badges))
	for _, id := range user.Badges {
		if def, ok := models.BadgeByID(id); ok {
			badges = append(badges, def)
		}
	}

	carbonOffset := 0.0
	for _, a := range user.Actions {
		if a.Type == "carbon_offset" {
			carbonOffset += a.Amount
		}
	}

	recent := user.Actions
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	profile := &models.UserProfileResponse{
		Success:   true,
		UserID:    userID,
		EcoPoints: user.EcoPoints,
		Rank:      user.Rank,
		Badges:    badges,
		Stats: models.UserStats{
			TotalActions:     len(user.Actions),
			CarbonOffsetTons: carbonOffset,
			BadgeCount:       len(badges),
		},
		RecentActions: recent,
	}
	if pos, ok := FindPosition(userID, users); ok {
		profile.Position = &pos
	}
	return profile, nil
}

// BadgeCatalog returns the static badge definitions.
func (s *Service) BadgeCatalog() []models.BadgeDefinition {
	return models.BadgeCatalog
}
