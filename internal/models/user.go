package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxActionHistory bounds the per-user action log. Older entries are
// evicted first when the log is full.
const MaxActionHistory = 100

// ActionRecord is a single tracked eco-action. Immutable once created.
type ActionRecord struct {
	ID           uuid.UUID      `json:"id"`
	Type         string         `json:"type"`
	Amount       float64        `json:"amount"`
	PointsEarned int            `json:"points_earned"`
	Timestamp    time.Time      `json:"timestamp"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// UserRecord holds a user's cumulative reward state.
//
// EcoPoints never decreases (no action subtracts points) and Badges is
// append-only in first-earned order. Actions keeps the most recent
// MaxActionHistory entries, most-recent last.
type UserRecord struct {
	EcoPoints int            `json:"ecoPoints"`
	Badges    []string       `json:"badges"`
	Rank      int            `json:"rank"`
	Actions   []ActionRecord `json:"actions"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewUserRecord returns a zero-value record for a first-time user.
func NewUserRecord(now time.Time) *UserRecord {
	return &UserRecord{
		Badges:    []string{},
		Actions:   []ActionRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasBadge reports whether the user already earned the given badge.
func (u *UserRecord) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// AppendAction adds an action to the history, evicting the oldest
// entries beyond MaxActionHistory.
func (u *UserRecord) AppendAction(a ActionRecord) {
	u.Actions = append(u.Actions, a)
	if len(u.Actions) > MaxActionHistory {
		u.Actions = u.Actions[len(u.Actions)-MaxActionHistory:]
	}
}

// CountActions returns how many historical actions satisfy the predicate.
func (u *UserRecord) CountActions(match func(ActionRecord) bool) int {
	count := 0
	for _, a := range u.Actions {
		if match(a) {
			count++
		}
	}
	return count
}
