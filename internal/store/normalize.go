package store

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

// normalizeRecord coerces a loaded record's fields back to their declared
// types and defaults. The persisted table is semi-trusted: it may have been
// written by an older version or edited by hand. Repair here is a recovery
// strategy, never an error.
func normalizeRecord(rec *models.UserRecord, now time.Time) *models.UserRecord {
	if rec == nil {
		return models.NewUserRecord(now)
	}

	if rec.EcoPoints < 0 {
		rec.EcoPoints = 0
	}
	if rec.Rank < 0 {
		rec.Rank = 0
	}

	// Drop duplicate or unknown badges, keeping first-earned order.
	badges := make([]string, 0, len(rec.Badges))
	seen := make(map[string]bool, len(rec.Badges))
	for _, id := range rec.Badges {
		if id == "" || seen[id] {
			continue
		}
		if _, ok := models.BadgeByID(id); !ok {
			continue
		}
		seen[id] = true
		badges = append(badges, id)
	}
	rec.Badges = badges

	actions := make([]models.ActionRecord, 0, len(rec.Actions))
	for _, a := range rec.Actions {
		if a.Type == "" {
			continue
		}
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.Amount <= 0 || math.IsNaN(a.Amount) || math.IsInf(a.Amount, 0) {
			a.Amount = 1.0
		}
		if a.PointsEarned < 0 {
			a.PointsEarned = 0
		}
		if a.Timestamp.IsZero() {
			a.Timestamp = now
		}
		actions = append(actions, a)
	}
	if len(actions) > models.MaxActionHistory {
		actions = actions[len(actions)-models.MaxActionHistory:]
	}
	rec.Actions = actions

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	return rec
}
