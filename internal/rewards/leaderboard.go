package rewards

import (
	"sort"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

const (
	// DefaultLeaderboardLimit is used when no limit is requested.
	DefaultLeaderboardLimit = 100
	// MaxLeaderboardLimit caps the response size.
	MaxLeaderboardLimit = 1000
)

// BuildLeaderboard returns the top users sorted by EcoPoints descending.
// Ties break on ascending user id so the ordering is deterministic.
// Non-positive limits fall back to the default; limits above the cap are
// clamped. Positions are 1-based within the truncated list.
func BuildLeaderboard(users map[string]*models.UserRecord, limit int) []models.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	entries := sortedEntries(users)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// FindPosition returns the 1-based index of userID in the full
// descending-sorted user list, or false when the user has no record.
func FindPosition(userID string, users map[string]*models.UserRecord) (int, bool) {
	if _, ok := users[userID]; !ok {
		return 0, false
	}
	for i, e := range sortedEntries(users) {
		if e.UserID == userID {
			return i + 1, true
		}
	}
	return 0, false
}

func sortedEntries(users map[string]*models.UserRecord) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for userID, rec := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:     userID,
			EcoPoints:  rec.EcoPoints,
			Rank:       rec.Rank,
			BadgeCount: len(rec.Badges),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].EcoPoints != entries[j].EcoPoints {
			return entries[i].EcoPoints > entries[j].EcoPoints
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
