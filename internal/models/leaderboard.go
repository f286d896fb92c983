package models

// LeaderboardEntry represents a user's position on the leaderboard
type LeaderboardEntry struct {
	Position   int    `json:"position"`
	UserID     string `json:"user_id"`
	EcoPoints  int    `json:"ecoPoints"`
	Rank       int    `json:"rank"`
	BadgeCount int    `json:"badge_count"`
}

// LeaderboardResponse is the API response for leaderboards
type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Region      string             `json:"region"`
	TotalUsers  int                `json:"total_users"`
}

// UserStats summarizes a user's tracked activity for the profile view.
type UserStats struct {
	TotalActions     int     `json:"total_actions"`
	CarbonOffsetTons float64 `json:"carbon_offset_tons"`
	BadgeCount       int     `json:"badge_count"`
}

// UserProfileResponse is the API response for a single user's rewards.
type UserProfileResponse struct {
	Success       bool              `json:"success"`
	UserID        string            `json:"user_id"`
	EcoPoints     int               `json:"ecoPoints"`
	Rank          int               `json:"rank"`
	Position      *int              `json:"position"`
	Badges        []BadgeDefinition `json:"badges"`
	Stats         UserStats         `json:"stats"`
	RecentActions []ActionRecord    `json:"recent_actions"`
}
