package domain

// LeaderboardDimension names one of the two independently ranked metrics.
type LeaderboardDimension string

const (
	DimensionMoney LeaderboardDimension = "money"
	DimensionDepth LeaderboardDimension = "depth"
)

// LeaderboardEntry is one player's row in the merged leaderboard view.
// Rank is the 1-based output position, not a stored attribute.
type LeaderboardEntry struct {
	PlayerName string  `json:"playerName"`
	Money      float64 `json:"money"`
	Depth      float64 `json:"depth"`
	Rank       int     `json:"rank"`
}

// ScoredMember is a raw sorted-set row as read from the store.
type ScoredMember struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// PlayerStanding is a player's 1-based rank by money.
type PlayerStanding struct {
	PlayerName string `json:"playerName"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
}

// LoadResult is what a player receives when a session starts.
type LoadResult struct {
	PlayerID       string             `json:"playerId"`
	Snapshot       PlayerSnapshot     `json:"snapshot"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
	PlayerStanding *PlayerStanding    `json:"playerStanding,omitempty"`
}

// SaveResult is the refreshed ranking returned after a save.
type SaveResult struct {
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
	PlayerStanding *PlayerStanding    `json:"playerStanding,omitempty"`
}
