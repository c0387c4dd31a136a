package domain

// AdminOverview is the operator view of one deployment's shared state.
type AdminOverview struct {
	Namespace        string             `json:"namespace"`
	TotalPlayers     int64              `json:"totalPlayers"`
	RegisteredNames  int64              `json:"registeredNames"`
	GlobalClicks     int64              `json:"globalClicks"`
	MoneyLeaderboard []ScoredMember     `json:"moneyLeaderboard"`
	DepthLeaderboard []ScoredMember     `json:"depthLeaderboard"`
	AllPlayers       []LeaderboardEntry `json:"allPlayers"`
	NameIndex        map[string]string  `json:"nameIndex"`
	GoalHistory      map[string]string  `json:"goalHistory"`
}

// PlayerScore is one row of an operator bulk leaderboard upload.
// Nil fields leave the corresponding ranking untouched.
type PlayerScore struct {
	Name  string   `json:"name" validate:"required,playername"`
	Money *float64 `json:"money,omitempty" validate:"omitempty,gte=0"`
	Depth *float64 `json:"depth,omitempty" validate:"omitempty,gte=0"`
}
