package domain

import "time"

// GoalDimension is a community goal accumulator.
type GoalDimension string

const (
	GoalDepth GoalDimension = "depth"
	GoalOres  GoalDimension = "ores"
	GoalMoney GoalDimension = "money"
)

// GoalDimensions lists every accumulator in display order.
var GoalDimensions = []GoalDimension{GoalDepth, GoalOres, GoalMoney}

// Valid reports whether d is a known accumulator.
func (d GoalDimension) Valid() bool {
	switch d {
	case GoalDepth, GoalOres, GoalMoney:
		return true
	}
	return false
}

// DailyGoal is the state of one community goal for a UTC day.
type DailyGoal struct {
	ID         GoalDimension `json:"id"`
	Name       string        `json:"name"`
	Target     int64         `json:"target"`
	Current    int64         `json:"current"`
	Unit       string        `json:"unit"`
	Reward     string        `json:"reward"`
	Percentage int           `json:"percentage"`
	Completed  bool          `json:"completed"`
	DateKey    string        `json:"dateKey"`
}

// GoalDefinition describes one community goal independent of the day.
type GoalDefinition struct {
	ID     GoalDimension `json:"id" koanf:"id" validate:"oneof=depth ores money"`
	Name   string        `json:"name" koanf:"name" validate:"required"`
	Target int64         `json:"target" koanf:"target" validate:"gt=0"`
	Unit   string        `json:"unit" koanf:"unit"`
	Reward string        `json:"reward" koanf:"reward"`
}

// DefaultGoals are used when tuning supplies none.
var DefaultGoals = []GoalDefinition{
	{ID: GoalDepth, Name: "Deep Dive", Target: 1_000_000, Unit: "ft", Reward: "Community Driller badge"},
	{ID: GoalOres, Name: "Ore Rush", Target: 100_000, Unit: "ores", Reward: "Prospector badge"},
	{ID: GoalMoney, Name: "Gold Fever", Target: 1_000_000_000, Unit: "$", Reward: "Tycoon badge"},
}

// GoalContribution is a batch of deltas a session adds to today's goals.
type GoalContribution struct {
	Depth int64 `json:"depth"`
	Ores  int64 `json:"ores"`
	Money int64 `json:"money"`
}

// IsZero reports whether the contribution carries nothing.
func (c GoalContribution) IsZero() bool {
	return c.Depth <= 0 && c.Ores <= 0 && c.Money <= 0
}

// GlobalStats are the deployment-wide aggregates.
type GlobalStats struct {
	TotalPlayers    int64 `json:"totalPlayers"`
	RegisteredNames int64 `json:"registeredNames"`
	GlobalClicks    int64 `json:"globalClicks"`
}

// ActivityType classifies feed entries.
type ActivityType string

const (
	ActivityAchievement ActivityType = "achievement"
	ActivityTool        ActivityType = "tool"
	ActivityProducer    ActivityType = "producer"
	ActivityBiome       ActivityType = "biome"
	ActivityDepth       ActivityType = "depth"
	ActivityCustom      ActivityType = "custom"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityAchievement, ActivityTool, ActivityProducer, ActivityBiome, ActivityDepth, ActivityCustom:
		return true
	}
	return false
}

// Activity is one entry in the community feed.
type Activity struct {
	ID           string       `json:"id"`
	PlayerName   string       `json:"playerName"`
	ActivityType ActivityType `json:"activityType"`
	Details      string       `json:"details"`
	Timestamp    time.Time    `json:"timestamp"`
}
