package domain

import "maps"

// PlayerSnapshot is the complete persisted progression state of one player.
type PlayerSnapshot struct {
	Money                float64        `json:"money"`
	Depth                float64        `json:"depth"`
	CurrentTool          string         `json:"currentTool"`
	AutoDiggers          map[string]int `json:"autoDiggers"`
	OreInventory         map[string]int `json:"oreInventory"`
	DiscoveredOres       Set[string]    `json:"discoveredOres"`
	DiscoveredBiomes     Set[int]       `json:"discoveredBiomes"`
	TotalClicks          int64          `json:"totalClicks"`
	UnlockedAchievements Set[string]    `json:"unlockedAchievements"`
	PlayerName           string         `json:"playerName,omitempty"`
}

// Clone returns a deep copy so that callers can mutate the result freely.
func (s PlayerSnapshot) Clone() PlayerSnapshot {
	c := s
	c.AutoDiggers = cloneCounts(s.AutoDiggers)
	c.OreInventory = cloneCounts(s.OreInventory)
	c.DiscoveredOres = s.DiscoveredOres.Clone()
	c.DiscoveredBiomes = s.DiscoveredBiomes.Clone()
	c.UnlockedAchievements = s.UnlockedAchievements.Clone()
	return c
}

// Equal reports whether two snapshots hold identical state.
func (s PlayerSnapshot) Equal(other PlayerSnapshot) bool {
	return s.Money == other.Money &&
		s.Depth == other.Depth &&
		s.CurrentTool == other.CurrentTool &&
		s.TotalClicks == other.TotalClicks &&
		s.PlayerName == other.PlayerName &&
		countsEqual(s.AutoDiggers, other.AutoDiggers) &&
		countsEqual(s.OreInventory, other.OreInventory) &&
		s.DiscoveredOres.Equal(other.DiscoveredOres) &&
		s.DiscoveredBiomes.Equal(other.DiscoveredBiomes) &&
		s.UnlockedAchievements.Equal(other.UnlockedAchievements)
}

// TotalOres sums the lifetime ore inventory.
func (s PlayerSnapshot) TotalOres() int {
	total := 0
	for _, n := range s.OreInventory {
		total += n
	}
	return total
}

// TotalAutoDiggers sums owned auto-diggers across all kinds.
func (s PlayerSnapshot) TotalAutoDiggers() int {
	total := 0
	for _, n := range s.AutoDiggers {
		total += n
	}
	return total
}

func cloneCounts(m map[string]int) map[string]int {
	if m == nil {
		return make(map[string]int)
	}
	return maps.Clone(m)
}

// countsEqual treats missing keys and zero counts as the same.
func countsEqual(a, b map[string]int) bool {
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}
