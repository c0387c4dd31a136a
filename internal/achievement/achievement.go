package achievement

import (
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Requirement is the condition an achievement tests against a snapshot.
// Value is a threshold for numeric kinds, a minimum count for specific_ore
// and a biome id for biome. Target names the ore, tool or auto-digger.
type Requirement struct {
	Kind   string  `yaml:"kind" json:"kind"`
	Value  float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Target string  `yaml:"target,omitempty" json:"target,omitempty"`
}

// Achievement is a single entry of the book.
type Achievement struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Category    string      `yaml:"category" json:"category"`
	Icon        string      `yaml:"icon" json:"icon"`
	Requirement Requirement `yaml:"requirement" json:"requirement"`
}

// Book is the ordered, immutable set of achievements bound to a catalog.
type Book struct {
	catalog      *catalog.Catalog
	achievements []Achievement
	index        map[string]int
}

// All returns every achievement in display order.
func (b *Book) All() []Achievement {
	return append([]Achievement(nil), b.achievements...)
}

// Get looks up an achievement by id.
func (b *Book) Get(id string) (Achievement, bool) {
	i, ok := b.index[id]
	if !ok {
		return Achievement{}, false
	}
	return b.achievements[i], true
}

// Len is the number of achievements in the book.
func (b *Book) Len() int { return len(b.achievements) }

// IsUnlocked reports whether s currently satisfies a. Special and unknown
// kinds never unlock from state.
func (b *Book) IsUnlocked(a Achievement, s domain.PlayerSnapshot) bool {
	req := a.Requirement
	switch req.Kind {
	case KindDepth:
		return req.Value > 0 && s.Depth >= req.Value
	case KindMoney:
		return s.Money >= req.Value
	case KindClicks:
		return float64(s.TotalClicks) >= req.Value
	case KindSpecificOre:
		return float64(s.OreInventory[req.Target]) >= req.Value
	case KindTotalOres:
		return float64(s.TotalOres()) >= req.Value
	case KindDistinctOres:
		return float64(s.DiscoveredOres.Len()) >= req.Value
	case KindTool:
		have := b.catalog.ToolIndex(s.CurrentTool)
		want := b.catalog.ToolIndex(req.Target)
		return have >= 0 && want >= 0 && have >= want
	case KindProducer:
		return s.AutoDiggers[req.Target] > 0
	case KindProducerCount:
		return float64(s.TotalAutoDiggers()) >= req.Value
	case KindBiome:
		return s.DiscoveredBiomes.Has(int(req.Value))
	default:
		return false
	}
}

// NewlyUnlocked returns the achievements s satisfies that it has not yet
// recorded, in book order.
func (b *Book) NewlyUnlocked(s domain.PlayerSnapshot) []Achievement {
	var fresh []Achievement
	for _, a := range b.achievements {
		if s.UnlockedAchievements.Has(a.ID) {
			continue
		}
		if b.IsUnlocked(a, s) {
			fresh = append(fresh, a)
		}
	}
	return fresh
}
