package progression

import (
	"fmt"
	"math"

	"github.com/osse101/TheDigger_Go/internal/achievement"
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Engine applies game rules to player snapshots. Every operation takes a
// snapshot by value and returns a new one; the input is never mutated.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	book    *achievement.Book
}

// NewEngine creates an engine over an immutable catalog and achievement book.
func NewEngine(cat *catalog.Catalog, book *achievement.Book) *Engine {
	return &Engine{catalog: cat, book: book}
}

// Catalog returns the economy data the engine prices against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Book returns the achievement book the engine evaluates.
func (e *Engine) Book() *achievement.Book { return e.book }

// NewSnapshot returns the starter state for a new player.
func (e *Engine) NewSnapshot(name string) domain.PlayerSnapshot {
	return domain.PlayerSnapshot{
		CurrentTool:          e.catalog.StarterTool().ID,
		AutoDiggers:          make(map[string]int),
		OreInventory:         make(map[string]int),
		DiscoveredOres:       domain.NewSet(e.catalog.StarterOre()),
		DiscoveredBiomes:     domain.NewSet(e.catalog.StarterBiome().ID),
		UnlockedAchievements: domain.NewSet[string](),
		PlayerName:           name,
	}
}

// ApplyClick mines one unit of oreID with the current tool.
func (e *Engine) ApplyClick(s domain.PlayerSnapshot, oreID string) (domain.PlayerSnapshot, error) {
	ore, ok := e.catalog.Ore(oreID)
	if !ok {
		return s, fmt.Errorf(ErrMsgUnknownOreFmt, domain.ErrInvalidOre, oreID)
	}
	tool, ok := e.catalog.Tool(s.CurrentTool)
	if !ok {
		return s, fmt.Errorf(ErrMsgUnknownToolFmt, domain.ErrUnknownTool, s.CurrentTool)
	}

	next := s.Clone()
	next.TotalClicks++
	next.Depth++
	next.Money += math.Floor(ore.Value * tool.Multiplier)
	next.OreInventory[oreID]++
	next.DiscoveredOres.Add(oreID)
	next.DiscoveredBiomes.Add(e.catalog.BiomeForDepth(next.Depth).ID)
	return next, nil
}

// ApplyAutoProduction advances depth by the production rate over
// elapsedSeconds. Negative or non-finite durations add nothing.
func (e *Engine) ApplyAutoProduction(s domain.PlayerSnapshot, elapsedSeconds float64) domain.PlayerSnapshot {
	next := s.Clone()
	if elapsedSeconds <= 0 || math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) {
		return next
	}
	rate := e.ProductionRate(s)
	if rate <= 0 {
		return next
	}
	next.Depth += rate * elapsedSeconds
	next.DiscoveredBiomes.Add(e.catalog.BiomeForDepth(next.Depth).ID)
	return next
}

// PurchaseTool moves the player to toolID. Only later tools may be bought.
func (e *Engine) PurchaseTool(s domain.PlayerSnapshot, toolID string) (domain.PlayerSnapshot, error) {
	tool, ok := e.catalog.Tool(toolID)
	if !ok {
		return s, fmt.Errorf(ErrMsgUnknownToolFmt, domain.ErrUnknownTool, toolID)
	}
	if e.catalog.ToolIndex(toolID) <= e.catalog.ToolIndex(s.CurrentTool) {
		return s, fmt.Errorf(ErrMsgToolNotUpgrade, domain.ErrInvalidTransition, toolID, s.CurrentTool)
	}
	if !e.CanAfford(s, tool.Cost) {
		return s, fmt.Errorf(ErrMsgCannotAfford, domain.ErrInsufficientFunds, tool.Cost, s.Money)
	}

	next := s.Clone()
	next.Money -= tool.Cost
	next.CurrentTool = tool.ID
	return next, nil
}

// PurchaseProducer buys quantity units of an auto-digger. Each unit is
// priced at the owned count at the moment it is bought; the whole batch
// must be affordable or nothing is bought.
func (e *Engine) PurchaseProducer(s domain.PlayerSnapshot, producerID string, quantity int) (domain.PlayerSnapshot, error) {
	p, ok := e.catalog.Producer(producerID)
	if !ok {
		return s, fmt.Errorf(ErrMsgUnknownProducerFmt, domain.ErrUnknownProducer, producerID)
	}
	if quantity < 1 {
		return s, fmt.Errorf(ErrMsgBadQuantity, domain.ErrInvalidQuantity, quantity)
	}

	owned := s.AutoDiggers[producerID]
	cost := e.catalog.BatchProducerCost(p, owned, quantity)
	if !e.CanAfford(s, cost) {
		return s, fmt.Errorf(ErrMsgCannotAfford, domain.ErrInsufficientFunds, cost, s.Money)
	}

	next := s.Clone()
	next.Money -= cost
	next.AutoDiggers[producerID] = owned + quantity
	return next, nil
}

// DiscoverBiome records the biome containing depth.
func (e *Engine) DiscoverBiome(s domain.PlayerSnapshot, depth float64) domain.PlayerSnapshot {
	next := s.Clone()
	next.DiscoveredBiomes.Add(e.catalog.BiomeForDepth(depth).ID)
	return next
}

// ResetProgress returns a fresh snapshot. Only the player name survives.
func (e *Engine) ResetProgress(s domain.PlayerSnapshot) domain.PlayerSnapshot {
	return e.NewSnapshot(s.PlayerName)
}

// CurrentBiome is the biome at the snapshot's depth.
func (e *Engine) CurrentBiome(s domain.PlayerSnapshot) catalog.Biome {
	return e.catalog.BiomeForDepth(s.Depth)
}

// ProductionRate is the combined depth per second of every owned auto-digger.
func (e *Engine) ProductionRate(s domain.PlayerSnapshot) float64 {
	rate := 0.0
	for _, p := range e.catalog.Producers() {
		if n := s.AutoDiggers[p.ID]; n > 0 {
			rate += p.DepthPerSecond * float64(n)
		}
	}
	return rate
}

// CanAfford reports whether s holds at least cost money.
func (e *Engine) CanAfford(s domain.PlayerSnapshot, cost float64) bool {
	return s.Money >= cost
}

// NextToolCost returns the price of the next tool, or false at the last one.
func (e *Engine) NextToolCost(s domain.PlayerSnapshot) (float64, bool) {
	next, ok := e.catalog.NextTool(s.CurrentTool)
	if !ok {
		return 0, false
	}
	return next.Cost, true
}

// ProducerCost prices the next unit of producerID for this snapshot.
func (e *Engine) ProducerCost(s domain.PlayerSnapshot, producerID string) (float64, error) {
	p, ok := e.catalog.Producer(producerID)
	if !ok {
		return 0, fmt.Errorf(ErrMsgUnknownProducerFmt, domain.ErrUnknownProducer, producerID)
	}
	return e.catalog.ProducerCost(p, s.AutoDiggers[producerID]), nil
}

// UnlockAchievements records every newly satisfied achievement and returns
// them in book order. Calling it again on the result yields nothing.
func (e *Engine) UnlockAchievements(s domain.PlayerSnapshot) (domain.PlayerSnapshot, []achievement.Achievement) {
	fresh := e.book.NewlyUnlocked(s)
	next := s.Clone()
	for _, a := range fresh {
		next.UnlockedAchievements.Add(a.ID)
	}
	return next, fresh
}
