package progression

import (
	"fmt"
	"math"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Validate checks a snapshot received from outside the process. Every
// failure wraps domain.ErrInvalidSnapshot and, where one exists, the
// sentinel of the specific cause.
func (e *Engine) Validate(s domain.PlayerSnapshot) error {
	if !validAmount(s.Money) {
		return fmt.Errorf(ErrMsgSnapshotNumber, domain.ErrInvalidSnapshot, fieldMoney, s.Money)
	}
	if !validAmount(s.Depth) {
		return fmt.Errorf(ErrMsgSnapshotNumber, domain.ErrInvalidSnapshot, fieldDepth, s.Depth)
	}
	if s.TotalClicks < 0 {
		return fmt.Errorf(ErrMsgSnapshotNumber, domain.ErrInvalidSnapshot, fieldTotalClicks, s.TotalClicks)
	}

	if _, ok := e.catalog.Tool(s.CurrentTool); !ok {
		return fmt.Errorf(ErrMsgSnapshotUnknownID, domain.ErrInvalidSnapshot, fieldCurrentTool, s.CurrentTool, domain.ErrUnknownTool)
	}

	for id, n := range s.AutoDiggers {
		if _, ok := e.catalog.Producer(id); !ok {
			return fmt.Errorf(ErrMsgSnapshotUnknownID, domain.ErrInvalidSnapshot, fieldAutoDiggers, id, domain.ErrUnknownProducer)
		}
		if n < 0 {
			return fmt.Errorf(ErrMsgSnapshotCount, domain.ErrInvalidSnapshot, fieldAutoDiggers, id)
		}
	}
	for id, n := range s.OreInventory {
		if _, ok := e.catalog.Ore(id); !ok {
			return fmt.Errorf(ErrMsgSnapshotUnknownID, domain.ErrInvalidSnapshot, fieldOreInventory, id, domain.ErrInvalidOre)
		}
		if n < 0 {
			return fmt.Errorf(ErrMsgSnapshotCount, domain.ErrInvalidSnapshot, fieldOreInventory, id)
		}
	}
	for _, id := range s.DiscoveredOres.Values() {
		if _, ok := e.catalog.Ore(id); !ok {
			return fmt.Errorf(ErrMsgSnapshotUnknownID, domain.ErrInvalidSnapshot, fieldDiscoveredOres, id, domain.ErrInvalidOre)
		}
	}
	for _, id := range s.DiscoveredBiomes.Values() {
		if _, ok := e.catalog.Biome(id); !ok {
			return fmt.Errorf(ErrMsgSnapshotUnknownID, domain.ErrInvalidSnapshot, fieldDiscoveredBiomes, id, domain.ErrUnknownBiome)
		}
	}
	return nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Normalize fills the invariant members a decoded snapshot may be missing:
// empty maps, the starter ore and the starter biome.
func (e *Engine) Normalize(s domain.PlayerSnapshot) domain.PlayerSnapshot {
	next := s.Clone()
	if next.CurrentTool == "" {
		next.CurrentTool = e.catalog.StarterTool().ID
	}
	next.DiscoveredOres.Add(e.catalog.StarterOre())
	next.DiscoveredBiomes.Add(e.catalog.StarterBiome().ID)
	return next
}
