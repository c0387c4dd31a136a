package main

import (
	"math"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/progression"
)

type purchaseKind int

const (
	buyNothing purchaseKind = iota
	buyTool
	buyProducer
)

type purchase struct {
	kind purchaseKind
	id   string
	cost float64
}

// nextPurchase picks the next tool when affordable, otherwise the cheapest
// affordable auto-digger.
func nextPurchase(e *progression.Engine, s domain.PlayerSnapshot) purchase {
	if tool, ok := e.Catalog().NextTool(s.CurrentTool); ok && e.CanAfford(s, tool.Cost) {
		return purchase{kind: buyTool, id: tool.ID, cost: tool.Cost}
	}

	best := purchase{kind: buyNothing, cost: math.Inf(1)}
	for _, p := range e.Catalog().Producers() {
		cost, err := e.ProducerCost(s, p.ID)
		if err != nil || !e.CanAfford(s, cost) {
			continue
		}
		if cost < best.cost {
			best = purchase{kind: buyProducer, id: p.ID, cost: cost}
		}
	}
	return best
}
