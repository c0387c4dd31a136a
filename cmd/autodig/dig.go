package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/progression"
	"github.com/osse101/TheDigger_Go/internal/session"
)

// player is the part of *session.Session the dig loop drives.
type player interface {
	Click() (session.ClickResult, error)
	BuyTool(toolID string) error
	BuyProducer(producerID string, quantity int) error
	Snapshot() domain.PlayerSnapshot
}

var _ player = (*session.Session)(nil)

// dig clicks every interval and shops every DefaultBuyInterval until ctx is
// done.
func dig(ctx context.Context, log *slog.Logger, p player, engine *progression.Engine, interval time.Duration) {
	clicks := time.NewTicker(interval)
	defer clicks.Stop()
	shop := time.NewTicker(DefaultBuyInterval)
	defer shop.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-clicks.C:
			if _, err := p.Click(); err != nil {
				log.Warn("Click failed", "error", err)
			}
		case <-shop.C:
			shopOnce(log, p, engine)
		}
	}
}

// shopOnce keeps buying until nothing is affordable. It returns how many
// purchases went through.
func shopOnce(log *slog.Logger, p player, engine *progression.Engine) int {
	bought := 0
	for {
		next := nextPurchase(engine, p.Snapshot())
		var err error
		switch next.kind {
		case buyTool:
			err = p.BuyTool(next.id)
		case buyProducer:
			err = p.BuyProducer(next.id, 1)
		default:
			return bought
		}
		if err != nil {
			log.Warn("Purchase failed", "item", next.id, "error", err)
			return bought
		}
		log.Info("Purchased", "item", next.id, "cost", next.cost)
		bought++
	}
}
