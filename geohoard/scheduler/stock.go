package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

// StockScheduler rotates the shop on a fixed period.
type StockScheduler struct {
	store    *world.Store
	rng      entropy.Source
	interval time.Duration
	amount   int
}

// NewStockScheduler creates a stock rotation loop.
func NewStockScheduler(store *world.Store, rng entropy.Source, interval time.Duration, amount int) *StockScheduler {
	return &StockScheduler{
		store:    store,
		rng:      rng,
		interval: interval,
		amount:   amount,
	}
}

// Run performs an immediate rotation so the shop opens populated, then
// rotates every interval until the context is cancelled.
func (ss *StockScheduler) Run(ctx context.Context) {
	safeTick("stock-rotation", ss.rotate)

	ticker := time.NewTicker(ss.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			safeTick("stock-rotation", ss.rotate)
		}
	}
}

func (ss *StockScheduler) rotate() {
	added := ss.store.RotateStock(ss.rng, ss.amount)
	ss.store.SetNextRestock(time.Now().Add(ss.interval))
	logger.LogGame("Stock rotated", slog.Int("added", added))
}
