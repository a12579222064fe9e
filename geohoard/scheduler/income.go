package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

// IncomeScheduler credits passive income every tick (one second in the
// default configuration).
type IncomeScheduler struct {
	store    *world.Store
	interval time.Duration
}

// NewIncomeScheduler creates an income accrual loop.
func NewIncomeScheduler(store *world.Store, interval time.Duration) *IncomeScheduler {
	return &IncomeScheduler{store: store, interval: interval}
}

// Run credits income every interval until the context is cancelled.
func (is *IncomeScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(is.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			safeTick("income-accrual", func() {
				if credited := is.store.AccrueIncome(); credited > 0 {
					logger.LogGame("Income accrued", slog.Int64("amount", credited))
				}
			})
		}
	}
}
