package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

// MeteorScheduler drives the recurring destruction cycle. Each cycle is a
// strict idle -> active -> resolution sequence: count down, raise the
// warning flag for the active window, then roll independent destruction
// draws against every owned entity and start over.
type MeteorScheduler struct {
	store        *world.Store
	rng          entropy.Source
	intervalMin  time.Duration
	intervalMax  time.Duration
	activeWindow time.Duration
	chance       float64
}

// NewMeteorScheduler creates a meteor cycle loop.
func NewMeteorScheduler(store *world.Store, rng entropy.Source, intervalMin, intervalMax, activeWindow time.Duration, chance float64) *MeteorScheduler {
	if intervalMax < intervalMin {
		intervalMax = intervalMin
	}
	return &MeteorScheduler{
		store:        store,
		rng:          rng,
		intervalMin:  intervalMin,
		intervalMax:  intervalMax,
		activeWindow: activeWindow,
		chance:       chance,
	}
}

// Run repeats the cycle until the context is cancelled. Resolution panics
// are isolated so a faulty cycle cannot stop future cycles.
func (ms *MeteorScheduler) Run(ctx context.Context) {
	for {
		countdown := ms.nextCountdown()
		ms.store.SetNextMeteor(time.Now().Add(countdown))

		if !sleepCtx(ctx, countdown) {
			return
		}

		ms.store.SetMeteorActive(true)
		logger.LogGame("Meteor shower started", slog.Duration("window", ms.activeWindow))

		if !sleepCtx(ctx, ms.activeWindow) {
			// Shutting down mid-window: clear the flag, skip resolution.
			ms.store.SetMeteorActive(false)
			return
		}

		ms.store.SetMeteorActive(false)
		safeTick("meteor-resolution", func() {
			destroyed := ms.store.ResolveMeteor(ms.rng, ms.chance)
			logger.LogGame("Meteor shower resolved", slog.Int("destroyed", len(destroyed)))
		})
	}
}

// nextCountdown draws the idle duration uniformly from the configured
// interval range.
func (ms *MeteorScheduler) nextCountdown() time.Duration {
	if ms.intervalMax <= ms.intervalMin {
		return ms.intervalMin
	}
	spread := ms.intervalMax - ms.intervalMin
	return ms.intervalMin + time.Duration(ms.rng.Intn(int(spread)))
}
