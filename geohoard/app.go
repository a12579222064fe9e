package geohoard

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/economy"
	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/geo"
	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
	"github.com/ellavondegurechaff/geohoard/geohoard/rarity"
	"github.com/ellavondegurechaff/geohoard/geohoard/scheduler"
	"github.com/ellavondegurechaff/geohoard/geohoard/services"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

// App wires the game core together: the world store, the search service and
// the background schedulers.
type App struct {
	Cfg       *Config
	Store     *world.Store
	Search    *services.SearchService
	Scheduler *scheduler.Manager
	Rng       entropy.Source
	Version   string
	Commit    string
}

// New creates an unpopulated app. Call SetupWorld before StartSchedulers.
func New(cfg *Config, rng entropy.Source, version, commit string) *App {
	return &App{
		Cfg:       cfg,
		Scheduler: scheduler.NewManager(),
		Rng:       rng,
		Version:   version,
		Commit:    commit,
	}
}

// SetupWorld builds the world store from a GeoJSON feature stream.
func (a *App) SetupWorld(r io.Reader) error {
	fc, err := geo.ParseFeatureCollection(r)
	if err != nil {
		return fmt.Errorf("setup world: %w", err)
	}
	if len(fc.Features) == 0 {
		return fmt.Errorf("setup world: no features in source data")
	}

	overrides := a.Cfg.Game.RarityOverrides
	if len(overrides) == 0 {
		overrides = rarity.DefaultOverrides
	}

	calc := economy.NewCalculator(economy.Config{
		BaseCostUnit:   a.Cfg.Game.BaseCostUnit,
		BaseIncomeUnit: a.Cfg.Game.BaseIncomeUnit,
	})
	a.Store = world.NewStore(fc.Features, calc, overrides, a.Cfg.Game.ClickReward)
	a.Search = services.NewSearchService(a.Store)

	logger.LogGame("World initialized", slog.Int("entities", a.Store.Snapshot().Total))
	return nil
}

// StartSchedulers launches the three game loops.
func (a *App) StartSchedulers() {
	g := a.Cfg.Game

	a.Scheduler.Start("stock-rotation", "periodic shop restock",
		scheduler.NewStockScheduler(a.Store, a.Rng, g.StockInterval(), g.StockAmount).Run)

	a.Scheduler.Start("income-accrual", "passive income credit",
		scheduler.NewIncomeScheduler(a.Store, g.AccrualInterval()).Run)

	a.Scheduler.Start("meteor-cycle", "periodic destruction cycle",
		scheduler.NewMeteorScheduler(a.Store, a.Rng, g.MeteorIntervalMin(), g.MeteorIntervalMax(), g.MeteorActiveWindow(), g.MeteorChance).Run)
}

// Shutdown stops the schedulers, waiting up to timeout.
func (a *App) Shutdown(timeout time.Duration) error {
	return a.Scheduler.Shutdown(timeout)
}
