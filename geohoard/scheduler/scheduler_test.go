package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/economy"
	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/geo"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

func newGameStore(n int) *world.Store {
	features := make([]geo.Feature, n)
	for i := range features {
		f := geo.Feature{ID: geo.FeatureID(fmt.Sprintf("e%02d", i))}
		f.Properties.Name = fmt.Sprintf("Region %d", i)
		f.Geometry = &geo.Geometry{
			Type: "Polygon",
			Polygon: [][][]float64{
				{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			},
		}
		features[i] = f
	}
	return world.NewStore(features, economy.NewCalculator(economy.DefaultConfig()), nil, 10)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestStockScheduler_OpensPopulated(t *testing.T) {
	store := newGameStore(10)
	mgr := NewManager()
	defer mgr.Shutdown(time.Second)

	ss := NewStockScheduler(store, entropy.New(7), time.Hour, 5)
	mgr.Start("stock", "test rotation", ss.Run)

	waitFor(t, time.Second, func() bool {
		return store.Snapshot().InStock > 0
	}, "shop never populated after startup rotation")

	if store.Snapshot().InStock > 5 {
		t.Fatalf("in stock %d exceeds cap 5", store.Snapshot().InStock)
	}
	if store.Snapshot().NextRestock.IsZero() {
		t.Fatal("next restock deadline not published")
	}
}

func TestStockScheduler_PeriodicRotation(t *testing.T) {
	store := newGameStore(10)
	mgr := NewManager()
	defer mgr.Shutdown(time.Second)

	r0 := store.Revision()
	ss := NewStockScheduler(store, entropy.New(7), 15*time.Millisecond, 5)
	mgr.Start("stock", "test rotation", ss.Run)

	// At least three rotations should land well within the window.
	waitFor(t, 2*time.Second, func() bool {
		return store.Revision() >= r0+6
	}, "rotation loop did not keep firing")
}

func TestIncomeScheduler_CreditsOwnedIncome(t *testing.T) {
	store := newGameStore(5)
	store.Grant(100000)
	store.RotateStock(entropy.New(1), 5)

	var bought bool
	for _, e := range store.Entities() {
		if e.InStock {
			if _, err := store.Purchase(e.ID); err != nil {
				t.Fatalf("purchase: %v", err)
			}
			bought = true
			break
		}
	}
	if !bought {
		t.Fatal("no entity in stock to purchase")
	}
	start := store.Balance()

	mgr := NewManager()
	defer mgr.Shutdown(time.Second)
	mgr.Start("income", "test accrual", NewIncomeScheduler(store, 10*time.Millisecond).Run)

	waitFor(t, 2*time.Second, func() bool {
		return store.Balance() > start
	}, "income never accrued")
}

func TestMeteorScheduler_FullCycle(t *testing.T) {
	store := newGameStore(4)
	store.Grant(1 << 40)
	store.RotateStock(entropy.New(3), 4)
	for _, e := range store.Entities() {
		if e.InStock {
			if _, err := store.Purchase(e.ID); err != nil {
				t.Fatalf("purchase %s: %v", e.ID, err)
			}
		}
	}
	ownedBefore := store.Snapshot().Owned
	if ownedBefore == 0 {
		t.Fatal("nothing owned before the cycle")
	}

	mgr := NewManager()
	defer mgr.Shutdown(time.Second)

	// Certain destruction with a short cycle: everything owned is lost
	// after the first resolution.
	ms := NewMeteorScheduler(store, entropy.New(9), 20*time.Millisecond, 20*time.Millisecond, 10*time.Millisecond, 1.0)
	mgr.Start("meteor", "test cycle", ms.Run)

	waitFor(t, 2*time.Second, func() bool {
		return store.Snapshot().Owned == 0
	}, "resolution never destroyed owned entities")

	snap := store.Snapshot()
	if snap.EverOwned != ownedBefore {
		t.Fatalf("ever owned = %d, want %d preserved", snap.EverOwned, ownedBefore)
	}

	// The cycle re-arms: the flag clears and a new deadline is published.
	waitFor(t, 2*time.Second, func() bool {
		s := store.Snapshot()
		return !s.MeteorActive && !s.NextMeteor.IsZero()
	}, "cycle did not re-enter countdown")
}

func TestMeteorScheduler_CountdownRange(t *testing.T) {
	ms := NewMeteorScheduler(nil, entropy.New(5), 10*time.Millisecond, 30*time.Millisecond, time.Millisecond, 0)
	for i := 0; i < 100; i++ {
		d := ms.nextCountdown()
		if d < 10*time.Millisecond || d >= 30*time.Millisecond {
			t.Fatalf("countdown %v outside [10ms, 30ms)", d)
		}
	}

	// Equal bounds collapse to a fixed countdown.
	fixed := NewMeteorScheduler(nil, entropy.New(5), time.Minute, time.Minute, time.Second, 0)
	if d := fixed.nextCountdown(); d != time.Minute {
		t.Fatalf("fixed countdown = %v, want 1m", d)
	}
}

func TestSafeTick_IsolatesPanics(t *testing.T) {
	ran := 0
	for i := 0; i < 3; i++ {
		safeTick("test", func() {
			ran++
			panic("tick blew up")
		})
	}
	if ran != 3 {
		t.Fatalf("ran %d ticks, want 3: a panicking cycle must not stop later cycles", ran)
	}
}

func TestManager_Shutdown(t *testing.T) {
	mgr := NewManager()
	stopped := make(chan struct{})

	mgr.Start("blocker", "waits for cancellation", func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})

	if err := mgr.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case <-stopped:
	default:
		t.Fatal("process not cancelled by shutdown")
	}
}
