// Package world holds the authoritative mutable game ledger: every
// purchasable region, the player balance, stock availability and the
// permanent collection record. All mutation goes through the Store, which
// serializes access with a single lock so scheduler ticks and player
// actions never interleave mid-operation.
package world

import (
	"fmt"
	"sync"
	"time"

	"github.com/ellavondegurechaff/geohoard/geohoard/economy"
	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/geo"
	"github.com/ellavondegurechaff/geohoard/geohoard/rarity"
	"github.com/ellavondegurechaff/geohoard/geohoard/utils"
)

// Entity is a purchasable region. Cost, income and rarity are fixed at
// initialization; only the ownership and stock flags change during play.
type Entity struct {
	ID           string
	Name         string
	Area         float64
	Rarity       rarity.Tier
	BaseCost     int64
	Income       int64
	TerrainColor string

	owned   bool
	inStock bool
}

// Store is the inventory ledger.
type Store struct {
	mu sync.Mutex

	entities  map[string]*Entity
	order     []string // insertion order, keeps listings stable
	owned     map[string]struct{}
	everOwned map[string]struct{}

	balance     int64
	clickReward int64

	revision uint64
	events   []Event

	nextRestock  time.Time
	nextMeteor   time.Time
	meteorActive bool

	now func() time.Time // injectable clock for tests
}

// NewStore populates a store from geographic features: area via the
// shoelace signal, tier via the percentile classifier, cost and income via
// the calculator. Malformed geometry degrades to area 0 rather than
// aborting initialization.
func NewStore(features []geo.Feature, calc *economy.Calculator, overrides map[string]string, clickReward int64) *Store {
	s := &Store{
		entities:    make(map[string]*Entity, len(features)),
		owned:       make(map[string]struct{}),
		everOwned:   make(map[string]struct{}),
		clickReward: clickReward,
		now:         time.Now,
	}

	subjects := make([]rarity.Subject, 0, len(features))
	for _, f := range features {
		id := f.Key()
		if id == "" {
			continue
		}
		if _, dup := s.entities[id]; dup {
			continue
		}

		area := geo.Area(f.Geometry)
		s.entities[id] = &Entity{
			ID:           id,
			Name:         f.Properties.Name,
			Area:         area,
			TerrainColor: TerrainColor(f.Properties.Name, geo.Latitude(f.Geometry)),
		}
		s.order = append(s.order, id)
		subjects = append(subjects, rarity.Subject{ID: id, Name: f.Properties.Name, Area: area})
	}

	assigned := rarity.Classify(subjects, overrides)
	for id, tier := range assigned {
		e := s.entities[id]
		e.Rarity = tier
		e.BaseCost = calc.Cost(e.Area, tier.Multiplier)
		e.Income = calc.Income(e.Area, tier.Multiplier)
	}

	return s
}

// PurchaseReceipt reports a successful purchase.
type PurchaseReceipt struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Cost     int64  `json:"cost"`
	Balance  int64  `json:"balance"`
}

// Purchase buys an entity. It succeeds only when the entity exists, is
// unowned, is currently in stock and the balance covers the cost; otherwise
// it is a no-op reporting the rejection reason.
func (s *Store) Purchase(id string) (PurchaseReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	if !ok {
		return PurchaseReceipt{}, fmt.Errorf("purchase %q: %w", id, ErrUnknownEntity)
	}
	if e.owned {
		return PurchaseReceipt{}, fmt.Errorf("purchase %q: %w", id, ErrAlreadyOwned)
	}
	if !e.inStock {
		return PurchaseReceipt{}, fmt.Errorf("purchase %q: %w", id, ErrNotInStock)
	}
	if s.balance < e.BaseCost {
		return PurchaseReceipt{}, fmt.Errorf("purchase %q: %w", id, ErrInsufficientFunds)
	}

	s.balance -= e.BaseCost
	e.owned = true
	e.inStock = false
	s.owned[id] = struct{}{}
	s.everOwned[id] = struct{}{}
	s.appendEvent(fmt.Sprintf("Bought %s for %s", e.Name, utils.FormatMoney(e.BaseCost)), SeverityGood)
	s.revision++

	return PurchaseReceipt{EntityID: id, Name: e.Name, Cost: e.BaseCost, Balance: s.balance}, nil
}

// Release strips ownership from an owned entity and returns its prior
// income contribution for the caller's bookkeeping. The entity stays in the
// ever-owned collection and re-enters the unowned pool out of stock.
func (s *Store) Release(id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseLocked(id)
}

func (s *Store) releaseLocked(id string) (int64, error) {
	e, ok := s.entities[id]
	if !ok {
		return 0, fmt.Errorf("release %q: %w", id, ErrUnknownEntity)
	}
	if !e.owned {
		return 0, fmt.Errorf("release %q: %w", id, ErrNotOwned)
	}

	e.owned = false
	e.inStock = false
	delete(s.owned, id)
	s.revision++
	return e.Income, nil
}

// Click credits the flat manual-click reward and returns the new balance.
func (s *Store) Click() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balance += s.clickReward
	s.revision++
	return s.balance
}

// AccrueIncome credits one tick of passive income: the sum of every owned
// entity's per-second yield. Returns the amount credited, which is also the
// current income rate.
func (s *Store) AccrueIncome() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var income int64
	for id := range s.owned {
		income += s.entities[id].Income
	}
	if income > 0 {
		s.balance += income
		s.revision++
	}
	return income
}

// RotateStock recomputes which unowned entities are purchasable. All stock
// flags are cleared, candidates are shuffled uniformly, and each candidate
// is admitted when a percentage draw falls under its rarity weight, up to
// stockAmount entries. If nothing is admitted the first min(5, n) shuffled
// candidates are forced in so the shop is never empty while unowned
// entities exist. Returns the number of entities put in stock.
func (s *Store) RotateStock(rng entropy.Source, stockAmount int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		e := s.entities[id]
		if e.owned {
			continue
		}
		e.inStock = false
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		s.revision++
		return 0
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	added := 0
	for _, e := range candidates {
		if added >= stockAmount {
			break
		}
		if rng.Float64()*100 < e.Rarity.Weight {
			e.inStock = true
			added++
		}
	}

	if added == 0 {
		forced := min(5, len(candidates))
		for i := 0; i < forced; i++ {
			candidates[i].inStock = true
		}
		added = forced
	}

	s.appendEvent(fmt.Sprintf("New stock: %d countries", added), SeverityGood)
	s.revision++
	return added
}

// ResolveMeteor rolls destruction for every entity owned when resolution
// starts; each is independently lost when the draw falls under chance.
// Entities acquired mid-resolution are not at risk because the owned set is
// snapshotted under the same lock the whole resolution holds. Returns the
// names of destroyed entities.
func (s *Store) ResolveMeteor(rng entropy.Source, chance float64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	atRisk := make([]string, 0, len(s.owned))
	for id := range s.owned {
		atRisk = append(atRisk, id)
	}

	var destroyed []string
	for _, id := range atRisk {
		if rng.Float64() < chance {
			name := s.entities[id].Name
			if _, err := s.releaseLocked(id); err != nil {
				continue
			}
			s.appendEvent(fmt.Sprintf("A meteor destroyed %s!", name), SeverityBad)
			destroyed = append(destroyed, name)
		}
	}
	return destroyed
}

// SetMeteorActive flips the global event-in-progress flag and logs the
// phase change.
func (s *Store) SetMeteorActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.meteorActive == active {
		return
	}
	s.meteorActive = active
	if active {
		s.appendEvent("Meteor shower has started!", SeverityBad)
	} else {
		s.appendEvent("Meteor shower has ended.", SeverityNeutral)
	}
	s.revision++
}

// SetNextRestock records the next stock-rotation deadline for display.
func (s *Store) SetNextRestock(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRestock = t
	s.revision++
}

// SetNextMeteor records the next meteor-cycle deadline for display.
func (s *Store) SetNextMeteor(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMeteor = t
	s.revision++
}

// Grant credits the balance directly. Used by the simulation tool to seed a
// starting bankroll.
func (s *Store) Grant(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount <= 0 {
		return
	}
	s.balance += amount
	s.revision++
}

// Balance returns the current player balance.
func (s *Store) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Revision returns a counter that increments on every mutation; read caches
// key on it.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Events returns the recent event log, newest first.
func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
