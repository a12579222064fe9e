package world

import (
	"sort"
	"time"
)

// StateSnapshot is the aggregate view the presentation layer renders after
// any mutation.
type StateSnapshot struct {
	Balance      int64     `json:"balance"`
	IncomeRate   int64     `json:"income_rate"`
	Owned        int       `json:"owned"`
	EverOwned    int       `json:"ever_owned"`
	InStock      int       `json:"in_stock"`
	Total        int       `json:"total"`
	NextRestock  time.Time `json:"next_restock"`
	NextMeteor   time.Time `json:"next_meteor"`
	MeteorActive bool      `json:"meteor_active"`
	Revision     uint64    `json:"revision"`
}

// EntitySnapshot is the per-entity view.
type EntitySnapshot struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Rarity       string  `json:"rarity"`
	RarityRank   float64 `json:"rarity_rank"`
	RarityColor  string  `json:"rarity_color"`
	BaseCost     int64   `json:"base_cost"`
	Income       int64   `json:"income"`
	Owned        bool    `json:"owned"`
	InStock      bool    `json:"in_stock"`
	EverOwned    bool    `json:"ever_owned"`
	TerrainColor string  `json:"terrain_color"`
}

// Snapshot returns the aggregate game state.
func (s *Store) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rate int64
	inStock := 0
	for _, e := range s.entities {
		if e.owned {
			rate += e.Income
		}
		if e.inStock {
			inStock++
		}
	}

	return StateSnapshot{
		Balance:      s.balance,
		IncomeRate:   rate,
		Owned:        len(s.owned),
		EverOwned:    len(s.everOwned),
		InStock:      inStock,
		Total:        len(s.entities),
		NextRestock:  s.nextRestock,
		NextMeteor:   s.nextMeteor,
		MeteorActive: s.meteorActive,
		Revision:     s.revision,
	}
}

func (s *Store) snapshotEntityLocked(e *Entity) EntitySnapshot {
	_, ever := s.everOwned[e.ID]
	return EntitySnapshot{
		ID:           e.ID,
		Name:         e.Name,
		Rarity:       e.Rarity.Name,
		RarityRank:   e.Rarity.Rank,
		RarityColor:  e.Rarity.Color,
		BaseCost:     e.BaseCost,
		Income:       e.Income,
		Owned:        e.owned,
		InStock:      e.inStock,
		EverOwned:    ever,
		TerrainColor: e.TerrainColor,
	}
}

// Entities returns every entity in insertion order.
func (s *Store) Entities() []EntitySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]EntitySnapshot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.snapshotEntityLocked(s.entities[id]))
	}
	return out
}

// ShopListing returns the in-stock entities in shop order: rarity rank
// ascending, then cost ascending.
func (s *Store) ShopListing() []EntitySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]EntitySnapshot, 0, len(s.order))
	for _, id := range s.order {
		e := s.entities[id]
		if e.inStock {
			out = append(out, s.snapshotEntityLocked(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RarityRank != out[j].RarityRank {
			return out[i].RarityRank < out[j].RarityRank
		}
		return out[i].BaseCost < out[j].BaseCost
	})
	return out
}

// Collection is the permanent-collection view.
type Collection struct {
	Unlocked int              `json:"unlocked"`
	Total    int              `json:"total"`
	Entries  []EntitySnapshot `json:"entries"`
}

// CollectionView returns every entity sorted by rarity rank with the
// unlocked counter. Entities never owned are still listed so the
// presentation layer can render them locked.
func (s *Store) CollectionView() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]EntitySnapshot, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.snapshotEntityLocked(s.entities[id]))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RarityRank < entries[j].RarityRank
	})

	return Collection{
		Unlocked: len(s.everOwned),
		Total:    len(s.entities),
		Entries:  entries,
	}
}
