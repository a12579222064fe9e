// Package services provides game-facing services layered on the world
// store.
package services

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

// entitySearchItems implements fuzzy.Source over entity snapshots.
type entitySearchItems []world.EntitySnapshot

func (items entitySearchItems) Len() int {
	return len(items)
}

func (items entitySearchItems) String(i int) string {
	return items[i].Name
}

// SearchService resolves free-text region queries with fuzzy matching.
type SearchService struct {
	store *world.Store
}

// NewSearchService creates a search service over the store.
func NewSearchService(store *world.Store) *SearchService {
	return &SearchService{store: store}
}

// Search returns up to limit entities whose names fuzzy-match the query,
// best matches first. A blank query matches nothing.
func (s *SearchService) Search(query string, limit int) []world.EntitySnapshot {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	items := entitySearchItems(s.store.Entities())
	matches := fuzzy.FindFrom(query, items)

	results := make([]world.EntitySnapshot, 0, limit)
	for _, m := range matches {
		results = append(results, items[m.Index])
		if len(results) >= limit {
			break
		}
	}
	return results
}
