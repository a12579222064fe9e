package rarity

import (
	"fmt"
	"testing"
)

func TestTierForPercentile_Bands(t *testing.T) {
	tests := []struct {
		percentile float64
		want       Tier
	}{
		{0.0, Common},
		{0.349, Common},
		{0.35, Rare},
		{0.599, Rare},
		{0.60, Epic},
		{0.75, Legendary},
		{0.849, Legendary},
		{0.85, Mythic},
		{0.93, Godly},
		{0.97, Secret},
		{0.99, OG},
		{1.0, OG},
	}

	for _, tt := range tests {
		if got := tierForPercentile(tt.percentile); got.ID != tt.want.ID {
			t.Errorf("tierForPercentile(%v) = %s, want %s", tt.percentile, got.ID, tt.want.ID)
		}
	}
}

func TestClassify_HundredSubjects(t *testing.T) {
	// 100 subjects with strictly increasing areas: index == percentile rank.
	subjects := make([]Subject, 100)
	for i := range subjects {
		subjects[i] = Subject{
			ID:   fmt.Sprintf("r%03d", i),
			Name: fmt.Sprintf("Region %d", i),
			Area: float64(i + 1),
		}
	}

	assigned := Classify(subjects, nil)
	if len(assigned) != 100 {
		t.Fatalf("classified %d subjects, want 100", len(assigned))
	}

	expect := func(index int, want Tier) {
		t.Helper()
		got := assigned[fmt.Sprintf("r%03d", index)]
		if got.ID != want.ID {
			t.Errorf("index %d assigned %s, want %s", index, got.ID, want.ID)
		}
	}

	expect(0, Common)
	expect(34, Common)
	expect(35, Rare)
	expect(59, Rare)
	expect(60, Epic)
	expect(74, Epic)
	expect(75, Legendary)
	expect(84, Legendary)
	expect(85, Mythic)
	expect(92, Mythic)
	expect(93, Godly)
	expect(96, Godly)
	expect(97, Secret)
	expect(98, Secret)
	expect(99, OG)
}

func TestClassify_OverrideWins(t *testing.T) {
	subjects := []Subject{
		{ID: "tiny", Name: "Vatican", Area: 0.001},
		{ID: "uk", Name: "United Kingdom", Area: 50},
		{ID: "big", Name: "Russia", Area: 5000},
	}

	assigned := Classify(subjects, DefaultOverrides)

	// The UK is mid-pack by area but pinned to LEGENDARY.
	if assigned["uk"].ID != Legendary.ID {
		t.Errorf("uk assigned %s, want legendary", assigned["uk"].ID)
	}
	if assigned["tiny"].ID != Common.ID {
		t.Errorf("vatican assigned %s, want common", assigned["tiny"].ID)
	}
	// Non-overridden subjects still follow percentile order: the largest of
	// three sits at percentile 2/3, inside the epic band.
	if assigned["big"].ID != Epic.ID {
		t.Errorf("largest assigned %s, want epic", assigned["big"].ID)
	}
}

func TestClassify_UnknownOverrideFallsBack(t *testing.T) {
	subjects := []Subject{{ID: "a", Name: "Alpha", Area: 1}}
	assigned := Classify(subjects, map[string]string{"Alpha": "ULTRA"})
	if assigned["a"].ID != Common.ID {
		t.Fatalf("unknown override tier should fall back to percentile, got %s", assigned["a"].ID)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	subjects := []Subject{
		{ID: "a", Name: "A", Area: 3},
		{ID: "b", Name: "B", Area: 1},
		{ID: "c", Name: "C", Area: 2},
	}

	first := Classify(subjects, nil)
	for i := 0; i < 10; i++ {
		again := Classify(subjects, nil)
		for id, tier := range first {
			if again[id].ID != tier.ID {
				t.Fatalf("run %d: %s assigned %s, previously %s", i, id, again[id].ID, tier.ID)
			}
		}
	}
}
