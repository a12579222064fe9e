// Package rarity assigns each region one of eight fixed tiers from its
// percentile rank by area. Bigger regions land in better tiers, with
// explicit name overrides winning unconditionally.
package rarity

import "sort"

// Tier is one of the eight rarity classes.
type Tier struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Color      string  `json:"color"`
	Rank       float64 `json:"rank"`
	Weight     float64 `json:"weight"` // stock-draw chance in percent, 0-100
}

var (
	Common    = Tier{ID: "common", Name: "COMMON", Multiplier: 1, Color: "#22c55e", Rank: 1, Weight: 100}
	Rare      = Tier{ID: "rare", Name: "RARE", Multiplier: 5, Color: "#3b82f6", Rank: 2, Weight: 50}
	Epic      = Tier{ID: "epic", Name: "EPIC", Multiplier: 15, Color: "#a855f7", Rank: 3, Weight: 25}
	Legendary = Tier{ID: "legendary", Name: "LEGENDARY", Multiplier: 30, Color: "#eab308", Rank: 3.5, Weight: 15}
	Mythic    = Tier{ID: "mythic", Name: "MYTHIC", Multiplier: 50, Color: "#ef4444", Rank: 4, Weight: 10}
	Godly     = Tier{ID: "godly", Name: "GODLY", Multiplier: 150, Color: "#ff00ff", Rank: 5, Weight: 5}
	Secret    = Tier{ID: "secret", Name: "SECRET", Multiplier: 500, Color: "#1f2937", Rank: 6, Weight: 2}
	OG        = Tier{ID: "og", Name: "OG", Multiplier: 1000, Color: "#b45309", Rank: 7, Weight: 1}
)

// Tiers lists every tier in ascending rank order.
var Tiers = []Tier{Common, Rare, Epic, Legendary, Mythic, Godly, Secret, OG}

// ByName resolves a tier from its uppercase name. Returns false for unknown
// names so malformed overrides can be skipped instead of misclassifying.
func ByName(name string) (Tier, bool) {
	for _, t := range Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// band maps a closed-open percentile range [low, UpTo) to a tier. Bands are
// scanned in order and the first match wins, so they must stay ascending.
type band struct {
	UpTo float64
	Tier Tier
}

var bands = []band{
	{0.35, Common},    // smallest 35%
	{0.60, Rare},      // next 25%
	{0.75, Epic},      // next 15%
	{0.85, Legendary}, // next 10%
	{0.93, Mythic},
	{0.97, Godly},
	{0.99, Secret},
	{1.01, OG}, // top 1%, open-ended so percentile 1.0 can never fall through
}

// tierForPercentile picks the first band whose range contains p.
func tierForPercentile(p float64) Tier {
	for _, b := range bands {
		if p < b.UpTo {
			return b.Tier
		}
	}
	return OG
}

// DefaultOverrides pins specific regions to a tier regardless of size.
var DefaultOverrides = map[string]string{
	"United Kingdom": "LEGENDARY",
	"Vatican":        "COMMON", // fits its size anyway
}

// Subject is a region awaiting classification.
type Subject struct {
	ID   string
	Name string
	Area float64
}

// Classify assigns a tier to every subject. Subjects are ranked by area
// ascending (stable sort, so input order breaks ties) and mapped through the
// percentile bands; overrides keyed by name win unconditionally. The result
// is keyed by subject ID.
func Classify(subjects []Subject, overrides map[string]string) map[string]Tier {
	sorted := make([]Subject, len(subjects))
	copy(sorted, subjects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area < sorted[j].Area
	})

	assigned := make(map[string]Tier, len(sorted))
	n := len(sorted)
	for i, s := range sorted {
		if name, ok := overrides[s.Name]; ok {
			if tier, known := ByName(name); known {
				assigned[s.ID] = tier
				continue
			}
		}
		assigned[s.ID] = tierForPercentile(float64(i) / float64(n))
	}
	return assigned
}
