// Command simulate drives the game engine headlessly for a fixed number of
// ticks with a seeded RNG, then prints what happened. Useful for balance
// tuning: the same seed and world always produce the same run.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/ellavondegurechaff/geohoard/geohoard/economy"
	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/geo"
	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
	"github.com/ellavondegurechaff/geohoard/geohoard/rarity"
	"github.com/ellavondegurechaff/geohoard/geohoard/utils"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

func main() {
	customHandler := logger.NewHandler("simulate")
	slog.SetDefault(slog.New(customHandler))

	dataPath := flag.String("data", "", "path to GeoJSON world data (empty uses a synthetic world)")
	seed := flag.Int64("seed", 1, "RNG seed")
	ticks := flag.Int("ticks", 3600, "number of one-second ticks to simulate")
	stockInterval := flag.Int("stock-interval", 90, "ticks between shop rotations")
	stockAmount := flag.Int("stock-amount", 30, "shop stock cap")
	meteorInterval := flag.Int("meteor-interval", 300, "ticks between meteor strikes")
	meteorChance := flag.Float64("meteor-chance", 0.03, "per-country destruction chance")
	flag.Parse()

	features, err := loadWorld(*dataPath)
	if err != nil {
		slog.Error("Failed to load world", slog.Any("error", err))
		os.Exit(-1)
	}

	rng := entropy.New(*seed)
	calc := economy.NewCalculator(economy.DefaultConfig())
	store := world.NewStore(features, calc, rarity.DefaultOverrides, 10)
	store.Grant(1000)

	var purchased, destroyed, spent int64
	store.RotateStock(rng, *stockAmount)

	for tick := 1; tick <= *ticks; tick++ {
		store.AccrueIncome()

		// Greedy buyer: grab the cheapest affordable listing every tick.
		for _, listing := range cheapestFirst(store.ShopListing()) {
			if listing.BaseCost > store.Balance() {
				continue
			}
			if _, err := store.Purchase(listing.ID); err == nil {
				purchased++
				spent += listing.BaseCost
				break
			}
		}

		if tick%*stockInterval == 0 {
			store.RotateStock(rng, *stockAmount)
		}
		if tick%*meteorInterval == 0 {
			destroyed += int64(len(store.ResolveMeteor(rng, *meteorChance)))
		}
	}

	snap := store.Snapshot()
	fmt.Printf("seed=%d ticks=%d countries=%d\n", *seed, *ticks, snap.Total)
	fmt.Printf("purchased=%d spent=%s destroyed=%d\n", purchased, utils.FormatMoney(spent), destroyed)
	fmt.Printf("owned=%d ever_owned=%d in_stock=%d balance=%s income_rate=%s/s\n",
		snap.Owned, snap.EverOwned, snap.InStock,
		utils.FormatMoney(snap.Balance), utils.FormatMoney(snap.IncomeRate))
}

func loadWorld(path string) ([]geo.Feature, error) {
	if path == "" {
		return syntheticWorld(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fc, err := geo.ParseFeatureCollection(f)
	if err != nil {
		return nil, err
	}
	return fc.Features, nil
}

// syntheticWorld builds 100 square regions with areas spread over four
// orders of magnitude, enough to populate every rarity band.
func syntheticWorld() []geo.Feature {
	features := make([]geo.Feature, 0, 100)
	for i := 0; i < 100; i++ {
		side := 0.1 * float64(i+1) * float64(i+1)
		var f geo.Feature
		f.ID = geo.FeatureID(fmt.Sprintf("SYN%03d", i))
		f.Properties.Name = fmt.Sprintf("Region %03d", i)
		f.Geometry = &geo.Geometry{
			Type: "Polygon",
			Polygon: [][][]float64{{
				{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
			}},
		}
		features = append(features, f)
	}
	return features
}

func cheapestFirst(listings []world.EntitySnapshot) []world.EntitySnapshot {
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].BaseCost < listings[j].BaseCost
	})
	return listings
}
