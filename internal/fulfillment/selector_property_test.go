package fulfillment

import (
	"fmt"
	"testing"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/pkg/enums"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var regions = []string{"north", "south", "east"}

func itemsFrom(quantities []int) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(quantities))
	for i, qty := range quantities {
		category := enums.LineItemCategoryEveryday
		if i%3 == 1 {
			category = enums.LineItemCategorySeasonal
		}
		items = append(items, domain.LineItem{SKU: fmt.Sprintf("sku-%d", i), Quantity: qty, Category: category})
	}
	return items
}

// warehousesFrom derives a deterministic warehouse set from the stock seeds.
func warehousesFrom(seeds []int, skuCount int) []domain.WarehouseAvailability {
	warehouses := make([]domain.WarehouseAvailability, 0, len(seeds))
	for i, seed := range seeds {
		inventory := map[string]int{}
		for s := 0; s < skuCount; s++ {
			if (seed+s)%4 != 0 {
				inventory[fmt.Sprintf("sku-%d", s)] = (seed * (s + 3)) % 12
			}
		}
		warehouses = append(warehouses, domain.WarehouseAvailability{
			ID:                    fmt.Sprintf("w-%d", i),
			CoverageRegion:        regions[seed%len(regions)],
			TemperatureControlled: seed%2 == 0,
			Inventory:             inventory,
		})
	}
	return warehouses
}

func findWarehouse(warehouses []domain.WarehouseAvailability, id string) (domain.WarehouseAvailability, bool) {
	for _, w := range warehouses {
		if w.ID == id {
			return w, true
		}
	}
	return domain.WarehouseAvailability{}, false
}

func TestSelectProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	quantities := gen.SliceOfN(4, gen.IntRange(1, 10))
	seeds := gen.SliceOfN(6, gen.IntRange(0, 1000))

	properties.Property("fill rate stays within [0,1]", prop.ForAll(
		func(qty []int, seed []int, region int) bool {
			items := itemsFrom(qty)
			rec, err := Select("prop", regions[region], items, warehousesFrom(seed, len(items)))
			return err == nil && rec.FillRate >= 0 && rec.FillRate <= 1
		},
		quantities, seeds, gen.IntRange(0, 2),
	))

	properties.Property("fully stocked temperature-controlled warehouse yields fill rate 1", prop.ForAll(
		func(qty []int, seed []int) bool {
			items := itemsFrom(qty)
			warehouses := warehousesFrom(seed, len(items))
			stocked := domain.WarehouseAvailability{ID: "stocked", CoverageRegion: "north", TemperatureControlled: true, Inventory: map[string]int{}}
			for _, item := range items {
				stocked.Inventory[item.SKU] = item.Quantity
			}
			warehouses = append(warehouses, stocked)
			rec, err := Select("prop", "north", items, warehouses)
			return err == nil && rec.FillRate == 1 && len(rec.Notes) == 0
		},
		quantities, seeds,
	))

	properties.Property("fallback picks the maximal fill rate in the candidate pool", prop.ForAll(
		func(qty []int, seed []int, region int) bool {
			items := itemsFrom(qty)
			warehouses := warehousesFrom(seed, len(items))
			rec, err := Select("prop", regions[region], items, warehouses)
			if err != nil {
				return false
			}
			if rec.Outcome != enums.FulfillmentOutcomeFallback {
				return true
			}
			if len(rec.Notes) != 1 || rec.Notes[0] != MessageBestEffort {
				return false
			}
			pool := candidatePool(regions[region], warehouses)
			chosen, ok := findWarehouse(pool, rec.WarehouseID)
			if !ok {
				return false
			}
			chosenScore := Evaluate(chosen, items)
			for _, w := range pool {
				if Evaluate(w, items).Covered > chosenScore.Covered {
					return false
				}
			}
			return true
		},
		quantities, seeds, gen.IntRange(0, 2),
	))

	properties.Property("a regional match confines the selection to the region", prop.ForAll(
		func(qty []int, seed []int, region int) bool {
			items := itemsFrom(qty)
			warehouses := warehousesFrom(seed, len(items))
			rec, err := Select("prop", regions[region], items, warehouses)
			if err != nil {
				return false
			}
			chosen, ok := findWarehouse(warehouses, rec.WarehouseID)
			if !ok {
				return false
			}
			for _, w := range warehouses {
				if w.CoverageRegion == regions[region] {
					return chosen.CoverageRegion == regions[region]
				}
			}
			return true
		},
		quantities, seeds, gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
