// Package fulfillment picks the warehouse that should ship an order.
package fulfillment

import (
	"cmp"
	"slices"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/pkg/enums"
	pkgerrors "github.com/angelmondragon/retail-decisions/pkg/errors"
	"github.com/angelmondragon/retail-decisions/pkg/money"
)

const MessageBestEffort = "No warehouse can fully fulfill order, returning best effort option."

// Recommendation is the selected warehouse for an order.
type Recommendation struct {
	WarehouseID string                   `json:"warehouse_id"`
	FillRate    float64                  `json:"fill_rate"`
	Notes       []string                 `json:"notes"`
	Outcome     enums.FulfillmentOutcome `json:"outcome"`
}

// Score is the coverage of an order's units by one warehouse.
type Score struct {
	WarehouseID string
	// Covered counts requested units in stock, capped per SKU at the requested quantity.
	Covered int64
	// Requested counts every requested unit.
	Requested int64
	// Slack sums available minus requested across the order's lines.
	Slack int64
}

// FillRate returns Covered/Requested rounded to two places; zero demand is fully filled.
func (s Score) FillRate() float64 {
	return money.Ratio(s.Covered, s.Requested)
}

// Evaluate scores a warehouse against the requested lines.
func Evaluate(warehouse domain.WarehouseAvailability, items []domain.LineItem) Score {
	score := Score{WarehouseID: warehouse.ID}
	for _, item := range items {
		available := int64(warehouse.Available(item.SKU))
		requested := int64(item.Quantity)
		score.Requested += requested
		score.Covered += max(0, min(requested, available))
		score.Slack += available - requested
	}
	return score
}

// RequiresColdChain reports whether any line needs temperature-controlled handling.
func RequiresColdChain(items []domain.LineItem) bool {
	return slices.ContainsFunc(items, func(item domain.LineItem) bool {
		return item.Category.RequiresColdChain()
	})
}

// CanFulfill reports whether the warehouse satisfies handling and holds every requested quantity.
func CanFulfill(warehouse domain.WarehouseAvailability, items []domain.LineItem, coldChain bool) bool {
	if coldChain && !warehouse.TemperatureControlled {
		return false
	}
	for _, item := range items {
		if warehouse.Available(item.SKU) < item.Quantity {
			return false
		}
	}
	return true
}

// Select recommends a warehouse for the order. Region-matching warehouses are
// preferred; when none match, every warehouse is considered. It fails only
// when the warehouse list is empty.
func Select(orderID, region string, items []domain.LineItem, warehouses []domain.WarehouseAvailability) (Recommendation, error) {
	if len(warehouses) == 0 {
		return Recommendation{}, pkgerrors.NoCandidate(orderID)
	}

	pool := candidatePool(region, warehouses)
	coldChain := RequiresColdChain(items)

	var feasible []Score
	for _, warehouse := range pool {
		if CanFulfill(warehouse, items, coldChain) {
			feasible = append(feasible, Evaluate(warehouse, items))
		}
	}

	if len(feasible) > 0 {
		// Every candidate shares the same requested total, so covered units order fill rate exactly.
		slices.SortStableFunc(feasible, func(a, b Score) int {
			if c := cmp.Compare(b.Covered, a.Covered); c != 0 {
				return c
			}
			return cmp.Compare(a.Slack, b.Slack)
		})
		best := feasible[0]
		return Recommendation{
			WarehouseID: best.WarehouseID,
			FillRate:    best.FillRate(),
			Notes:       []string{},
			Outcome:     enums.FulfillmentOutcomeFeasible,
		}, nil
	}

	best := Evaluate(pool[0], items)
	for _, warehouse := range pool[1:] {
		if score := Evaluate(warehouse, items); score.Covered > best.Covered {
			best = score
		}
	}
	return Recommendation{
		WarehouseID: best.WarehouseID,
		FillRate:    best.FillRate(),
		Notes:       []string{MessageBestEffort},
		Outcome:     enums.FulfillmentOutcomeFallback,
	}, nil
}

func candidatePool(region string, warehouses []domain.WarehouseAvailability) []domain.WarehouseAvailability {
	var regional []domain.WarehouseAvailability
	for _, warehouse := range warehouses {
		if warehouse.CoverageRegion == region {
			regional = append(regional, warehouse)
		}
	}
	if len(regional) == 0 {
		return warehouses
	}
	return regional
}
