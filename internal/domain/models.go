// Package domain holds the immutable order, customer, promotion, and warehouse
// snapshots consumed by the pricing and fulfillment engines.
package domain

import (
	"time"

	"github.com/angelmondragon/retail-decisions/pkg/enums"
	"github.com/angelmondragon/retail-decisions/pkg/money"
	"github.com/shopspring/decimal"
)

// LineItem is a single SKU line on an order.
type LineItem struct {
	SKU       string                 `json:"sku" yaml:"sku" validate:"required"`
	Quantity  int                    `json:"quantity" yaml:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal        `json:"unit_price" yaml:"unit_price" validate:"gte=0"`
	Category  enums.LineItemCategory `json:"category" yaml:"category" validate:"enum"`
}

// Total returns quantity × unit price.
func (li LineItem) Total() decimal.Decimal {
	return money.LineTotal(li.Quantity, li.UnitPrice)
}

// Order is the priced and fulfilled unit. An order without items is valid.
type Order struct {
	ID        string     `json:"id" yaml:"id" validate:"required"`
	Items     []LineItem `json:"items" yaml:"items" validate:"dive"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

// GrossTotal sums every line total without rounding.
func (o Order) GrossTotal() decimal.Decimal {
	return SumValue(o.Items, nil)
}

// SumValue sums line totals for items accepted by keep; a nil keep accepts all.
func SumValue(items []LineItem, keep func(LineItem) bool) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		total = total.Add(item.Total())
	}
	return total
}

// CountCategory counts lines (not units) in the given category.
func CountCategory(items []LineItem, category enums.LineItemCategory) int {
	count := 0
	for _, item := range items {
		if item.Category == category {
			count++
		}
	}
	return count
}

// CustomerProfile is supplied fresh per call and never mutated.
type CustomerProfile struct {
	ID            string            `json:"id" yaml:"id" validate:"required"`
	LoyaltyTier   enums.LoyaltyTier `json:"loyalty_tier" yaml:"loyalty_tier" validate:"enum"`
	FirstPurchase bool              `json:"first_purchase" yaml:"first_purchase"`
	ChurnRisk     enums.ChurnRisk   `json:"churn_risk" yaml:"churn_risk" validate:"enum"`
}

// LoyaltyRates maps every loyalty tier to its base discount rate.
type LoyaltyRates struct {
	Bronze float64 `json:"bronze" yaml:"bronze" validate:"gte=0,lte=1"`
	Silver float64 `json:"silver" yaml:"silver" validate:"gte=0,lte=1"`
	Gold   float64 `json:"gold" yaml:"gold" validate:"gte=0,lte=1"`
}

// RateFor resolves the base rate for a tier; unknown tiers resolve to zero.
func (r LoyaltyRates) RateFor(tier enums.LoyaltyTier) float64 {
	switch tier {
	case enums.LoyaltyTierBronze:
		return r.Bronze
	case enums.LoyaltyTierSilver:
		return r.Silver
	case enums.LoyaltyTierGold:
		return r.Gold
	default:
		return 0
	}
}

// PromotionRules is caller-supplied configuration. All rates are fractions in [0,1].
type PromotionRules struct {
	SeasonalCategory   enums.LineItemCategory `json:"seasonal_category" yaml:"seasonal_category" validate:"enum"`
	SeasonalRate       float64                `json:"seasonal_rate" yaml:"seasonal_rate" validate:"gte=0,lte=1"`
	LoyaltyRates       LoyaltyRates           `json:"loyalty_rates" yaml:"loyalty_rates"`
	FirstPurchaseBonus float64                `json:"first_purchase_bonus" yaml:"first_purchase_bonus" validate:"gte=0,lte=1"`
	ChurnRecoveryBoost float64                `json:"churn_recovery_boost" yaml:"churn_recovery_boost" validate:"gte=0,lte=1"`
	MaxDiscountRate    float64                `json:"max_discount_rate" yaml:"max_discount_rate" validate:"gte=0,lte=1"`
}

// WarehouseAvailability is a read-only inventory snapshot for one warehouse.
type WarehouseAvailability struct {
	ID                    string         `json:"warehouse_id" yaml:"warehouse_id" validate:"required"`
	CoverageRegion        string         `json:"coverage_region" yaml:"coverage_region"`
	Inventory             map[string]int `json:"inventory" yaml:"inventory" validate:"dive,keys,required,endkeys,gte=0"`
	TemperatureControlled bool           `json:"temperature_controlled" yaml:"temperature_controlled"`
}

// Available returns the stocked quantity for sku; absent SKUs hold zero.
func (w WarehouseAvailability) Available(sku string) int {
	return w.Inventory[sku]
}
