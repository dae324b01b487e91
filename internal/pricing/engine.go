// Package pricing computes the discounted total for an order from a
// composable, ordered set of promotion rules.
package pricing

import (
	"fmt"
	"time"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/pkg/enums"
	"github.com/angelmondragon/retail-decisions/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	MessageEmptyOrder     = "Empty order received"
	MessageFirstPurchase  = "First purchase bonus applied."
	MessageChurnRecovery  = "Churn recovery boost because customer is high risk."
	MessageSeasonalUplift = "High-risk seasonal uplift applied."
	MessageWeekendBoost   = "Weekend boost applied for non-gold customer."
	MessageCapped         = "Discount capped by promotion rules."
)

var (
	highRiskSeasonalUplift = decimal.RequireFromString("0.03")
	weekendBoost           = decimal.RequireFromString("0.02")
)

// Seasonal uplift threshold as a fraction of order lines: 2/5.
const (
	upliftLineNumerator   = 2
	upliftLineDenominator = 5
)

// Computation is the discount breakdown for one order.
type Computation struct {
	OrderID        string          `json:"order_id"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	Audit          AuditTrail      `json:"audit"`
}

// Messages returns the audit messages in firing order.
func (c Computation) Messages() []string {
	return c.Audit.Messages()
}

// ComputeNow prices the order using the current time as the reference.
func ComputeNow(order domain.Order, customer domain.CustomerProfile, rules domain.PromotionRules) Computation {
	return Compute(order, customer, rules, time.Now())
}

// Compute prices the order as of the reference time. It never fails: empty
// orders price to zero and unknown loyalty tiers contribute a zero base rate.
func Compute(order domain.Order, customer domain.CustomerProfile, rules domain.PromotionRules, at time.Time) Computation {
	var trail AuditTrail
	if len(order.Items) == 0 {
		return Computation{
			OrderID:        order.ID,
			GrossTotal:     decimal.Zero,
			DiscountRate:   decimal.Zero,
			DiscountAmount: decimal.Zero,
			FinalTotal:     decimal.Zero,
			Audit:          trail.record(RuleEmptyOrder, MessageEmptyOrder),
		}
	}

	gross := order.GrossTotal()

	rate := money.FromRate(rules.LoyaltyRates.RateFor(customer.LoyaltyTier))
	trail = trail.record(RuleLoyaltyBase, fmt.Sprintf("Applied loyalty tier %s base discount.", customer.LoyaltyTier))

	if customer.FirstPurchase {
		rate = rate.Add(money.FromRate(rules.FirstPurchaseBonus))
		trail = trail.record(RuleFirstPurchase, MessageFirstPurchase)
	}

	highRisk := customer.ChurnRisk == enums.ChurnRiskHigh
	if highRisk {
		rate = rate.Add(money.FromRate(rules.ChurnRecoveryBoost))
		trail = trail.record(RuleChurnRecovery, MessageChurnRecovery)
	}

	inSeason := func(li domain.LineItem) bool { return li.Category == rules.SeasonalCategory }
	seasonalValue := domain.SumValue(order.Items, inSeason)
	if seasonalValue.IsPositive() && gross.IsPositive() {
		share := seasonalValue.Div(gross)
		rate = rate.Add(share.Mul(money.FromRate(rules.SeasonalRate)))
		trail = trail.record(RuleSeasonal, fmt.Sprintf("Seasonal discount applied to %s items.", rules.SeasonalCategory))
	}

	// The uplift compares line counts, not the value-weighted share used above.
	seasonalLines := domain.CountCategory(order.Items, rules.SeasonalCategory)
	if highRisk && seasonalLines*upliftLineDenominator >= len(order.Items)*upliftLineNumerator {
		rate = rate.Add(highRiskSeasonalUplift)
		trail = trail.record(RuleHighRiskSeasonalUplift, MessageSeasonalUplift)
	}

	if isWeekend(at) && customer.LoyaltyTier != enums.LoyaltyTierGold {
		rate = rate.Add(weekendBoost)
		trail = trail.record(RuleWeekendBoost, MessageWeekendBoost)
	}

	capped := decimal.Min(rate, money.FromRate(rules.MaxDiscountRate))
	if capped.LessThan(rate) {
		trail = trail.record(RuleCap, MessageCapped)
	}

	discount := gross.Mul(capped)
	return Computation{
		OrderID:        order.ID,
		GrossTotal:     money.Cents(gross),
		DiscountRate:   money.DisplayRate(capped),
		DiscountAmount: money.Cents(discount),
		FinalTotal:     money.Cents(gross.Sub(discount)),
		Audit:          trail,
	}
}

func isWeekend(at time.Time) bool {
	switch at.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
