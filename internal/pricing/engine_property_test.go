package pricing

import (
	"fmt"
	"testing"

	"github.com/angelmondragon/retail-decisions/internal/domain"
	"github.com/angelmondragon/retail-decisions/pkg/enums"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

var (
	tiers      = []enums.LoyaltyTier{enums.LoyaltyTierBronze, enums.LoyaltyTierSilver, enums.LoyaltyTierGold}
	risks      = []enums.ChurnRisk{enums.ChurnRiskLow, enums.ChurnRiskMedium, enums.ChurnRiskHigh}
	categories = []enums.LineItemCategory{enums.LineItemCategoryEveryday, enums.LineItemCategorySeasonal, enums.LineItemCategoryClearance}
)

func orderFromCents(priceCents []int) domain.Order {
	order := domain.Order{ID: "prop"}
	for i, cents := range priceCents {
		order.Items = append(order.Items, domain.LineItem{
			SKU:       fmt.Sprintf("sku-%d", i),
			Quantity:  i%4 + 1,
			UnitPrice: decimal.New(int64(cents), -2),
			Category:  categories[(i*7+cents)%len(categories)],
		})
	}
	return order
}

func customerFor(tier, risk int, first bool) domain.CustomerProfile {
	return domain.CustomerProfile{ID: "prop", LoyaltyTier: tiers[tier], ChurnRisk: risks[risk], FirstPurchase: first}
}

func rulesWithMax(maxPercent int) domain.PromotionRules {
	rules := baseRules()
	rules.MaxDiscountRate = float64(maxPercent) / 100
	return rules
}

func TestComputeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("capped rate never exceeds the maximum", prop.ForAll(
		func(prices []int, tier, risk int, first bool, maxPercent, day int) bool {
			rules := rulesWithMax(maxPercent)
			result := Compute(orderFromCents(prices), customerFor(tier, risk, first), rules, wednesday.AddDate(0, 0, day))
			return result.DiscountRate.LessThanOrEqual(decimal.NewFromFloat(rules.MaxDiscountRate))
		},
		gen.SliceOf(gen.IntRange(0, 500000)),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
		gen.IntRange(0, 100),
		gen.IntRange(0, 6),
	))

	properties.Property("final total equals gross minus discount within a cent", prop.ForAll(
		func(prices []int, tier, risk int, first bool, maxPercent, day int) bool {
			result := Compute(orderFromCents(prices), customerFor(tier, risk, first), rulesWithMax(maxPercent), wednesday.AddDate(0, 0, day))
			diff := result.GrossTotal.Sub(result.DiscountAmount).Sub(result.FinalTotal).Abs()
			return diff.LessThanOrEqual(decimal.New(1, -2))
		},
		gen.SliceOf(gen.IntRange(0, 500000)),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
		gen.IntRange(0, 100),
		gen.IntRange(0, 6),
	))

	properties.Property("discount never exceeds gross and totals stay non-negative", prop.ForAll(
		func(prices []int, tier, risk int, first bool) bool {
			result := Compute(orderFromCents(prices), customerFor(tier, risk, first), rulesWithMax(100), saturday)
			return !result.FinalTotal.IsNegative() &&
				!result.DiscountAmount.IsNegative() &&
				result.DiscountAmount.LessThanOrEqual(result.GrossTotal)
		},
		gen.SliceOf(gen.IntRange(0, 500000)),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.Property("empty orders price to zero with one message", prop.ForAll(
		func(tier, risk int, first bool, day int) bool {
			result := Compute(domain.Order{ID: "empty"}, customerFor(tier, risk, first), baseRules(), wednesday.AddDate(0, 0, day))
			messages := result.Messages()
			return result.GrossTotal.IsZero() &&
				result.DiscountRate.IsZero() &&
				result.DiscountAmount.IsZero() &&
				result.FinalTotal.IsZero() &&
				len(messages) == 1 && messages[0] == MessageEmptyOrder
		},
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
		gen.IntRange(0, 6),
	))

	properties.Property("loyalty message always leads a non-empty trail", prop.ForAll(
		func(prices []int, tier, risk int, first bool) bool {
			if len(prices) == 0 {
				return true
			}
			result := Compute(orderFromCents(prices), customerFor(tier, risk, first), baseRules(), saturday)
			return result.Audit[0].Rule == RuleLoyaltyBase
		},
		gen.SliceOf(gen.IntRange(0, 500000)),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
