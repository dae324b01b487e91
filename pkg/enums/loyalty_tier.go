package enums

import "fmt"

// LoyaltyTier is the ordered customer status: bronze < silver < gold.
type LoyaltyTier string

const (
	LoyaltyTierBronze LoyaltyTier = "bronze"
	LoyaltyTierSilver LoyaltyTier = "silver"
	LoyaltyTierGold   LoyaltyTier = "gold"
)

var validLoyaltyTiers = []LoyaltyTier{
	LoyaltyTierBronze,
	LoyaltyTierSilver,
	LoyaltyTierGold,
}

// String implements fmt.Stringer.
func (t LoyaltyTier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LoyaltyTier.
func (t LoyaltyTier) IsValid() bool {
	return t.Rank() > 0
}

// Rank returns the tier position (1 for bronze through 3 for gold), or 0 when unknown.
func (t LoyaltyTier) Rank() int {
	for i, candidate := range validLoyaltyTiers {
		if candidate == t {
			return i + 1
		}
	}
	return 0
}

// ParseLoyaltyTier converts raw input into a LoyaltyTier.
func ParseLoyaltyTier(value string) (LoyaltyTier, error) {
	for _, candidate := range validLoyaltyTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid loyalty tier %q", value)
}
