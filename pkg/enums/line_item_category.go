package enums

import "fmt"

// LineItemCategory classifies a line item for promotion and handling rules.
type LineItemCategory string

const (
	LineItemCategoryEveryday  LineItemCategory = "everyday"
	LineItemCategorySeasonal  LineItemCategory = "seasonal"
	LineItemCategoryClearance LineItemCategory = "clearance"
)

var validLineItemCategories = []LineItemCategory{
	LineItemCategoryEveryday,
	LineItemCategorySeasonal,
	LineItemCategoryClearance,
}

// String implements fmt.Stringer.
func (c LineItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known LineItemCategory.
func (c LineItemCategory) IsValid() bool {
	for _, candidate := range validLineItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// RequiresColdChain reports whether goods in this category need temperature-controlled handling.
func (c LineItemCategory) RequiresColdChain() bool {
	return c == LineItemCategorySeasonal
}

// ParseLineItemCategory converts raw input into a LineItemCategory.
func ParseLineItemCategory(value string) (LineItemCategory, error) {
	for _, candidate := range validLineItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item category %q", value)
}
