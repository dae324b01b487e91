package enums

import "fmt"

// ChurnRisk estimates how likely a customer is to stop purchasing.
type ChurnRisk string

const (
	ChurnRiskLow    ChurnRisk = "low"
	ChurnRiskMedium ChurnRisk = "medium"
	ChurnRiskHigh   ChurnRisk = "high"
)

var validChurnRisks = []ChurnRisk{
	ChurnRiskLow,
	ChurnRiskMedium,
	ChurnRiskHigh,
}

// String implements fmt.Stringer.
func (c ChurnRisk) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ChurnRisk.
func (c ChurnRisk) IsValid() bool {
	for _, candidate := range validChurnRisks {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChurnRisk converts raw input into a ChurnRisk.
func ParseChurnRisk(value string) (ChurnRisk, error) {
	for _, candidate := range validChurnRisks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid churn risk %q", value)
}
