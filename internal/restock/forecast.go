// Package restock estimates replenishment quantities from recent sales.
package restock

import (
	"math"

	pkgerrors "github.com/angelmondragon/retail-decisions/pkg/errors"
)

const minimumWindow = 3

// Policy tunes the cushion added on top of forecast demand.
type Policy struct {
	VariabilityRatio float64 `json:"variability_ratio" yaml:"variability_ratio" validate:"gte=0"`
	SafetyStockDays  float64 `json:"safety_stock_days" yaml:"safety_stock_days" validate:"gte=0"`
}

// Recommendation is the forecast for one SKU.
type Recommendation struct {
	ForecastWindow   int   `json:"forecast_window"`
	ForecastDemand   int64 `json:"forecast_demand"`
	RecommendedOrder int64 `json:"recommended_order"`
}

// Forecaster is the collaborator contract consumed by callers planning restocks.
type Forecaster interface {
	Forecast(salesHistory []float64, pendingOrders, leadTimeDays int, policy Policy) (Recommendation, error)
}

// MovingAverage forecasts with a trailing average plus half of any upward trend.
type MovingAverage struct{}

var _ Forecaster = MovingAverage{}

// Forecast implements Forecaster.
func (MovingAverage) Forecast(salesHistory []float64, pendingOrders, leadTimeDays int, policy Policy) (Recommendation, error) {
	return Forecast(salesHistory, pendingOrders, leadTimeDays, policy)
}

// Forecast projects demand over the lead time from the trailing
// max(3, leadTimeDays) history points and sizes the order to cover it.
func Forecast(salesHistory []float64, pendingOrders, leadTimeDays int, policy Policy) (Recommendation, error) {
	if leadTimeDays <= 0 {
		return Recommendation{}, pkgerrors.InvalidInput("lead_time_days", leadTimeDays, "must be positive")
	}

	window := trailing(salesHistory, max(minimumWindow, leadTimeDays))
	baseAverage := average(window)
	projectedDaily := baseAverage + max(trend(window), 0)*0.5
	demand := max(projectedDaily*float64(leadTimeDays), 0) + float64(pendingOrders)

	variability := demand * policy.VariabilityRatio
	safetyStock := policy.SafetyStockDays * baseAverage

	return Recommendation{
		ForecastWindow:   len(window),
		ForecastDemand:   int64(math.Floor(demand + 0.5)),
		RecommendedOrder: int64(math.Ceil(demand + variability + safetyStock)),
	}, nil
}

func trailing(values []float64, size int) []float64 {
	if len(values) <= size {
		return values
	}
	return values[len(values)-size:]
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// trend is the first-to-last change spread over the window length.
func trend(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return (values[len(values)-1] - values[0]) / float64(len(values))
}
