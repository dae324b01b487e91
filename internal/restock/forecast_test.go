package restock

import (
	"testing"

	pkgerrors "github.com/angelmondragon/retail-decisions/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPolicy = Policy{VariabilityRatio: 0.25, SafetyStockDays: 2}

func TestForecastRisesWithUpwardTrend(t *testing.T) {
	history := []float64{10, 12, 14, 18, 22, 26, 30}

	rec, err := Forecast(history, 15, 5, defaultPolicy)
	require.NoError(t, err)

	// window 14..30: average 22, trend 16/5, projected 23.6/day over 5 days + 15 pending.
	assert.Equal(t, 5, rec.ForecastWindow)
	assert.Equal(t, int64(133), rec.ForecastDemand)
	assert.Greater(t, rec.ForecastDemand, int64(120))
	// 133 + 33.25 + 44 = 210.25
	assert.Equal(t, int64(211), rec.RecommendedOrder)
	assert.Greater(t, rec.RecommendedOrder, rec.ForecastDemand)
}

func TestForecastIgnoresDownwardTrend(t *testing.T) {
	rec, err := Forecast([]float64{9, 6, 3}, 0, 2, Policy{})
	require.NoError(t, err)

	assert.Equal(t, 3, rec.ForecastWindow)
	assert.Equal(t, int64(12), rec.ForecastDemand)
	assert.Equal(t, int64(12), rec.RecommendedOrder)
}

func TestForecastUsesMinimumWindowOfThree(t *testing.T) {
	rec, err := Forecast([]float64{100, 1, 1, 1}, 0, 1, Policy{})
	require.NoError(t, err)
	assert.Equal(t, 3, rec.ForecastWindow)
	assert.Equal(t, int64(1), rec.ForecastDemand)
}

func TestForecastShortAndEmptyHistory(t *testing.T) {
	rec, err := Forecast(nil, 4, 3, defaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.ForecastWindow)
	assert.Equal(t, int64(4), rec.ForecastDemand)
	assert.Equal(t, int64(5), rec.RecommendedOrder)

	rec, err = Forecast([]float64{7}, 0, 2, Policy{})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ForecastWindow)
	assert.Equal(t, int64(14), rec.ForecastDemand)
}

func TestForecastRejectsNonPositiveLeadTime(t *testing.T) {
	for _, lead := range []int{0, -3} {
		_, err := Forecast([]float64{5, 4, 6}, 0, lead, defaultPolicy)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidInput))
		assert.Equal(t, "lead_time_days must be positive", pkgerrors.As(err).Message())
	}
}

func TestMovingAverageSatisfiesForecaster(t *testing.T) {
	var f Forecaster = MovingAverage{}
	direct, err := Forecast([]float64{1, 2, 3}, 0, 3, defaultPolicy)
	require.NoError(t, err)
	viaInterface, err := f.Forecast([]float64{1, 2, 3}, 0, 3, defaultPolicy)
	require.NoError(t, err)
	assert.Equal(t, direct, viaInterface)
}
