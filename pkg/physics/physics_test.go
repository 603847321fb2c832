package physics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrelephant-io/essentia/pkg/physics"
)

func TestPowerMulTimeSpanProducesEnergy(t *testing.T) {
	t.Parallel()

	p := physics.NewPower(42)
	span := physics.NewTimeSpan(10)

	energy := p.Mul(span)

	assert.Equal(t, int64(420), energy.MilliJoules)
}

func TestEnergyDivTimeSpanProducesPower(t *testing.T) {
	t.Parallel()

	e := physics.NewEnergy(420)
	span := physics.NewTimeSpan(10)

	power := e.Div(span)

	assert.Equal(t, int64(42), power.MilliWatts)
}

func TestRateMulTimeSpanProducesQuantity(t *testing.T) {
	t.Parallel()

	r := physics.NewRate(5)
	span := physics.NewTimeSpan(3)

	qty := r.Mul(span)

	assert.Equal(t, uint64(15), qty.MilliMoles)
}

func TestHeatCapacityFromSpecificAndDeltaTemperature(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		shc        uint64
		quantity   uint64
		energy     int64
		wantDeltaT int64
	}{
		{name: "unit capacity", shc: 1, quantity: 1, energy: 10, wantDeltaT: 10},
		{name: "larger mass heats up less", shc: 4, quantity: 10000, energy: 420000, wantDeltaT: 10},
		{name: "empty mixture has no capacity", shc: 0, quantity: 0, energy: 420, wantDeltaT: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cap := physics.HeatCapacityFromSpecific(
				physics.NewQuantity(tc.quantity),
				physics.NewSpecificHeatCapacity(tc.shc),
			)
			deltaT := cap.DeltaTemperature(physics.NewEnergy(tc.energy))

			assert.Equal(t, tc.wantDeltaT, deltaT.MilliKelvin)
		})
	}
}

func TestQuantitySaturatingSubNeverUnderflows(t *testing.T) {
	t.Parallel()

	small := physics.NewQuantity(5)
	big := physics.NewQuantity(10)

	require.Equal(t, uint64(0), small.SaturatingSub(big).MilliMoles)
	require.Equal(t, uint64(5), big.SaturatingSub(small).MilliMoles)
}

func TestTemperatureInRangeHandlesCoolingDirection(t *testing.T) {
	t.Parallel()

	threshold := physics.NewTemperature(373000)

	assert.True(t, threshold.InRange(physics.NewTemperature(400000), physics.NewTemperature(300000)))
	assert.False(t, threshold.InRange(physics.NewTemperature(400000), physics.NewTemperature(380000)))
}

func TestQuantityMulPerMolScalesByFactor(t *testing.T) {
	t.Parallel()

	q := physics.NewQuantity(100)
	scaled := q.MulPerMol(physics.NewPerMol(2))

	assert.Equal(t, uint64(200), scaled.MilliMoles)
}
