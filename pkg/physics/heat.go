package physics

// SpecificHeatCapacity is the energy in millijoules required to raise one
// millimole of a substance by one millikelvin. It is a per-essence constant.
type SpecificHeatCapacity struct {
	MilliJoulesPerMilliMolePerMilliKelvin uint64
}

// DefaultSpecificHeatCapacity is the identity capacity, 1.
func DefaultSpecificHeatCapacity() SpecificHeatCapacity {
	return SpecificHeatCapacity{MilliJoulesPerMilliMolePerMilliKelvin: 1}
}

// NewSpecificHeatCapacity constructs a SpecificHeatCapacity from its raw unit.
func NewSpecificHeatCapacity(value uint64) SpecificHeatCapacity {
	return SpecificHeatCapacity{MilliJoulesPerMilliMolePerMilliKelvin: value}
}

// HeatCapacity is the total thermal mass of a mixture (or one substance
// within it): the energy required to raise its whole quantity by one
// millikelvin.
type HeatCapacity struct {
	Value uint64
}

// HeatCapacityFromSpecific computes the contribution of a single substance
// pile to the mixture's cached heat capacity for a step.
func HeatCapacityFromSpecific(quantity Quantity, shc SpecificHeatCapacity) HeatCapacity {
	return HeatCapacity{Value: shc.MilliJoulesPerMilliMolePerMilliKelvin * quantity.MilliMoles}
}

// Add returns the sum of two heat capacities, used to fold per-substance
// contributions into the mixture-wide cached value.
func (c HeatCapacity) Add(other HeatCapacity) HeatCapacity {
	return HeatCapacity{Value: c.Value + other.Value}
}

// DeltaTemperature converts an Energy delta into the Temperature change it
// produces against this heat capacity. A zero heat capacity (an empty
// mixture) yields no temperature change rather than dividing by zero.
func (c HeatCapacity) DeltaTemperature(e Energy) Temperature {
	if c.Value == 0 {
		return Temperature{}
	}
	return Temperature{MilliKelvin: e.MilliJoules / int64(c.Value)}
}

// SumHeatCapacity adds up a slice of heat capacities.
func SumHeatCapacity(cs []HeatCapacity) HeatCapacity {
	var total HeatCapacity
	for _, c := range cs {
		total = total.Add(c)
	}
	return total
}
