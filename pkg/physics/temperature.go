// Package physics provides the fixed-point scalar types the simulation engine
// uses to describe heat, matter and time: Temperature, Energy, Power,
// Quantity, Rate, TimeSpan and the heat-capacity pair. Every value is an
// integer count of its smallest unit (millikelvin, millijoules, milliwatts,
// millimoles, ticks) so that a simulation step composes only exact integer
// arithmetic; the only floating-point computations in the engine are the
// dimensionless ratios built-in reactions use internally, and those never
// round-trip back through these types.
package physics

import "fmt"

// Temperature is an absolute temperature in millikelvin.
type Temperature struct {
	MilliKelvin int64
}

// DefaultTemperature is room temperature, 293 000 mK (19.85 °C).
func DefaultTemperature() Temperature {
	return Temperature{MilliKelvin: 293000}
}

// NewTemperature constructs a Temperature from a millikelvin count.
func NewTemperature(mk int64) Temperature {
	return Temperature{MilliKelvin: mk}
}

// Add returns the sum of two temperatures.
func (t Temperature) Add(other Temperature) Temperature {
	return Temperature{MilliKelvin: t.MilliKelvin + other.MilliKelvin}
}

// Sub returns the difference t - other.
func (t Temperature) Sub(other Temperature) Temperature {
	return Temperature{MilliKelvin: t.MilliKelvin - other.MilliKelvin}
}

// Less reports whether t is strictly colder than other.
func (t Temperature) Less(other Temperature) bool {
	return t.MilliKelvin < other.MilliKelvin
}

// LessOrEqual reports whether t is not hotter than other.
func (t Temperature) LessOrEqual(other Temperature) bool {
	return t.MilliKelvin <= other.MilliKelvin
}

// InRange reports whether t lies within the closed range between a and b,
// regardless of which bound is numerically smaller.
func (t Temperature) InRange(a, b Temperature) bool {
	lo, hi := a, b
	if hi.MilliKelvin < lo.MilliKelvin {
		lo, hi = hi, lo
	}
	return !t.Less(lo) && !hi.Less(t)
}

func (t Temperature) String() string {
	return fmt.Sprintf("%dmK", t.MilliKelvin)
}
