package physics

// Energy is a signed quantity of thermal energy in millijoules.
type Energy struct {
	MilliJoules int64
}

// NewEnergy constructs an Energy from a millijoule count.
func NewEnergy(mj int64) Energy {
	return Energy{MilliJoules: mj}
}

// Add returns the sum of two energies.
func (e Energy) Add(other Energy) Energy {
	return Energy{MilliJoules: e.MilliJoules + other.MilliJoules}
}

// Sub returns the difference e - other.
func (e Energy) Sub(other Energy) Energy {
	return Energy{MilliJoules: e.MilliJoules - other.MilliJoules}
}

// Neg returns the additive inverse of e.
func (e Energy) Neg() Energy {
	return Energy{MilliJoules: -e.MilliJoules}
}

// Div divides e by a TimeSpan, producing the average Power over that span.
// The span must be non-zero. PhaseTransition divides by the step's
// delta_time only on its full-transition branch, which a zero delta_time
// never reaches (the step's total energy is then zero).
func (e Energy) Div(span TimeSpan) Power {
	return Power{MilliWatts: e.MilliJoules / int64(span.Ticks)}
}

// Fraction scales e by the rational number num/den, truncating toward zero.
// A zero den yields zero energy.
func (e Energy) Fraction(num, den int64) Energy {
	if den == 0 {
		return Energy{}
	}
	return Energy{MilliJoules: e.MilliJoules * num / den}
}

// MulQuantity scales a per-mole energy figure (e itself interpreted as
// millijoules per DefaultQuantity(), i.e. per 1000 mmol) by an amount of
// matter, producing the total latent heat that quantity carries across a
// phase transition. Used by PhaseTransition to turn JoulesPerMol into the
// energy a group of substances needs to fully cross a threshold.
func (e Energy) MulQuantity(q Quantity) Energy {
	return Energy{MilliJoules: e.MilliJoules * int64(q.MilliMoles) / 1000}
}

// Abs returns the absolute value of e.
func (e Energy) Abs() Energy {
	if e.MilliJoules < 0 {
		return e.Neg()
	}
	return e
}

// Less reports whether e is strictly smaller than other.
func (e Energy) Less(other Energy) bool {
	return e.MilliJoules < other.MilliJoules
}

// SumEnergy adds up a slice of energies.
func SumEnergy(es []Energy) Energy {
	var total Energy
	for _, e := range es {
		total = total.Add(e)
	}
	return total
}
