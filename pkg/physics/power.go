package physics

// Power is a signed rate of energy transfer in milliwatts. Positive values
// heat a mixture; negative values cool it.
type Power struct {
	MilliWatts int64
}

// NewPower constructs a Power from a milliwatt count.
func NewPower(mw int64) Power {
	return Power{MilliWatts: mw}
}

// Add returns the sum of two powers.
func (p Power) Add(other Power) Power {
	return Power{MilliWatts: p.MilliWatts + other.MilliWatts}
}

// Sub returns the difference p - other.
func (p Power) Sub(other Power) Power {
	return Power{MilliWatts: p.MilliWatts - other.MilliWatts}
}

// Neg returns the additive inverse of p.
func (p Power) Neg() Power {
	return Power{MilliWatts: -p.MilliWatts}
}

// IsZero reports whether p carries no power.
func (p Power) IsZero() bool {
	return p.MilliWatts == 0
}

// Mul scales p by a TimeSpan, producing the Energy delivered over that span.
func (p Power) Mul(span TimeSpan) Energy {
	return Energy{MilliJoules: p.MilliWatts * int64(span.Ticks)}
}
