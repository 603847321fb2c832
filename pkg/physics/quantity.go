package physics

// Quantity is an unsigned amount of matter in millimoles.
type Quantity struct {
	MilliMoles uint64
}

// NoQuantity is the zero quantity. A substance holding NoQuantity is never
// kept in a mixture's substance table.
func NoQuantity() Quantity {
	return Quantity{MilliMoles: 0}
}

// DefaultQuantity is one mole, 1000 mmol.
func DefaultQuantity() Quantity {
	return Quantity{MilliMoles: 1000}
}

// NewQuantity constructs a Quantity from a millimole count.
func NewQuantity(mmol uint64) Quantity {
	return Quantity{MilliMoles: mmol}
}

// IsNone reports whether q carries no matter.
func (q Quantity) IsNone() bool {
	return q.MilliMoles == 0
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{MilliMoles: q.MilliMoles + other.MilliMoles}
}

// Sub returns q minus other. The caller must ensure other does not exceed q;
// use SaturatingSub when that cannot be guaranteed (e.g. product fusion).
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{MilliMoles: q.MilliMoles - other.MilliMoles}
}

// SaturatingSub returns q minus other, floored at zero instead of
// underflowing. Used wherever the product algebra nets a Produce against a
// Consume, or a Dissolve against a Precipitate, for the same key.
func (q Quantity) SaturatingSub(other Quantity) Quantity {
	if other.MilliMoles >= q.MilliMoles {
		return NoQuantity()
	}
	return Quantity{MilliMoles: q.MilliMoles - other.MilliMoles}
}

// Less reports whether q is strictly smaller than other.
func (q Quantity) Less(other Quantity) bool {
	return q.MilliMoles < other.MilliMoles
}

// Min returns the smaller of q and other.
func (q Quantity) Min(other Quantity) Quantity {
	if other.Less(q) {
		return other
	}
	return q
}

// MulPerMol scales q by a PerMol factor, used for saturation-limit and
// weight computations. Negative factors floor the result at zero since a
// matter quantity can never go negative.
func (q Quantity) MulPerMol(factor PerMol) Quantity {
	scaled := int64(q.MilliMoles) * factor.Value
	if scaled < 0 {
		return NoQuantity()
	}
	return Quantity{MilliMoles: uint64(scaled)}
}

// MulPercent scales q by an integer percentage (0-100 typically, though the
// built-in reactions never exceed that range).
func (q Quantity) MulPercent(percent uint32) Quantity {
	return Quantity{MilliMoles: q.MilliMoles * uint64(percent) / 100}
}

// MulFraction scales q by a floating-point ratio in [0, 1], truncating
// toward zero. Used by PhaseTransition's partial-transition fraction and by
// the dissolution/precipitation efficiency curves.
func (q Quantity) MulFraction(frac float64) Quantity {
	if frac <= 0 {
		return NoQuantity()
	}
	return Quantity{MilliMoles: uint64(float64(q.MilliMoles) * frac)}
}

// SumQuantity adds up a slice of quantities.
func SumQuantity(qs []Quantity) Quantity {
	var total Quantity
	for _, q := range qs {
		total = total.Add(q)
	}
	return total
}

// Rate is a signed flow in millimoles per tick.
type Rate struct {
	MilliMolesPerTick int64
}

// NewRate constructs a Rate from a mmol/tick count.
func NewRate(mmolPerTick int64) Rate {
	return Rate{MilliMolesPerTick: mmolPerTick}
}

// Mul scales a Rate by a TimeSpan, producing the Quantity that flows over
// that span.
func (r Rate) Mul(span TimeSpan) Quantity {
	total := r.MilliMolesPerTick * int64(span.Ticks)
	if total < 0 {
		return NoQuantity()
	}
	return Quantity{MilliMoles: uint64(total)}
}

// PerMol is a signed, dimensionless unit-pair factor applied per mole: it
// scales weights (how much dissolved mass a solute's quantity represents)
// and saturation limits (how many millimoles of solute a solvent's quantity
// can hold). The default factor is 1 (one-to-one).
type PerMol struct {
	Value int64
}

// DefaultPerMol is the identity factor, 1.
func DefaultPerMol() PerMol {
	return PerMol{Value: 1}
}

// NewPerMol constructs a PerMol from an integer factor.
func NewPerMol(value int64) PerMol {
	return PerMol{Value: value}
}
