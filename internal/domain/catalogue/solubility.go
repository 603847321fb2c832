package catalogue

import "github.com/irrelephant-io/essentia/pkg/physics"

// SolubilityRole classifies whether an essence can hold dissolved matter
// (Solvent) or be dissolved into one (Solute). Solubility is a flat struct
// guarded by this constant rather than an interface-based sum type.
type SolubilityRole int

const (
	// RoleSolvent marks an essence that can carry dissolved solutes while in
	// its ActiveForm.
	RoleSolvent SolubilityRole = iota
	// RoleSolute marks an essence that can be dissolved into a solvent while
	// in its ActiveForm.
	RoleSolute
)

func (r SolubilityRole) String() string {
	switch r {
	case RoleSolvent:
		return "solvent"
	case RoleSolute:
		return "solute"
	default:
		return "unknown"
	}
}

// Solubility describes an essence's role in the dissolution/precipitation
// system. For a Solvent, Factor is the saturation limit (millimoles of
// solute weight the solvent can hold per millimole of itself). For a Solute,
// Factor is its weight (how much saturation headroom one millimole of it
// consumes, relative to other solutes).
type Solubility struct {
	Role       SolubilityRole
	ActiveForm FormId
	Factor     physics.PerMol
}

// NewSolvent constructs a Solvent solubility with the given active form and
// saturation limit.
func NewSolvent(activeForm FormId, saturationLimit physics.PerMol) Solubility {
	return Solubility{Role: RoleSolvent, ActiveForm: activeForm, Factor: saturationLimit}
}

// NewSolute constructs a Solute solubility with the given active form and
// weight.
func NewSolute(activeForm FormId, weight physics.PerMol) Solubility {
	return Solubility{Role: RoleSolute, ActiveForm: activeForm, Factor: weight}
}

// IsSolvent reports whether this solubility describes a solvent role.
func (s Solubility) IsSolvent() bool { return s.Role == RoleSolvent }

// IsSolute reports whether this solubility describes a solute role.
func (s Solubility) IsSolute() bool { return s.Role == RoleSolute }

// SaturationLimit returns the quantity of solute weight a pile of the given
// quantity of this solvent can hold. Zero for a Solute.
func (s Solubility) SaturationLimit(quantity physics.Quantity) physics.Quantity {
	if s.Role != RoleSolvent {
		return physics.NoQuantity()
	}
	return quantity.MulPerMol(s.Factor)
}

// Weight returns the saturation headroom a pile of the given quantity of
// this solute consumes. Zero for a Solvent.
func (s Solubility) Weight(quantity physics.Quantity) physics.Quantity {
	if s.Role != RoleSolute {
		return physics.NoQuantity()
	}
	return quantity.MulPerMol(s.Factor)
}
