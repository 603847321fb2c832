package catalogue

import "github.com/irrelephant-io/essentia/pkg/physics"

// Essence is the identity of a matter kind (e.g. Aqua, Sodium Chloride):
// its heat capacity, and optionally the phase graph it transitions through
// and the solubility role it plays. Essences are immutable once registered;
// PhaseGraph and Solubility are nil when the essence declares neither.
type Essence struct {
	Id           EssenceId
	Name         string
	HeatCapacity physics.SpecificHeatCapacity
	PhaseGraph   *PhaseGraph
	Solubility   *Solubility
}

// HasPhaseGraph reports whether this essence undergoes phase transitions.
func (e Essence) HasPhaseGraph() bool {
	return e.PhaseGraph != nil
}

// HasSolubility reports whether this essence plays a solvent or solute role.
func (e Essence) HasSolubility() bool {
	return e.Solubility != nil
}

// IsSolvent reports whether this essence can carry dissolved solutes.
func (e Essence) IsSolvent() bool {
	return e.Solubility != nil && e.Solubility.IsSolvent()
}

// IsSolute reports whether this essence can be dissolved into a solvent.
func (e Essence) IsSolute() bool {
	return e.Solubility != nil && e.Solubility.IsSolute()
}
