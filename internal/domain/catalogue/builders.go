package catalogue

import (
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// solubilityBuilder is satisfied by SolventBuilder and SoluteBuilder, the
// two terminal sub-builders a SolubilityBuilder can fork into.
type solubilityBuilder interface {
	build() (Solubility, error)
}

// SolubilityBuilder is the entry point for declaring an essence's role in
// the dissolution system. Call IsSolvent or IsSoluble to pick a role, then
// configure the resulting sub-builder.
type SolubilityBuilder struct{}

// NewSolubilityBuilder returns an unconfigured SolubilityBuilder.
func NewSolubilityBuilder() SolubilityBuilder {
	return SolubilityBuilder{}
}

// IsSolvent forks into a SolventBuilder.
func (SolubilityBuilder) IsSolvent() *SolventBuilder {
	return &SolventBuilder{saturationLimit: physics.DefaultPerMol()}
}

// IsSoluble forks into a SoluteBuilder.
func (SolubilityBuilder) IsSoluble() *SoluteBuilder {
	return &SoluteBuilder{weight: physics.DefaultPerMol()}
}

// SolventBuilder configures a Solvent role: the form the essence must be in
// to act as a solvent, and how much solute weight one millimole of it can
// hold before saturating.
type SolventBuilder struct {
	formId          FormId
	formSet         bool
	saturationLimit physics.PerMol
}

// WhenInForm sets the form this essence must occupy to act as a solvent.
func (b *SolventBuilder) WhenInForm(formId FormId) *SolventBuilder {
	b.formId = formId
	b.formSet = true
	return b
}

// WithSaturationLimit sets the per-millimole saturation limit. Defaults to 1.
func (b *SolventBuilder) WithSaturationLimit(limit physics.PerMol) *SolventBuilder {
	b.saturationLimit = limit
	return b
}

func (b *SolventBuilder) build() (Solubility, error) {
	if !b.formSet {
		return Solubility{}, errors.NewConstructionError("solvent solubility requires an active form")
	}
	return NewSolvent(b.formId, b.saturationLimit), nil
}

// SoluteBuilder configures a Solute role: the form the essence must be in
// to be dissolved, and how much saturation headroom one millimole of it
// consumes in a solvent.
type SoluteBuilder struct {
	formId  FormId
	formSet bool
	weight  physics.PerMol
}

// WhenInForm sets the form this essence must occupy to be dissolved.
func (b *SoluteBuilder) WhenInForm(formId FormId) *SoluteBuilder {
	b.formId = formId
	b.formSet = true
	return b
}

// WithWeight sets the per-millimole saturation weight. Defaults to 1.
func (b *SoluteBuilder) WithWeight(weight physics.PerMol) *SoluteBuilder {
	b.weight = weight
	return b
}

func (b *SoluteBuilder) build() (Solubility, error) {
	if !b.formSet {
		return Solubility{}, errors.NewConstructionError("solute solubility requires an active form")
	}
	return NewSolute(b.formId, b.weight), nil
}

// FormBuilder is a fluent builder for a single Form registration.
type FormBuilder struct {
	allocator  *Allocator[FormId]
	name       string
	explicitId *FormId
}

// NewFormBuilder returns a FormBuilder that auto-allocates its id from
// allocator unless WithId is called.
func NewFormBuilder(allocator *Allocator[FormId]) *FormBuilder {
	return &FormBuilder{allocator: allocator}
}

// WithName sets the form's display name. Required.
func (b *FormBuilder) WithName(name string) *FormBuilder {
	b.name = name
	return b
}

// WithId pins the form to an explicit id, advancing the allocator's
// high-water mark past it.
func (b *FormBuilder) WithId(id FormId) *FormBuilder {
	b.explicitId = &id
	return b
}

// Build finalizes the Form, failing if no name was given.
func (b *FormBuilder) Build() (Form, error) {
	if b.name == "" {
		return Form{}, errors.NewConstructionError("form requires a name")
	}
	id := b.resolveId()
	return Form{Id: id, Name: b.name}, nil
}

func (b *FormBuilder) resolveId() FormId {
	if b.explicitId != nil {
		b.allocator.Observe(*b.explicitId)
		return *b.explicitId
	}
	return b.allocator.Next()
}

// EssenceBuilder is a fluent builder for a single Essence registration,
// collecting name, optional explicit id, specific heat capacity, an
// optional phase-graph sub-builder and an optional solubility sub-builder.
type EssenceBuilder struct {
	allocator    *Allocator[EssenceId]
	name         string
	explicitId   *EssenceId
	heatCapacity physics.SpecificHeatCapacity
	phaseGraph   *PhaseGraphBuilder
	solubility   solubilityBuilder
}

// NewEssenceBuilder returns an EssenceBuilder that auto-allocates its id
// from allocator unless WithId is called, defaulting to unit heat capacity.
func NewEssenceBuilder(allocator *Allocator[EssenceId]) *EssenceBuilder {
	return &EssenceBuilder{allocator: allocator, heatCapacity: physics.DefaultSpecificHeatCapacity()}
}

// WithName sets the essence's display name. Required.
func (b *EssenceBuilder) WithName(name string) *EssenceBuilder {
	b.name = name
	return b
}

// WithId pins the essence to an explicit id, advancing the allocator's
// high-water mark past it.
func (b *EssenceBuilder) WithId(id EssenceId) *EssenceBuilder {
	b.explicitId = &id
	return b
}

// WithSpecificHeatCapacity sets the essence's specific heat capacity.
func (b *EssenceBuilder) WithSpecificHeatCapacity(capacity physics.SpecificHeatCapacity) *EssenceBuilder {
	b.heatCapacity = capacity
	return b
}

// WithPhaseGraph attaches a phase-graph sub-builder. Its invariants are
// validated when Build is called.
func (b *EssenceBuilder) WithPhaseGraph(phaseGraph *PhaseGraphBuilder) *EssenceBuilder {
	b.phaseGraph = phaseGraph
	return b
}

// WithSolubility attaches a solvent or solute sub-builder, as returned by
// NewSolubilityBuilder().IsSolvent() / .IsSoluble().
func (b *EssenceBuilder) WithSolubility(solubility solubilityBuilder) *EssenceBuilder {
	b.solubility = solubility
	return b
}

// Build finalizes the Essence, failing if the name is missing or either
// sub-builder rejects its configuration.
func (b *EssenceBuilder) Build() (Essence, error) {
	if b.name == "" {
		return Essence{}, errors.NewConstructionError("essence requires a name")
	}

	var phaseGraph *PhaseGraph
	if b.phaseGraph != nil {
		built, err := b.phaseGraph.Build()
		if err != nil {
			return Essence{}, err
		}
		phaseGraph = &built
	}

	var solubility *Solubility
	if b.solubility != nil {
		built, err := b.solubility.build()
		if err != nil {
			return Essence{}, err
		}
		solubility = &built
	}

	return Essence{
		Id:           b.resolveId(),
		Name:         b.name,
		HeatCapacity: b.heatCapacity,
		PhaseGraph:   phaseGraph,
		Solubility:   solubility,
	}, nil
}

func (b *EssenceBuilder) resolveId() EssenceId {
	if b.explicitId != nil {
		b.allocator.Observe(*b.explicitId)
		return *b.explicitId
	}
	return b.allocator.Next()
}
