package substance

import (
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Builder is a fluent builder for a single Substance with two modes: Free
// (the default) and Solution (opted into via AsSolution). It collects the
// essence, form, quantity and, in Solution mode, a solutes map; the
// SubstanceId is always auto-allocated at Build time, never pinned.
type Builder struct {
	allocator *catalogue.Allocator[SubstanceId]
	essence   catalogue.Essence
	formId    catalogue.FormId
	formSet   bool
	quantity  physics.Quantity
	solution  bool
	solutes   map[catalogue.EssenceId]physics.Quantity
}

// NewBuilder returns a Builder for a pile of the given essence, allocating
// its SubstanceId from allocator when Build is called.
func NewBuilder(allocator *catalogue.Allocator[SubstanceId], essence catalogue.Essence) *Builder {
	return &Builder{allocator: allocator, essence: essence, quantity: physics.DefaultQuantity()}
}

// InForm sets the form this substance pile currently occupies. Required.
func (b *Builder) InForm(formId catalogue.FormId) *Builder {
	b.formId = formId
	b.formSet = true
	return b
}

// WithQuantity sets the pile's own quantity. Defaults to one mole.
func (b *Builder) WithQuantity(quantity physics.Quantity) *Builder {
	b.quantity = quantity
	return b
}

// AsSolution opts into Solution mode, attaching the given solute map (the
// dissolved cargo already present). Solution mode requires the essence to
// be a Solvent whose active form matches the form set via InForm.
func (b *Builder) AsSolution(solutes map[catalogue.EssenceId]physics.Quantity) *Builder {
	b.solution = true
	b.solutes = solutes
	return b
}

// Build finalizes the Substance, allocating a fresh SubstanceId.
func (b *Builder) Build() (Substance, error) {
	if !b.formSet {
		return Substance{}, errors.NewConstructionError("substance requires a form")
	}

	data := SubstanceData{EssenceId: b.essence.Id, FormId: b.formId, Quantity: b.quantity}
	id := b.allocator.Next()

	if !b.solution {
		return NewFree(id, data), nil
	}

	if !b.essence.IsSolvent() {
		return Substance{}, errors.NewConstructionError("solution requires a solvent essence")
	}
	if b.essence.Solubility.ActiveForm != b.formId {
		return Substance{}, errors.NewConstructionError("solution form does not match the essence's active solvent form")
	}

	return NewSolution(id, data, b.solutes), nil
}
