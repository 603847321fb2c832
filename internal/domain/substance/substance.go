// Package substance models the tagged-variant Substance type (Free pile or
// Solution) and the pure algebra over it: splitting a pile for partial
// dissolution and merging two substances of matching identity. A Solution
// carries its dissolved cargo as a per-essence quantity map, so one solvent
// can hold any number of solutes at once.
package substance

import (
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// SubstanceId is an opaque handle identifying one substance pile in a
// flask. Unlike EssenceId/FormId it is always auto-allocated at
// construction time — callers never pin an explicit substance id.
type SubstanceId uint16

// Kind discriminates the two Substance variants. Substance is a flat
// struct guarded by this constant, the same shape as catalogue.Solubility,
// rather than an interface-based sum type.
type Kind int

const (
	// KindFree marks a plain pile of one essence in one form.
	KindFree Kind = iota
	// KindSolution marks a solvent pile carrying dissolved solute cargo.
	KindSolution
)

func (k Kind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindSolution:
		return "solution"
	default:
		return "unknown"
	}
}

// SubstanceData is the (essence, form, quantity) triple shared by a Free
// pile and by a Solution's solvent.
type SubstanceData struct {
	EssenceId catalogue.EssenceId
	FormId    catalogue.FormId
	Quantity  physics.Quantity
}

// Matches reports whether this data describes the given (essence, form) pair.
func (d SubstanceData) Matches(essenceId catalogue.EssenceId, formId catalogue.FormId) bool {
	return d.EssenceId == essenceId && d.FormId == formId
}

// Substance is a concrete pile belonging to one essence: either a Free pile
// in one form, or a Solution whose Data holds the solvent's own (essence,
// form, quantity) and whose Solutes map holds dissolved millimoles per
// solute essence. Solutes is nil for a Free substance.
type Substance struct {
	Id      SubstanceId
	Kind    Kind
	Data    SubstanceData
	Solutes map[catalogue.EssenceId]physics.Quantity
}

// NewFree constructs a Free substance.
func NewFree(id SubstanceId, data SubstanceData) Substance {
	return Substance{Id: id, Kind: KindFree, Data: data}
}

// NewSolution constructs a Solution substance. solutes may be nil, which is
// treated identically to an empty map by every accessor below.
func NewSolution(id SubstanceId, solventData SubstanceData, solutes map[catalogue.EssenceId]physics.Quantity) Substance {
	return Substance{Id: id, Kind: KindSolution, Data: solventData, Solutes: solutes}
}

// IsFree reports whether this is a Free pile.
func (s Substance) IsFree() bool { return s.Kind == KindFree }

// IsSolution reports whether this is a Solution.
func (s Substance) IsSolution() bool { return s.Kind == KindSolution }

// Quantity returns the substance's own pile quantity: the Free pile's size,
// or the Solution's solvent quantity (never the dissolved cargo).
func (s Substance) Quantity() physics.Quantity {
	return s.Data.Quantity
}

// IsEmpty reports whether this substance's own quantity is zero. An empty
// substance is never kept in a flask's table.
func (s Substance) IsEmpty() bool {
	return s.Data.Quantity.IsNone()
}

// Matches reports whether this substance's own data is keyed on the given
// (essence, form) pair.
func (s Substance) Matches(essenceId catalogue.EssenceId, formId catalogue.FormId) bool {
	return s.Data.Matches(essenceId, formId)
}

// SoluteQuantity returns the dissolved quantity of the given solute
// essence, or none() if absent or this is not a Solution.
func (s Substance) SoluteQuantity(essenceId catalogue.EssenceId) physics.Quantity {
	if s.Kind != KindSolution || s.Solutes == nil {
		return physics.NoQuantity()
	}
	return s.Solutes[essenceId]
}

// WithSolventQuantity returns a copy of this substance with its own
// quantity replaced. Used by mutators that grow or shrink a pile in place
// while preserving identity and, for a Solution, its solute map.
func (s Substance) WithSolventQuantity(q physics.Quantity) Substance {
	clone := s
	clone.Data.Quantity = q
	return clone
}

// Divide splits off up to max millimoles from a Free substance, returning
// the consumed quantity and — if any quantity remains — a Substance
// carrying the same identity and the leftover amount. When max covers the
// whole pile, remainder is nil. Divide is only meaningful on a Free
// substance; callers never invoke it on a Solution (the dissolve mutator
// only ever scans Free solutes).
func (s Substance) Divide(max physics.Quantity) (consumed physics.Quantity, remainder *Substance) {
	available := s.Data.Quantity
	if max.Less(available) {
		rest := s.WithSolventQuantity(available.Sub(max))
		return max, &rest
	}
	return available, nil
}

// Merge combines an existing substance with an incoming one of matching
// (essence, form) identity. Free+Free sums quantities; a Solution absorbs
// an incoming Free pile into its solvent quantity; a Free solvent adopting
// an incoming Solution takes over its solutes; Solution+Solution sums both
// solvent quantities and solute maps. The existing substance's SubstanceId
// is always
// preserved. Merge does not validate that the two share their (essence,
// form) key — callers (Mixture.add_substance) only merge substances they
// have already matched by that key via extract_matching.
func Merge(existing, incoming Substance) Substance {
	switch {
	case existing.IsFree() && incoming.IsFree():
		return NewFree(existing.Id, SubstanceData{
			EssenceId: existing.Data.EssenceId,
			FormId:    existing.Data.FormId,
			Quantity:  existing.Data.Quantity.Add(incoming.Data.Quantity),
		})

	case existing.IsSolution() && incoming.IsFree():
		merged := existing.WithSolventQuantity(existing.Data.Quantity.Add(incoming.Data.Quantity))
		return merged

	case existing.IsFree() && incoming.IsSolution():
		return NewSolution(
			existing.Id,
			SubstanceData{
				EssenceId: existing.Data.EssenceId,
				FormId:    existing.Data.FormId,
				Quantity:  existing.Data.Quantity.Add(incoming.Data.Quantity),
			},
			incoming.Solutes,
		)

	default: // Solution + Solution
		merged := map[catalogue.EssenceId]physics.Quantity{}
		for essenceId, quantity := range existing.Solutes {
			merged[essenceId] = quantity
		}
		for essenceId, quantity := range incoming.Solutes {
			merged[essenceId] = merged[essenceId].Add(quantity)
		}
		return NewSolution(existing.Id, SubstanceData{
			EssenceId: existing.Data.EssenceId,
			FormId:    existing.Data.FormId,
			Quantity:  existing.Data.Quantity.Add(incoming.Data.Quantity),
		}, merged)
	}
}
