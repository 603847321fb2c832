// Package reaction defines the Product algebra, the Reaction interface and
// its priority-grouped lookup, and the Context that threads pending
// products through a simulation step. Products of the same routing key fuse
// on the fly, so the pending set stays one entry per (essence, form) or
// (essence, form, solvent) key plus a single thermal accumulator.
package reaction

import (
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Kind discriminates the five Product variants.
type Kind int

const (
	KindThermal Kind = iota
	KindProduce
	KindConsume
	KindDissolve
	KindPrecipitate
)

func (k Kind) String() string {
	switch k {
	case KindThermal:
		return "thermal"
	case KindProduce:
		return "produce"
	case KindConsume:
		return "consume"
	case KindDissolve:
		return "dissolve"
	case KindPrecipitate:
		return "precipitate"
	default:
		return "unknown"
	}
}

// Product is the effect a reaction proposes for one step. Only the fields
// relevant to Kind are meaningful; SolventId is unused outside Dissolve and
// Precipitate, Power is unused outside Thermal.
type Product struct {
	Kind      Kind
	Power     physics.Power
	EssenceId catalogue.EssenceId
	FormId    catalogue.FormId
	SolventId substance.SubstanceId
	Quantity  physics.Quantity
}

// Thermal proposes a net power flow into or out of the mixture.
func Thermal(power physics.Power) Product {
	return Product{Kind: KindThermal, Power: power}
}

// Produce proposes growing a pile of (essence, form) by quantity.
func Produce(essenceId catalogue.EssenceId, formId catalogue.FormId, quantity physics.Quantity) Product {
	return Product{Kind: KindProduce, EssenceId: essenceId, FormId: formId, Quantity: quantity}
}

// Consume proposes shrinking a pile of (essence, form) by quantity.
func Consume(essenceId catalogue.EssenceId, formId catalogue.FormId, quantity physics.Quantity) Product {
	return Product{Kind: KindConsume, EssenceId: essenceId, FormId: formId, Quantity: quantity}
}

// Dissolve proposes absorbing quantity millimoles of Free (essence, form)
// into the solvent identified by solventId.
func Dissolve(essenceId catalogue.EssenceId, formId catalogue.FormId, solventId substance.SubstanceId, quantity physics.Quantity) Product {
	return Product{Kind: KindDissolve, EssenceId: essenceId, FormId: formId, SolventId: solventId, Quantity: quantity}
}

// Precipitate proposes returning quantity millimoles of dissolved (essence,
// form) cargo held by solventId back to a Free pile.
func Precipitate(essenceId catalogue.EssenceId, formId catalogue.FormId, solventId substance.SubstanceId, quantity physics.Quantity) Product {
	return Product{Kind: KindPrecipitate, EssenceId: essenceId, FormId: formId, SolventId: solventId, Quantity: quantity}
}

// IsZero reports whether this product carries no effect and should be
// dropped after folding: zero power for Thermal, zero quantity otherwise.
func (p Product) IsZero() bool {
	if p.Kind == KindThermal {
		return p.Power.IsZero()
	}
	return p.Quantity.IsNone()
}

// substanceKey identifies the Produce/Consume bucket a product belongs to.
type substanceKey struct {
	EssenceId catalogue.EssenceId
	FormId    catalogue.FormId
}

// solventKey identifies the Dissolve/Precipitate bucket a product belongs to.
type solventKey struct {
	EssenceId catalogue.EssenceId
	FormId    catalogue.FormId
	SolventId substance.SubstanceId
}

func (p Product) key() substanceKey {
	return substanceKey{EssenceId: p.EssenceId, FormId: p.FormId}
}

func (p Product) solventOpKey() solventKey {
	return solventKey{EssenceId: p.EssenceId, FormId: p.FormId, SolventId: p.SolventId}
}

// Combine folds two products of matching routing key into one:
//
//   - Thermal ⊕ Thermal: powers sum.
//   - Produce ⊕ Produce / Dissolve ⊕ Dissolve / Precipitate ⊕ Precipitate
//     (same key): quantities sum.
//   - Produce ⊕ Consume (same essence, form): saturating subtraction
//     yields the surplus side.
//   - Dissolve ⊕ Precipitate (same essence, form, solvent): saturating
//     subtraction yields the surplus side.
//
// Any other pairing — mismatched keys, or a combination the algebra does
// not define (e.g. Thermal with anything else) — is a contract violation
// and returns a ProductKeyMismatch error.
func Combine(a, b Product) (Product, error) {
	switch {
	case a.Kind == KindThermal && b.Kind == KindThermal:
		return Thermal(a.Power.Add(b.Power)), nil

	case a.Kind == KindProduce && b.Kind == KindProduce:
		if a.key() != b.key() {
			return Product{}, errors.NewProductKeyMismatch("produce+produce with mismatched (essence,form) keys")
		}
		return Produce(a.EssenceId, a.FormId, a.Quantity.Add(b.Quantity)), nil

	case a.Kind == KindDissolve && b.Kind == KindDissolve:
		if a.solventOpKey() != b.solventOpKey() {
			return Product{}, errors.NewProductKeyMismatch("dissolve+dissolve with mismatched (essence,form,solvent) keys")
		}
		return Dissolve(a.EssenceId, a.FormId, a.SolventId, a.Quantity.Add(b.Quantity)), nil

	case a.Kind == KindPrecipitate && b.Kind == KindPrecipitate:
		if a.solventOpKey() != b.solventOpKey() {
			return Product{}, errors.NewProductKeyMismatch("precipitate+precipitate with mismatched (essence,form,solvent) keys")
		}
		return Precipitate(a.EssenceId, a.FormId, a.SolventId, a.Quantity.Add(b.Quantity)), nil

	case isProduceConsumePair(a, b):
		produce, consume := asProduce(a, b), asConsume(a, b)
		if produce.key() != consume.key() {
			return Product{}, errors.NewProductKeyMismatch("produce+consume with mismatched (essence,form) keys")
		}
		return netProduceConsume(produce, consume), nil

	case isDissolvePrecipitatePair(a, b):
		dissolve, precipitate := asDissolve(a, b), asPrecipitate(a, b)
		if dissolve.solventOpKey() != precipitate.solventOpKey() {
			return Product{}, errors.NewProductKeyMismatch("dissolve+precipitate with mismatched (essence,form,solvent) keys")
		}
		return netDissolvePrecipitate(dissolve, precipitate), nil

	default:
		return Product{}, errors.NewProductKeyMismatch("combine invoked on an undefined product-kind pairing")
	}
}

func isProduceConsumePair(a, b Product) bool {
	return (a.Kind == KindProduce && b.Kind == KindConsume) || (a.Kind == KindConsume && b.Kind == KindProduce)
}

func isDissolvePrecipitatePair(a, b Product) bool {
	return (a.Kind == KindDissolve && b.Kind == KindPrecipitate) || (a.Kind == KindPrecipitate && b.Kind == KindDissolve)
}

func asProduce(a, b Product) Product {
	if a.Kind == KindProduce {
		return a
	}
	return b
}

func asConsume(a, b Product) Product {
	if a.Kind == KindConsume {
		return a
	}
	return b
}

func asDissolve(a, b Product) Product {
	if a.Kind == KindDissolve {
		return a
	}
	return b
}

func asPrecipitate(a, b Product) Product {
	if a.Kind == KindPrecipitate {
		return a
	}
	return b
}

func netProduceConsume(produce, consume Product) Product {
	surplus := produce.Quantity.SaturatingSub(consume.Quantity)
	if !surplus.IsNone() {
		return Produce(produce.EssenceId, produce.FormId, surplus)
	}
	deficit := consume.Quantity.SaturatingSub(produce.Quantity)
	return Consume(consume.EssenceId, consume.FormId, deficit)
}

func netDissolvePrecipitate(dissolve, precipitate Product) Product {
	surplus := dissolve.Quantity.SaturatingSub(precipitate.Quantity)
	if !surplus.IsNone() {
		return Dissolve(dissolve.EssenceId, dissolve.FormId, dissolve.SolventId, surplus)
	}
	deficit := precipitate.Quantity.SaturatingSub(dissolve.Quantity)
	return Precipitate(precipitate.EssenceId, precipitate.FormId, precipitate.SolventId, deficit)
}
