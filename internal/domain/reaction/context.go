package reaction

import (
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Snapshot is the read-only view of the mixture a Reaction observes. It is
// a consumer-side interface — defined here, in the package that uses it,
// rather than in mixture — so that reaction has no import dependency on
// mixture while mixture.Mixture still satisfies it structurally.
type Snapshot interface {
	Temperature() physics.Temperature
	HeatCapacity() physics.HeatCapacity
	DeltaTime() physics.TimeSpan
	Essence(id catalogue.EssenceId) (catalogue.Essence, bool)
	Form(id catalogue.FormId) (catalogue.Form, bool)
	Substance(id substance.SubstanceId) (substance.Substance, bool)
	IterAll() []substance.Substance
	IterSolvents() []substance.Substance
	IterSolutes() []substance.Substance
	IterPhaseCandidates() []substance.Substance
}

// Context is the immutable snapshot-plus-accumulator threaded through one
// simulation step. Pending holds the fused products proposed so far: a
// single Thermal accumulator, Produce/Consume entries keyed by
// (essence, form), and Dissolve/Precipitate entries keyed by
// (essence, form, solvent).
type Context struct {
	snapshot Snapshot
	Pending  []Product
}

// NewContext seeds an empty Context over the given snapshot.
func NewContext(snapshot Snapshot) Context {
	return Context{snapshot: snapshot}
}

// Snapshot returns the read-only mixture view reactions observe.
func (c Context) Snapshot() Snapshot {
	return c.snapshot
}

// Apply folds pending plus products into the keyed buckets, drops zero
// entries, and returns a new Context carrying the fused result. Apply is
// pure: it neither mutates c nor the mixture.
func (c Context) Apply(products []Product) (Context, error) {
	thermal := Thermal(physics.NewPower(0))
	substanceBucket := map[substanceKey]Product{}
	substanceOrder := make([]substanceKey, 0, len(c.Pending)+len(products))
	solventBucket := map[solventKey]Product{}
	solventOrder := make([]solventKey, 0, len(c.Pending)+len(products))

	all := make([]Product, 0, len(c.Pending)+len(products))
	all = append(all, c.Pending...)
	all = append(all, products...)

	for _, product := range all {
		switch product.Kind {
		case KindThermal:
			merged, err := Combine(thermal, product)
			if err != nil {
				return Context{}, err
			}
			thermal = merged

		case KindProduce, KindConsume:
			key := product.key()
			existing, seen := substanceBucket[key]
			if !seen {
				substanceBucket[key] = product
				substanceOrder = append(substanceOrder, key)
				continue
			}
			merged, err := Combine(existing, product)
			if err != nil {
				return Context{}, err
			}
			substanceBucket[key] = merged

		case KindDissolve, KindPrecipitate:
			key := product.solventOpKey()
			existing, seen := solventBucket[key]
			if !seen {
				solventBucket[key] = product
				solventOrder = append(solventOrder, key)
				continue
			}
			merged, err := Combine(existing, product)
			if err != nil {
				return Context{}, err
			}
			solventBucket[key] = merged
		}
	}

	fused := make([]Product, 0, len(substanceOrder)+len(solventOrder)+1)
	for _, key := range substanceOrder {
		if p := substanceBucket[key]; !p.IsZero() {
			fused = append(fused, p)
		}
	}
	for _, key := range solventOrder {
		if p := solventBucket[key]; !p.IsZero() {
			fused = append(fused, p)
		}
	}
	if !thermal.IsZero() {
		fused = append(fused, thermal)
	}

	return Context{snapshot: c.snapshot, Pending: fused}, nil
}
