package builtins

import (
	"math"

	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// DefaultOptimalRatePercent is the fraction of a solvent's own quantity
// that can dissolve, or a solution's saturation limit that can
// precipitate, per tick at full efficiency.
const DefaultOptimalRatePercent = 10

// Dissolution moves Free solute matter into solvent solute maps,
// distributing the available headroom in proportion to each solvent's
// share of the mixture's total saturation capacity and each solute's
// share of total solute weight.
type Dissolution struct {
	OptimalRatePercent uint32
}

// NewDissolution returns a Dissolution at the default rate.
func NewDissolution() Dissolution {
	return Dissolution{OptimalRatePercent: DefaultOptimalRatePercent}
}

// Priority runs Dissolution immediately before PhaseTransition, so that
// solubility is resolved before latent heat moves matter across forms.
func (Dissolution) Priority() uint8 {
	return math.MaxUint8 - 1
}

// React emits one Dissolve per (solvent, solute) pair with headroom this
// step. The flux formula yields a per-tick amount; it is scaled through a
// Rate so a zero or multi-tick delta_time is honored the same way Thermal
// already is.
func (d Dissolution) React(ctx reaction.Context) []reaction.Product {
	snapshot := ctx.Snapshot()
	deltaTime := snapshot.DeltaTime()
	solvents := snapshot.IterSolvents()
	solutes := snapshot.IterSolutes()

	totalWeight := physics.NoQuantity()
	for _, solute := range solutes {
		_, solubility, ok := soluteSolubility(snapshot, solute)
		if !ok {
			continue
		}
		totalWeight = totalWeight.Add(solubility.Weight(solute.Quantity()))
	}
	if totalWeight.IsNone() {
		return nil
	}

	totalLimit := physics.NoQuantity()
	for _, solvent := range solvents {
		_, solubility, ok := solventSolubility(snapshot, solvent)
		if !ok {
			continue
		}
		totalLimit = totalLimit.Add(solubility.SaturationLimit(solvent.Quantity()))
	}
	if totalLimit.IsNone() {
		return nil
	}

	var products []reaction.Product
	for _, solvent := range solvents {
		_, solubility, ok := solventSolubility(snapshot, solvent)
		if !ok {
			continue
		}

		saturation := saturationPercent(snapshot, solvent)
		efficiency := dissolutionEfficiency(saturation)

		solventLimit := solubility.SaturationLimit(solvent.Quantity())
		relSaturation := ratio(solventLimit, totalLimit)

		for _, solute := range solutes {
			_, soluteRole, ok := soluteSolubility(snapshot, solute)
			if !ok {
				continue
			}
			soluteWeight := soluteRole.Weight(solute.Quantity())
			if soluteWeight.IsNone() {
				continue
			}
			relWeight := ratio(totalWeight, soluteWeight)
			if relWeight == 0 {
				continue
			}
			solubilityRatio := relSaturation / relWeight

			perTick := solvent.Quantity().
				MulPercent(d.OptimalRatePercent).
				MulFraction(solubilityRatio * efficiency)
			flux := physics.NewRate(int64(perTick.MilliMoles)).Mul(deltaTime)
			if flux.IsNone() {
				continue
			}

			products = append(products, reaction.Dissolve(
				solute.Data.EssenceId, solute.Data.FormId, solvent.Id, flux,
			))
		}
	}

	return products
}

// dissolutionEfficiency is full below saturation 0.8, falls linearly to
// 0.1 across [0.8, 1.2], and floors there; balanced against
// precipitationEfficiency to reach equilibrium around saturation 1.0.
func dissolutionEfficiency(saturation float64) float64 {
	switch {
	case saturation < 0.8:
		return 1.0
	case saturation < 1.2:
		return -2.25*(saturation-0.8) + 1.0
	default:
		return 0.1
	}
}

// precipitationEfficiency is the mirror image of dissolutionEfficiency,
// crossing it at saturation 1.0.
func precipitationEfficiency(saturation float64) float64 {
	switch {
	case saturation < 0.8:
		return 0.1
	case saturation < 1.2:
		return 2.25*(saturation-0.8) + 0.1
	default:
		return 1.0
	}
}

// saturationPercent computes s = Σ(weight×quantity) / solvent.quantity over
// a solvent's dissolved cargo, 0 for a Free solvent.
func saturationPercent(snapshot reaction.Snapshot, solvent substance.Substance) float64 {
	if solvent.IsFree() {
		return 0
	}

	weightSum := solventSoluteWeight(snapshot, solvent)
	if solvent.Quantity().IsNone() {
		return 0
	}
	return float64(weightSum.MilliMoles) / float64(solvent.Quantity().MilliMoles)
}

// solventSoluteWeight sums the saturation headroom consumed by every
// solute entry in a solvent's dissolved-cargo map. Shared by
// saturationPercent's numerator and Precipitation's proportional split.
func solventSoluteWeight(snapshot reaction.Snapshot, solvent substance.Substance) physics.Quantity {
	total := physics.NoQuantity()
	for essenceId, quantity := range solvent.Solutes {
		essence, ok := snapshot.Essence(essenceId)
		if !ok || !essence.IsSolute() {
			continue
		}
		total = total.Add(essence.Solubility.Weight(quantity))
	}
	return total
}

// ratio returns num/den as a float64, 0 if den carries no matter.
func ratio(num, den physics.Quantity) float64 {
	if den.IsNone() {
		return 0
	}
	return float64(num.MilliMoles) / float64(den.MilliMoles)
}

// solventSolubility resolves a solvent substance's registered essence and
// Solvent-role Solubility, reporting false if either is missing or the
// essence is not in fact a solvent (a Snapshot implementation is expected
// to have already filtered IterSolvents this tightly; these checks guard
// against a looser one).
func solventSolubility(snapshot reaction.Snapshot, solvent substance.Substance) (catalogue.Essence, catalogue.Solubility, bool) {
	essence, ok := snapshot.Essence(solvent.Data.EssenceId)
	if !ok || !essence.IsSolvent() {
		return catalogue.Essence{}, catalogue.Solubility{}, false
	}
	return essence, *essence.Solubility, true
}

// soluteSolubility resolves a Free substance's registered essence and
// Solute-role Solubility, with the same defensive contract as
// solventSolubility.
func soluteSolubility(snapshot reaction.Snapshot, solute substance.Substance) (catalogue.Essence, catalogue.Solubility, bool) {
	essence, ok := snapshot.Essence(solute.Data.EssenceId)
	if !ok || !essence.IsSolute() {
		return catalogue.Essence{}, catalogue.Solubility{}, false
	}
	return essence, *essence.Solubility, true
}
