package builtins

import (
	"math"

	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Precipitation returns dissolved solute cargo to Free piles,
// proportionally to each solute's share of a solution's total dissolved
// weight, at a rate governed by the same saturation curve Dissolution
// uses (in the opposite sense, so the two reach equilibrium around
// saturation 1.0).
type Precipitation struct {
	OptimalRatePercent uint32
}

// NewPrecipitation returns a Precipitation at the default rate.
func NewPrecipitation() Precipitation {
	return Precipitation{OptimalRatePercent: DefaultOptimalRatePercent}
}

// Priority matches Dissolution: both resolve solubility before
// PhaseTransition drives any latent-heat crossing.
func (Precipitation) Priority() uint8 {
	return math.MaxUint8 - 1
}

// React emits one Precipitate per solute entry of every live Solution,
// splitting the step's precipitable amount by dissolved weight share.
func (p Precipitation) React(ctx reaction.Context) []reaction.Product {
	snapshot := ctx.Snapshot()
	deltaTime := snapshot.DeltaTime()

	var products []reaction.Product
	for _, solvent := range snapshot.IterSolvents() {
		if solvent.IsFree() {
			continue
		}

		_, solubility, ok := solventSolubility(snapshot, solvent)
		if !ok {
			continue
		}

		saturation := saturationPercent(snapshot, solvent)
		efficiency := precipitationEfficiency(saturation)

		limit := solubility.SaturationLimit(solvent.Quantity())
		perTick := limit.MulPercent(p.OptimalRatePercent).MulFraction(efficiency)
		absolute := physics.NewRate(int64(perTick.MilliMoles)).Mul(deltaTime)
		if absolute.IsNone() {
			continue
		}

		totalWeight := solventSoluteWeight(snapshot, solvent)
		if totalWeight.IsNone() {
			continue
		}

		for essenceId, quantity := range solvent.Solutes {
			soluteEssence, ok := snapshot.Essence(essenceId)
			if !ok || !soluteEssence.IsSolute() {
				continue
			}
			weight := soluteEssence.Solubility.Weight(quantity)
			if weight.IsNone() {
				continue
			}

			share := ratio(weight, totalWeight)
			out := absolute.MulFraction(share)
			if out.IsNone() {
				continue
			}

			products = append(products, reaction.Precipitate(
				essenceId, soluteEssence.Solubility.ActiveForm, solvent.Id, out,
			))
		}
	}

	return products
}
