// Package builtins provides the three built-in Reactions every flask
// preregisters: PhaseTransition, Dissolution and Precipitation.
// PhaseTransition runs at the highest priority so it observes the net
// thermal balance every other reaction proposed; Dissolution and
// Precipitation run one bucket earlier and balance each other around
// saturation 1.0.
package builtins

import (
	"math"
	"sort"

	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// PhaseTransition drives matter across phase-graph thresholds using the net
// Thermal pending after every other reaction in a lower priority group has
// run. It always runs last (priority MAX) so it sees the step's final
// thermal balance.
type PhaseTransition struct{}

// Priority places PhaseTransition after every other built-in and custom
// reaction.
func (PhaseTransition) Priority() uint8 {
	return math.MaxUint8
}

// React finds the net Thermal product pending from earlier priority
// groups and, if any, drives substances across the thresholds it crosses.
func (t PhaseTransition) React(ctx reaction.Context) []reaction.Product {
	power, ok := netThermal(ctx.Pending)
	if !ok || power.IsZero() {
		return nil
	}

	heating := power.MilliWatts > 0
	return runTransition(ctx, power, heating)
}

func netThermal(pending []reaction.Product) (physics.Power, bool) {
	for _, p := range pending {
		if p.Kind == reaction.KindThermal {
			return p.Power, true
		}
	}
	return physics.Power{}, false
}

// transitionCandidate is one phase-graph transition a single substance is
// eligible to cross this step, alongside the data needed to emit its
// Consume/Produce pair.
type transitionCandidate struct {
	transition  catalogue.PhaseTransition
	essenceId   catalogue.EssenceId
	currentForm catalogue.FormId
	targetForm  catalogue.FormId
	quantity    physics.Quantity
}

// runTransition handles both directions: heating matches a substance's
// current form against a transition's LeftForm and walks thresholds
// ascending from the current temperature; cooling matches RightForm and
// walks descending down to the temperature the step's energy could reach.
// The two directions share every step but the matching side, the range
// orientation, the iteration order and the sign of the cancelling Thermal
// emitted on a full transition, so both are folded into one function
// parameterized by heating.
func runTransition(ctx reaction.Context, power physics.Power, heating bool) []reaction.Product {
	snapshot := ctx.Snapshot()
	deltaTime := snapshot.DeltaTime()
	totalEnergy := power.Mul(deltaTime)
	envTemp := snapshot.Temperature()
	capDeltaT := snapshot.HeatCapacity().DeltaTemperature(totalEnergy)

	var lo, hi physics.Temperature
	if heating {
		lo, hi = envTemp, envTemp.Add(capDeltaT)
	} else {
		lo, hi = envTemp.Add(capDeltaT), envTemp
	}

	groups := map[physics.Temperature][]transitionCandidate{}
	var thresholds []physics.Temperature

	for _, s := range snapshot.IterPhaseCandidates() {
		essence, ok := snapshot.Essence(s.Data.EssenceId)
		if !ok || !essence.HasPhaseGraph() {
			continue
		}
		for _, transition := range essence.PhaseGraph.InRange(lo, hi, heating) {
			var matches bool
			var currentForm, targetForm catalogue.FormId
			if heating {
				matches = transition.LeftForm == s.Data.FormId
				currentForm, targetForm = transition.LeftForm, transition.RightForm
			} else {
				matches = transition.RightForm == s.Data.FormId
				currentForm, targetForm = transition.RightForm, transition.LeftForm
			}
			if !matches {
				continue
			}

			if _, seen := groups[transition.Threshold]; !seen {
				thresholds = append(thresholds, transition.Threshold)
			}
			groups[transition.Threshold] = append(groups[transition.Threshold], transitionCandidate{
				transition:  transition,
				essenceId:   s.Data.EssenceId,
				currentForm: currentForm,
				targetForm:  targetForm,
				quantity:    s.Quantity(),
			})
		}
	}

	sort.Slice(thresholds, func(i, j int) bool {
		if heating {
			return thresholds[i].Less(thresholds[j])
		}
		return thresholds[j].Less(thresholds[i])
	})

	var products []reaction.Product
	remaining := totalEnergy

	for _, threshold := range thresholds {
		entries := groups[threshold]

		var energyGroup physics.Energy
		for _, c := range entries {
			energyGroup = energyGroup.Add(c.transition.JoulesPerMol.MulQuantity(c.quantity))
		}

		if energyGroup.Abs().Less(remaining.Abs()) {
			// Full transition: every member crosses at its full quantity.
			if heating {
				remaining = remaining.Sub(energyGroup)
				products = append(products, reaction.Thermal(energyGroup.Div(deltaTime).Neg()))
			} else {
				remaining = remaining.Add(energyGroup)
				products = append(products, reaction.Thermal(energyGroup.Div(deltaTime)))
			}
			for _, c := range entries {
				products = append(products,
					reaction.Consume(c.essenceId, c.currentForm, c.quantity),
					reaction.Produce(c.essenceId, c.targetForm, c.quantity),
				)
			}
			continue
		}

		// Partial transition: only a fraction of remaining energy is spent
		// crossing this group; the step's remaining power is fully cancelled
		// and no further threshold groups are processed.
		products = append(products, reaction.Thermal(power.Neg()))
		fraction := float64(remaining.Abs().MilliJoules) / float64(energyGroup.Abs().MilliJoules)
		for _, c := range entries {
			qty := c.quantity.MulFraction(fraction)
			if qty.IsNone() {
				continue
			}
			products = append(products,
				reaction.Consume(c.essenceId, c.currentForm, qty),
				reaction.Produce(c.essenceId, c.targetForm, qty),
			)
		}
		break
	}

	return products
}
