package mixture

import (
	"fmt"
	"math"

	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/logging"
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Simulate advances the flask by one discrete-time step:
//
//  1. delta_time is recorded.
//  2. heat_capacity is recomputed over every live substance's own quantity
//     (a Solution's dissolved cargo is thermally invisible).
//  3. every priority group of registered reactions is folded, in ascending
//     priority order, into a single fused product list via
//     reaction.Context.Apply; within a group every reaction observes the
//     same pending set.
//  4. is_in_equilibrium is set from whether that fused list is empty,
//     BEFORE any mutation happens.
//  5. each fused product is applied to the live substance table by its
//     matching mutator (see applyProduct).
//  6. the clock advances by delta_time.
//
// Along the way the flask's Logger reports product counts at Debug and the
// equilibrium / phase-transition milestones at Info, and the StepObserver
// (when one is attached) is notified of every reaction firing and every
// fused product applied.
func (m *Mixture) Simulate(delta physics.TimeSpan) error {
	m.deltaTime = delta
	m.heatCapacity = m.computeHeatCapacity()

	ctx := reaction.NewContext(m)
	for _, group := range m.reactions.Groups() {
		var groupProducts []reaction.Product
		for _, r := range group.Reactions {
			products := r.React(ctx)
			if len(products) > 0 {
				if m.observer != nil {
					m.observer.ReactionFired(reactionName(r), len(products))
				}
				m.logger.Debug("reaction proposed products",
					logging.String("reaction", reactionName(r)),
					logging.Int("count", len(products)),
					logging.Tick(m.environment.Time.Ticks),
				)
			}
			groupProducts = append(groupProducts, products...)
		}

		// The MAX-priority group is the phase-transition stage; products
		// there mean matter is crossing a threshold this tick.
		if group.Priority == math.MaxUint8 && len(groupProducts) > 0 {
			m.logger.Info("phase transition in progress",
				logging.Tick(m.environment.Time.Ticks),
				logging.TemperatureMilliKelvin(m.environment.Temperature.MilliKelvin),
			)
		}

		next, err := ctx.Apply(groupProducts)
		if err != nil {
			return err
		}
		ctx = next
	}

	final := ctx.Pending
	wasInEquilibrium := m.isInEquilibrium
	m.isInEquilibrium = len(final) == 0
	m.logger.Debug("step products fused",
		logging.Tick(m.environment.Time.Ticks),
		logging.Int("products", len(final)),
	)
	if m.isInEquilibrium && !wasInEquilibrium {
		m.logger.Info("mixture reached equilibrium",
			logging.Tick(m.environment.Time.Ticks),
			logging.SubstanceCount(len(m.substances)),
		)
	}

	for _, p := range final {
		if err := m.applyProduct(p); err != nil {
			return err
		}
		if m.observer != nil {
			m.observer.ProductApplied(p.Kind.String())
		}
	}

	m.environment.Time = m.environment.Time.Advance(delta)
	return nil
}

// reactionName labels a reaction for logs and metrics by its Go type, a
// stable, low-cardinality identifier that needs no cooperation from the
// Reaction implementation.
func reactionName(r reaction.Reaction) string {
	return fmt.Sprintf("%T", r)
}

// computeHeatCapacity sums SpecificHeatCapacity(essence) × quantity over
// every live substance's own pile. A Solution's dissolved solutes carry no
// thermal mass until they precipitate back to a Free pile.
func (m *Mixture) computeHeatCapacity() physics.HeatCapacity {
	var total physics.HeatCapacity
	for _, s := range m.substances {
		essence, ok := m.essences[s.Data.EssenceId]
		if !ok {
			continue
		}
		total = total.Add(physics.HeatCapacityFromSpecific(s.Quantity(), essence.HeatCapacity))
	}
	return total
}

// applyProduct dispatches one fused product to its mutator. Mutators are
// applied sequentially in the order final lists them; only Consume can
// fail (a solute falling out of a depleted solvent with a broken
// solubility invariant).
func (m *Mixture) applyProduct(p reaction.Product) error {
	switch p.Kind {
	case reaction.KindThermal:
		m.applyThermal(p.Power)
	case reaction.KindProduce:
		m.produceSubstance(p.EssenceId, p.FormId, p.Quantity)
	case reaction.KindConsume:
		return m.consumeSubstance(p.EssenceId, p.FormId, p.Quantity)
	case reaction.KindDissolve:
		m.dissolveSubstance(p.EssenceId, p.FormId, p.SolventId, p.Quantity)
	case reaction.KindPrecipitate:
		m.precipitateSubstance(p.EssenceId, p.FormId, p.SolventId, p.Quantity)
	}
	return nil
}

// applyThermal converts a net Power into an Energy delta over the step's
// delta_time and folds the resulting Temperature change into the
// environment: ΔE = p × delta_time; ΔT = ΔE ÷ heat_capacity.
func (m *Mixture) applyThermal(power physics.Power) {
	deltaEnergy := power.Mul(m.deltaTime)
	deltaTemp := m.heatCapacity.DeltaTemperature(deltaEnergy)
	m.environment.Temperature = m.environment.Temperature.Add(deltaTemp)
}

// produceSubstance grows an existing (essence, form) pile by quantity, or
// constructs a fresh Free pile with a newly allocated id if none exists
// yet. Growing a Solution adds to its own solvent quantity, never its
// solute map.
func (m *Mixture) produceSubstance(essenceId catalogue.EssenceId, formId catalogue.FormId, quantity physics.Quantity) {
	if quantity.IsNone() {
		return
	}

	if existing, found := m.extractMatching(essenceId, formId); found {
		grown := existing.WithSolventQuantity(existing.Quantity().Add(quantity))
		m.substances[grown.Id] = grown
		return
	}

	id := m.nextSubstanceId()
	m.substances[id] = substance.NewFree(id, substance.SubstanceData{
		EssenceId: essenceId,
		FormId:    formId,
		Quantity:  quantity,
	})
}

// consumeSubstance shrinks or removes matching (essence, form) piles until
// quantity millimoles have been accounted for, walking substances in
// stable id order. A depleted Solution's dissolved solutes fall out as
// Free piles of their own precipitate form — conservation under solvent
// loss.
func (m *Mixture) consumeSubstance(essenceId catalogue.EssenceId, formId catalogue.FormId, quantity physics.Quantity) error {
	remaining := quantity
	type fallout struct {
		essenceId catalogue.EssenceId
		quantity  physics.Quantity
	}
	var fallen []fallout

	for _, id := range m.sortedIds() {
		if remaining.IsNone() {
			break
		}
		s, ok := m.substances[id]
		if !ok || !s.Matches(essenceId, formId) {
			continue
		}

		if remaining.Less(s.Quantity()) {
			m.substances[id] = s.WithSolventQuantity(s.Quantity().Sub(remaining))
			remaining = physics.NoQuantity()
			break
		}

		remaining = remaining.Sub(s.Quantity())
		m.removeSubstance(id)
		for soluteEssenceId, soluteQuantity := range s.Solutes {
			fallen = append(fallen, fallout{essenceId: soluteEssenceId, quantity: soluteQuantity})
		}
	}

	for _, f := range fallen {
		essence, ok := m.essences[f.essenceId]
		if !ok || essence.Solubility == nil || !essence.Solubility.IsSolute() {
			return errors.NewSolubilityInvariantBroken("solute fell out of a depleted solvent with a non-solute essence")
		}
		m.produceSubstance(f.essenceId, essence.Solubility.ActiveForm, f.quantity)
	}
	return nil
}

// dissolveSubstance absorbs up to quantity millimoles of Free (essence,
// form) matter into the solvent's solute map, converting a Free solvent
// into a Solution in the process. A no-op if the solvent id is no longer
// live or no matching Free solute exists.
func (m *Mixture) dissolveSubstance(essenceId catalogue.EssenceId, formId catalogue.FormId, solventId substance.SubstanceId, quantity physics.Quantity) {
	solvent, ok := m.substances[solventId]
	if !ok {
		return
	}
	delete(m.substances, solventId)

	solutes := cloneSolutes(solvent.Solutes)
	remaining := quantity
	var remainders []substance.Substance
	absorbed := false

	for _, id := range m.sortedIds() {
		if remaining.IsNone() {
			break
		}
		s, ok := m.substances[id]
		if !ok || !s.IsFree() || !s.Matches(essenceId, formId) {
			continue
		}

		absorbed = true
		delete(m.substances, id)
		consumed, remainder := s.Divide(remaining)
		solutes[essenceId] = solutes[essenceId].Add(consumed)
		remaining = remaining.Sub(consumed)
		if remainder != nil {
			remainders = append(remainders, *remainder)
		}
	}

	if !absorbed {
		m.substances[solvent.Id] = solvent
		return
	}

	m.substances[solvent.Id] = substance.NewSolution(solvent.Id, solvent.Data, solutes)
	for _, r := range remainders {
		m.substances[r.Id] = r
	}
}

// precipitateSubstance transfers up to quantity millimoles of dissolved
// (essence, form) cargo held by solventId back to a Free pile, removing
// the solute's map entry if it exhausts. A no-op if solventId is not a
// live Solution or holds no such solute.
func (m *Mixture) precipitateSubstance(essenceId catalogue.EssenceId, formId catalogue.FormId, solventId substance.SubstanceId, quantity physics.Quantity) {
	solvent, ok := m.substances[solventId]
	if !ok || !solvent.IsSolution() {
		return
	}
	current, has := solvent.Solutes[essenceId]
	if !has || current.IsNone() {
		return
	}

	solutes := cloneSolutes(solvent.Solutes)
	var deducted physics.Quantity
	if quantity.Less(current) {
		deducted = quantity
		solutes[essenceId] = current.Sub(quantity)
	} else {
		deducted = current
		delete(solutes, essenceId)
	}

	m.substances[solventId] = substance.NewSolution(solvent.Id, solvent.Data, solutes)
	if !deducted.IsNone() {
		m.produceSubstance(essenceId, formId, deducted)
	}
}

// cloneSolutes returns a shallow copy of a solute map so mutators never
// share map storage between the substance they read and the one they
// write back — consistent with substance.Merge/Divide's copy-on-write
// style (no in-place map mutation anywhere in this engine).
func cloneSolutes(in map[catalogue.EssenceId]physics.Quantity) map[catalogue.EssenceId]physics.Quantity {
	out := make(map[catalogue.EssenceId]physics.Quantity, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
