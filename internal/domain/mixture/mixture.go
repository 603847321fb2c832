// Package mixture owns the Flask: the live substance table, the ambient
// Environment, the immutable essence/form/reaction catalogues, and the
// step loop that drives the simulation forward. Construction goes through
// an explicit builder (mixture.Builder) producing a sealed *Mixture rather
// than a public struct literal with exported fields.
package mixture

import (
	"sort"

	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/logging"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Mixture is the flask: the top-level owner of substances, environment and
// the reaction pipeline. It satisfies
// reaction.Snapshot so every built-in and custom Reaction can observe it
// through that narrow, read-only interface during a step.
type Mixture struct {
	environment     Environment
	deltaTime       physics.TimeSpan
	heatCapacity    physics.HeatCapacity
	isInEquilibrium bool

	logger   logging.Logger
	observer StepObserver

	essences  map[catalogue.EssenceId]catalogue.Essence
	forms     map[catalogue.FormId]catalogue.Form
	reactions *reaction.Lookup

	substances   map[substance.SubstanceId]substance.Substance
	substanceIds *catalogue.Allocator[substance.SubstanceId]
}

// Environment returns the flask's current ambient state.
func (m *Mixture) Environment() Environment {
	return m.environment
}

// Temperature returns the flask's current temperature. Part of
// reaction.Snapshot.
func (m *Mixture) Temperature() physics.Temperature {
	return m.environment.Temperature
}

// HeatCapacity returns the heat capacity cached for the step in progress
// (or the zero value before the first Simulate call). Part of
// reaction.Snapshot.
func (m *Mixture) HeatCapacity() physics.HeatCapacity {
	return m.heatCapacity
}

// DeltaTime returns the interval the step in progress is advancing by.
// Part of reaction.Snapshot.
func (m *Mixture) DeltaTime() physics.TimeSpan {
	return m.deltaTime
}

// IsInEquilibrium reports whether the most recently completed step's fused
// product list was empty before mutation.
func (m *Mixture) IsInEquilibrium() bool {
	return m.isInEquilibrium
}

// Essence looks up a registered essence by id. Part of reaction.Snapshot.
func (m *Mixture) Essence(id catalogue.EssenceId) (catalogue.Essence, bool) {
	e, ok := m.essences[id]
	return e, ok
}

// Form looks up a registered form by id. Part of reaction.Snapshot.
func (m *Mixture) Form(id catalogue.FormId) (catalogue.Form, bool) {
	f, ok := m.forms[id]
	return f, ok
}

// Substance looks up a live substance by id. Part of reaction.Snapshot.
func (m *Mixture) Substance(id substance.SubstanceId) (substance.Substance, bool) {
	s, ok := m.substances[id]
	return s, ok
}

// GetSolubility returns the solubility role registered for essenceId, if
// any.
func (m *Mixture) GetSolubility(essenceId catalogue.EssenceId) (catalogue.Solubility, bool) {
	essence, ok := m.essences[essenceId]
	if !ok || essence.Solubility == nil {
		return catalogue.Solubility{}, false
	}
	return *essence.Solubility, true
}

// sortedIds returns every live substance id in ascending order, giving
// every Iter* query and every mutator a stable walk order for the
// duration of one step. Ranging the map directly would randomize the
// order between runs.
func (m *Mixture) sortedIds() []substance.SubstanceId {
	ids := make([]substance.SubstanceId, 0, len(m.substances))
	for id := range m.substances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IterAll returns every live substance, in stable id order. Part of
// reaction.Snapshot.
func (m *Mixture) IterAll() []substance.Substance {
	ids := m.sortedIds()
	out := make([]substance.Substance, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.substances[id])
	}
	return out
}

// IterSolvents yields every substance whose essence has Solubility =
// Solvent and whose current form equals the solvent's active form,
// including every Solution (which by construction already satisfies
// that). Part of reaction.Snapshot.
func (m *Mixture) IterSolvents() []substance.Substance {
	var out []substance.Substance
	for _, id := range m.sortedIds() {
		s := m.substances[id]
		essence, ok := m.essences[s.Data.EssenceId]
		if !ok || !essence.IsSolvent() {
			continue
		}
		if s.IsSolution() || s.Data.FormId == essence.Solubility.ActiveForm {
			out = append(out, s)
		}
	}
	return out
}

// IterSolutes yields every Free substance whose essence has Solubility =
// Solute and whose current form equals the solute's active form. Solutes
// already dissolved in a Solution are not in this sequence. Part of
// reaction.Snapshot.
func (m *Mixture) IterSolutes() []substance.Substance {
	var out []substance.Substance
	for _, id := range m.sortedIds() {
		s := m.substances[id]
		if !s.IsFree() {
			continue
		}
		essence, ok := m.essences[s.Data.EssenceId]
		if !ok || !essence.IsSolute() {
			continue
		}
		if s.Data.FormId == essence.Solubility.ActiveForm {
			out = append(out, s)
		}
	}
	return out
}

// IterPhaseCandidates yields every Free substance whose essence carries a
// phase graph. Dissolved cargo is never a candidate: a Solution's solutes
// are thermally and chemically inert until precipitated back to Free.
func (m *Mixture) IterPhaseCandidates() []substance.Substance {
	var out []substance.Substance
	for _, id := range m.sortedIds() {
		s := m.substances[id]
		if !s.IsFree() {
			continue
		}
		essence, ok := m.essences[s.Data.EssenceId]
		if !ok || !essence.HasPhaseGraph() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// extractMatching removes and returns the live substance (Free or
// Solution) whose own data matches both (essence, form), if any. Used by
// AddSubstance to find a merge target.
func (m *Mixture) extractMatching(essenceId catalogue.EssenceId, formId catalogue.FormId) (substance.Substance, bool) {
	for _, id := range m.sortedIds() {
		s := m.substances[id]
		if s.Matches(essenceId, formId) {
			delete(m.substances, id)
			return s, true
		}
	}
	return substance.Substance{}, false
}

// AddSubstance merges incoming into the flask: if a substance of identical
// (essence, form) already exists, quantities and solute maps fuse via
// substance.Merge, preserving the existing substance's id. Otherwise
// incoming is inserted as-is (its own id is kept — callers constructing a
// fresh substance via substance.Builder already allocated one from the
// flask's shared allocator). A substance carrying no matter is never kept.
func (m *Mixture) AddSubstance(incoming substance.Substance) {
	if incoming.IsEmpty() {
		return
	}

	existing, found := m.extractMatching(incoming.Data.EssenceId, incoming.Data.FormId)
	if !found {
		m.substances[incoming.Id] = incoming
		return
	}

	merged := substance.Merge(existing, incoming)
	m.substances[merged.Id] = merged
}

// removeSubstance drops a substance from the flask outright (used when a
// pile or solvent is fully depleted).
func (m *Mixture) removeSubstance(id substance.SubstanceId) {
	delete(m.substances, id)
}

// nextSubstanceId allocates a fresh SubstanceId, shared by every mutator
// and builder that mints a brand-new pile.
func (m *Mixture) nextSubstanceId() substance.SubstanceId {
	return m.substanceIds.Next()
}

// Reactions exposes the flask's priority-grouped reaction lookup; further
// reactions can be inserted into it between steps.
func (m *Mixture) Reactions() *reaction.Lookup {
	return m.reactions
}

// Count returns the number of live substances currently held in the flask.
func (m *Mixture) Count() int {
	return len(m.substances)
}

// SubstanceIds exposes the flask's shared SubstanceId allocator so callers
// can build a new substance.Builder (substance.NewBuilder(m.SubstanceIds(),
// essence)) before handing the result to AddSubstance.
func (m *Mixture) SubstanceIds() *catalogue.Allocator[substance.SubstanceId] {
	return m.substanceIds
}
