package catalogue

import (
	"sort"

	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// PhaseTransition describes a single phase change: below Threshold the
// matter prefers LeftForm, above it RightForm, costing JoulesPerMol of
// latent heat per mole to cross in either direction.
type PhaseTransition struct {
	Threshold    physics.Temperature
	JoulesPerMol physics.Energy
	LeftForm     FormId
	RightForm    FormId
}

// PhaseGraph is an immutable, chain-connected sequence of PhaseTransitions
// for one essence, indexed by threshold temperature. Its builder enforces
// the chain invariants at insertion time rather than in a separate
// validation pass.
type PhaseGraph struct {
	byThreshold map[physics.Temperature]PhaseTransition
}

// InRange returns every transition whose threshold lies within [a, b]
// (the bounds may be given in either order), sorted by threshold ascending
// when ascending is true and descending otherwise.
func (g PhaseGraph) InRange(a, b physics.Temperature, ascending bool) []PhaseTransition {
	var out []PhaseTransition
	for threshold, t := range g.byThreshold {
		if threshold.InRange(a, b) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Threshold.Less(out[j].Threshold)
		}
		return out[j].Threshold.Less(out[i].Threshold)
	})
	return out
}

// At returns the transition registered at exactly this threshold, if any.
func (g PhaseGraph) At(threshold physics.Temperature) (PhaseTransition, bool) {
	t, ok := g.byThreshold[threshold]
	return t, ok
}

// Len reports the number of transitions in the graph.
func (g PhaseGraph) Len() int {
	return len(g.byThreshold)
}

// PhaseGraphBuilder accumulates PhaseTransitions, validating three
// construction invariants on every Add call:
//
//   - no two transitions share a threshold;
//   - no transition leads into a form at a lower threshold than one already
//     leading out of it, and none leads out of a form at a higher threshold
//     than one already leading into it (no revisit/backtracking);
//   - except for the first, every added transition must be chain-connected
//     to one already present by sharing its left or right form.
type PhaseGraphBuilder struct {
	transitions map[physics.Temperature]PhaseTransition
	err         error
}

// NewPhaseGraphBuilder returns an empty PhaseGraphBuilder.
func NewPhaseGraphBuilder() *PhaseGraphBuilder {
	return &PhaseGraphBuilder{transitions: map[physics.Temperature]PhaseTransition{}}
}

// Add registers one PhaseTransition. Once an invariant violation has been
// observed, the builder latches the error and subsequent Add calls are
// no-ops.
func (b *PhaseGraphBuilder) Add(transition PhaseTransition) *PhaseGraphBuilder {
	if b.err != nil {
		return b
	}

	if _, exists := b.transitions[transition.Threshold]; exists {
		b.err = errors.NewConstructionError("phase graph already has a transition at threshold " + transition.Threshold.String())
		return b
	}

	var leadsIntoRight, leadsOutOfLeft *PhaseTransition
	for _, existing := range b.transitions {
		existing := existing
		if existing.RightForm == transition.LeftForm {
			leadsIntoRight = &existing
		}
		if existing.LeftForm == transition.RightForm {
			leadsOutOfLeft = &existing
		}
	}

	if leadsIntoRight != nil && !leadsIntoRight.Threshold.Less(transition.Threshold) {
		b.err = errors.NewConstructionError("phase transition revisits a form already reached from below")
		return b
	}
	if leadsOutOfLeft != nil && !transition.Threshold.Less(leadsOutOfLeft.Threshold) {
		b.err = errors.NewConstructionError("phase transition backtracks past a form already left from above")
		return b
	}

	if len(b.transitions) > 0 && leadsIntoRight == nil && leadsOutOfLeft == nil {
		b.err = errors.NewConstructionError("phase transition is not chain-connected to any existing transition")
		return b
	}

	b.transitions[transition.Threshold] = transition
	return b
}

// Build finalizes the graph, returning any latched construction error.
func (b *PhaseGraphBuilder) Build() (PhaseGraph, error) {
	if b.err != nil {
		return PhaseGraph{}, b.err
	}
	return PhaseGraph{byThreshold: b.transitions}, nil
}
