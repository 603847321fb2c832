package builtins_test

import (
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// fakeSnapshot is a minimal, map-backed reaction.Snapshot used to exercise
// the built-in reactions without a full mixture.Mixture. Its Iter* methods
// apply the same active-form filtering mixture.Mixture's own
// IterSolvents/IterSolutes/IterPhaseCandidates perform.
type fakeSnapshot struct {
	temperature  physics.Temperature
	heatCapacity physics.HeatCapacity
	deltaTime    physics.TimeSpan
	essences     map[catalogue.EssenceId]catalogue.Essence
	forms        map[catalogue.FormId]catalogue.Form
	substances   map[substance.SubstanceId]substance.Substance
}

func newFakeSnapshot() *fakeSnapshot {
	return &fakeSnapshot{
		temperature: physics.DefaultTemperature(),
		deltaTime:   physics.NewTimeSpan(1),
		essences:    map[catalogue.EssenceId]catalogue.Essence{},
		forms:       map[catalogue.FormId]catalogue.Form{},
		substances:  map[substance.SubstanceId]substance.Substance{},
	}
}

func (s *fakeSnapshot) withEssence(e catalogue.Essence) *fakeSnapshot {
	s.essences[e.Id] = e
	return s
}

func (s *fakeSnapshot) withSubstance(sub substance.Substance) *fakeSnapshot {
	s.substances[sub.Id] = sub
	return s
}

func (s *fakeSnapshot) Temperature() physics.Temperature   { return s.temperature }
func (s *fakeSnapshot) HeatCapacity() physics.HeatCapacity { return s.heatCapacity }
func (s *fakeSnapshot) DeltaTime() physics.TimeSpan        { return s.deltaTime }

func (s *fakeSnapshot) Essence(id catalogue.EssenceId) (catalogue.Essence, bool) {
	e, ok := s.essences[id]
	return e, ok
}

func (s *fakeSnapshot) Form(id catalogue.FormId) (catalogue.Form, bool) {
	f, ok := s.forms[id]
	return f, ok
}

func (s *fakeSnapshot) Substance(id substance.SubstanceId) (substance.Substance, bool) {
	sub, ok := s.substances[id]
	return sub, ok
}

func (s *fakeSnapshot) IterAll() []substance.Substance {
	out := make([]substance.Substance, 0, len(s.substances))
	for _, sub := range s.substances {
		out = append(out, sub)
	}
	return out
}

func (s *fakeSnapshot) IterSolvents() []substance.Substance {
	var out []substance.Substance
	for _, sub := range s.substances {
		essence, ok := s.essences[sub.Data.EssenceId]
		if !ok || !essence.IsSolvent() {
			continue
		}
		if sub.IsSolution() || sub.Data.FormId == essence.Solubility.ActiveForm {
			out = append(out, sub)
		}
	}
	return out
}

func (s *fakeSnapshot) IterSolutes() []substance.Substance {
	var out []substance.Substance
	for _, sub := range s.substances {
		if !sub.IsFree() {
			continue
		}
		essence, ok := s.essences[sub.Data.EssenceId]
		if !ok || !essence.IsSolute() {
			continue
		}
		if sub.Data.FormId == essence.Solubility.ActiveForm {
			out = append(out, sub)
		}
	}
	return out
}

func (s *fakeSnapshot) IterPhaseCandidates() []substance.Substance {
	var out []substance.Substance
	for _, sub := range s.substances {
		if !sub.IsFree() {
			continue
		}
		essence, ok := s.essences[sub.Data.EssenceId]
		if !ok || !essence.HasPhaseGraph() {
			continue
		}
		out = append(out, sub)
	}
	return out
}
