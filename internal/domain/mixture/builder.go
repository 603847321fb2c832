package mixture

import (
	"github.com/irrelephant-io/essentia/internal/domain/builtins"
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/logging"
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Builder is the flask construction surface: a starting Environment, any
// number of Essence/Form/Reaction registrations, producing a sealed
// *Mixture. Registrations follow the same latching-error convention as
// catalogue's builders: a registration rejected at call time (duplicate
// id) latches an error that Build reports, and every later builder call
// becomes a no-op once latched.
type Builder struct {
	environment Environment
	logger      logging.Logger
	observer    StepObserver

	essenceIds    *catalogue.Allocator[catalogue.EssenceId]
	formIds       *catalogue.Allocator[catalogue.FormId]
	substanceIds  *catalogue.Allocator[substance.SubstanceId]
	essences      map[catalogue.EssenceId]catalogue.Essence
	forms         map[catalogue.FormId]catalogue.Form
	reactions     *reaction.Lookup
	registeredIds map[catalogue.EssenceId]bool

	err error
}

// NewBuilder returns a Builder seeded with the default Environment
// (room temperature, clock zero) and the three built-in reactions
// preregistered (PhaseTransition, Dissolution, Precipitation).
func NewBuilder() *Builder {
	b := &Builder{
		environment:   NewEnvironment(),
		logger:        logging.NewNopLogger(),
		essenceIds:    catalogue.NewAllocator[catalogue.EssenceId](),
		formIds:       catalogue.NewAllocator[catalogue.FormId](),
		substanceIds:  catalogue.NewAllocator[substance.SubstanceId](),
		essences:      map[catalogue.EssenceId]catalogue.Essence{},
		forms:         map[catalogue.FormId]catalogue.Form{},
		reactions:     reaction.NewLookup(),
		registeredIds: map[catalogue.EssenceId]bool{},
	}
	b.reactions.Insert(builtins.NewDissolution())
	b.reactions.Insert(builtins.NewPrecipitation())
	b.reactions.Insert(builtins.PhaseTransition{})
	return b
}

// EssenceIds exposes the builder's essence id allocator so callers can
// build an EssenceBuilder (catalogue.NewEssenceBuilder(b.EssenceIds()))
// before registering it.
func (b *Builder) EssenceIds() *catalogue.Allocator[catalogue.EssenceId] {
	return b.essenceIds
}

// FormIds exposes the builder's form id allocator so callers can build a
// FormBuilder before registering it.
func (b *Builder) FormIds() *catalogue.Allocator[catalogue.FormId] {
	return b.formIds
}

// WithEnvironment overrides the starting Environment (temperature and
// clock). Call before Build.
func (b *Builder) WithEnvironment(environment Environment) *Builder {
	if b.err != nil {
		return b
	}
	b.environment = environment
	return b
}

// WithLogger attaches a Logger the step loop reports through: per-reaction
// and per-step fused product counts at Debug, equilibrium reached and
// phase-transition activity at Info. Defaults to the nop logger, so library
// callers that inject nothing pay nothing.
func (b *Builder) WithLogger(logger logging.Logger) *Builder {
	if b.err != nil || logger == nil {
		return b
	}
	b.logger = logger
	return b
}

// WithObserver attaches a StepObserver the step loop notifies of every
// reaction firing and every fused product applied. A nil observer (the
// default) disables the callbacks.
func (b *Builder) WithObserver(observer StepObserver) *Builder {
	if b.err != nil {
		return b
	}
	b.observer = observer
	return b
}

// WithEssence registers one already-built Essence. A duplicate id latches
// a ConstructionError; once latched, every subsequent builder call is a
// no-op, mirroring catalogue's builders' fail-fast convention.
func (b *Builder) WithEssence(essence catalogue.Essence) *Builder {
	if b.err != nil {
		return b
	}
	if b.registeredIds[essence.Id] {
		b.err = errors.NewConstructionError("duplicate essence id registered")
		return b
	}
	b.registeredIds[essence.Id] = true
	b.essences[essence.Id] = essence
	return b
}

// WithForm registers one already-built Form.
func (b *Builder) WithForm(form catalogue.Form) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.forms[form.Id]; exists {
		b.err = errors.NewConstructionError("duplicate form id registered")
		return b
	}
	b.forms[form.Id] = form
	return b
}

// WithReaction registers one custom Reaction alongside the preregistered
// built-ins. Reactions sharing a priority with another run in insertion
// order within that priority group.
func (b *Builder) WithReaction(r reaction.Reaction) *Builder {
	if b.err != nil {
		return b
	}
	b.reactions.Insert(r)
	return b
}

// Build seals the flask, returning any latched error from an earlier With*
// call. A reaction referencing an essence/form/substance id absent from
// the flask is not a construction-time failure: it surfaces as
// UnknownIdentifier the first time a step actually tries to resolve it.
func (b *Builder) Build() (*Mixture, error) {
	if b.err != nil {
		return nil, b.err
	}

	return &Mixture{
		environment:     b.environment,
		deltaTime:       physics.TimeSpan{},
		heatCapacity:    physics.HeatCapacity{},
		isInEquilibrium: true,
		logger:          b.logger,
		observer:        b.observer,
		essences:        b.essences,
		forms:           b.forms,
		reactions:       b.reactions,
		substances:      map[substance.SubstanceId]substance.Substance{},
		substanceIds:    b.substanceIds,
	}, nil
}
