package cli

import (
	"fmt"

	"github.com/irrelephant-io/essentia/internal/config"
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/mixture"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/internal/infrastructure/monitoring/logging"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// builtMixture bundles the sealed flask together with the name↔id maps the
// scenario's YAML used, so the report loop can render substances by the
// names an operator wrote rather than their opaque numeric ids.
type builtMixture struct {
	mixture      *mixture.Mixture
	essenceNames map[catalogue.EssenceId]string
	formNames    map[catalogue.FormId]string
}

// buildMixture translates a ScenarioConfig into a sealed *mixture.Mixture:
// forms and essences are registered first (forms first, since essences
// reference them by name for their solvent/solute active form), then the
// starting substances are constructed and added. The flask's step loop
// reports through logger (nil keeps the builder's nop default) and notifies
// observer of reaction firings and applied products (nil disables it).
func buildMixture(scenario *config.ScenarioConfig, logger logging.Logger, observer mixture.StepObserver) (*builtMixture, error) {
	b := mixture.NewBuilder().WithObserver(observer)
	if logger != nil {
		b = b.WithLogger(logger.Named("mixture"))
	}
	if scenario.Engine.StartingTemperatureMilliKelvin != 0 {
		b = b.WithEnvironment(mixture.WithTemperature(physics.NewTemperature(scenario.Engine.StartingTemperatureMilliKelvin)))
	}

	formNames := map[string]catalogue.FormId{}
	formsByID := map[catalogue.FormId]string{}
	for _, fc := range scenario.Forms {
		form, err := catalogue.NewFormBuilder(b.FormIds()).WithName(fc.Name).Build()
		if err != nil {
			return nil, fmt.Errorf("form %q: %w", fc.Name, err)
		}
		formNames[fc.Name] = form.Id
		formsByID[form.Id] = fc.Name
		b = b.WithForm(form)
	}

	essenceNames := map[string]catalogue.EssenceId{}
	essencesByID := map[catalogue.EssenceId]string{}
	for _, ec := range scenario.Essences {
		eb := catalogue.NewEssenceBuilder(b.EssenceIds()).WithName(ec.Name)
		if ec.SpecificHeatCapacity != 0 {
			eb = eb.WithSpecificHeatCapacity(physics.NewSpecificHeatCapacity(ec.SpecificHeatCapacity))
		}

		if ec.SolventForm != "" {
			formId, ok := formNames[ec.SolventForm]
			if !ok {
				return nil, fmt.Errorf("essence %q: unknown solvent form %q", ec.Name, ec.SolventForm)
			}
			solvent := catalogue.NewSolubilityBuilder().IsSolvent().WhenInForm(formId)
			if ec.SolventSaturationLimit != 0 {
				solvent = solvent.WithSaturationLimit(physics.NewPerMol(ec.SolventSaturationLimit))
			}
			eb = eb.WithSolubility(solvent)
		} else if ec.SoluteForm != "" {
			formId, ok := formNames[ec.SoluteForm]
			if !ok {
				return nil, fmt.Errorf("essence %q: unknown solute form %q", ec.Name, ec.SoluteForm)
			}
			solute := catalogue.NewSolubilityBuilder().IsSoluble().WhenInForm(formId)
			if ec.SoluteWeight != 0 {
				solute = solute.WithWeight(physics.NewPerMol(ec.SoluteWeight))
			}
			eb = eb.WithSolubility(solute)
		}

		essence, err := eb.Build()
		if err != nil {
			return nil, fmt.Errorf("essence %q: %w", ec.Name, err)
		}
		essenceNames[ec.Name] = essence.Id
		essencesByID[essence.Id] = ec.Name
		b = b.WithEssence(essence)
	}

	mix, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building mixture: %w", err)
	}

	for _, sc := range scenario.Substances {
		essenceId, ok := essenceNames[sc.Essence]
		if !ok {
			return nil, fmt.Errorf("substance references unknown essence %q", sc.Essence)
		}
		essence, _ := mix.Essence(essenceId)

		formId, ok := formNames[sc.Form]
		if !ok {
			return nil, fmt.Errorf("substance references unknown form %q", sc.Form)
		}

		sb := substance.NewBuilder(mix.SubstanceIds(), essence).
			InForm(formId).
			WithQuantity(physics.NewQuantity(sc.QuantityMmol))

		if len(sc.Solutes) > 0 {
			solutes := map[catalogue.EssenceId]physics.Quantity{}
			for soluteName, mmol := range sc.Solutes {
				soluteId, ok := essenceNames[soluteName]
				if !ok {
					return nil, fmt.Errorf("substance solute references unknown essence %q", soluteName)
				}
				solutes[soluteId] = physics.NewQuantity(uint64(mmol))
			}
			sb = sb.AsSolution(solutes)
		}

		built, err := sb.Build()
		if err != nil {
			return nil, fmt.Errorf("substance of essence %q: %w", sc.Essence, err)
		}
		mix.AddSubstance(built)
	}

	return &builtMixture{mixture: mix, essenceNames: essencesByID, formNames: formsByID}, nil
}

// essenceName resolves an essence id to the display name its scenario gave
// it, falling back to a numeric rendering for ids constructed outside the
// scenario loader (there are none today, but a custom-reaction extension
// could mint substances directly).
func (bm *builtMixture) essenceName(id catalogue.EssenceId) string {
	if name, ok := bm.essenceNames[id]; ok {
		return name
	}
	return fmt.Sprintf("essence#%d", id)
}

func (bm *builtMixture) formName(id catalogue.FormId) string {
	if name, ok := bm.formNames[id]; ok {
		return name
	}
	return fmt.Sprintf("form#%d", id)
}
