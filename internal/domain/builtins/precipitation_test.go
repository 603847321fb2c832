package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrelephant-io/essentia/internal/domain/builtins"
	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

// Precipitation's tests mirror Dissolution's own scenarios so the two
// built-ins are checked against the same saturation curve from opposite
// sides.

func TestPrecipitationSkipsFreeSolvents(t *testing.T) {
	t.Parallel()

	snapshot := newFakeSnapshot().
		withEssence(waterOf(t)).
		withSubstance(freePile(1, waterEssence, liquidForm, physics.DefaultQuantity()))

	products := builtins.NewPrecipitation().React(reaction.NewContext(snapshot))

	assert.Empty(t, products)
}

func TestPrecipitationSplitsProportionallyByWeight(t *testing.T) {
	t.Parallel()

	solvent := substance.NewSolution(1,
		substance.SubstanceData{EssenceId: waterEssence, FormId: liquidForm, Quantity: physics.NewQuantity(1000)},
		map[catalogue.EssenceId]physics.Quantity{
			saltEssence:  physics.NewQuantity(400),
			sugarEssence: physics.NewQuantity(300),
		},
	)

	snapshot := newFakeSnapshot().
		withEssence(waterOf(t)).
		withEssence(saltOf(t)).
		withEssence(sugarOf(t)).
		withSubstance(solvent)

	products := builtins.NewPrecipitation().React(reaction.NewContext(snapshot))

	require.Len(t, products, 2)

	var saltQty, sugarQty physics.Quantity
	for _, p := range products {
		assert.Equal(t, reaction.KindPrecipitate, p.Kind)
		assert.Equal(t, solvent.Id, p.SolventId)
		switch p.EssenceId {
		case saltEssence:
			saltQty = p.Quantity
		case sugarEssence:
			sugarQty = p.Quantity
		}
	}

	require.False(t, saltQty.IsNone())
	require.False(t, sugarQty.IsNone())

	// weight(salt)=400, weight(sugar)=600 of a total of 1000: sugar's share
	// of the precipitated mass should be 1.5x salt's.
	ratio := float64(sugarQty.MilliMoles) / float64(saltQty.MilliMoles)
	assert.InDelta(t, 1.5, ratio, 0.1)
}

func TestPrecipitationEfficiencyRisesAboveEquilibrium(t *testing.T) {
	t.Parallel()

	lowSaturation := substance.NewSolution(1,
		substance.SubstanceData{EssenceId: waterEssence, FormId: liquidForm, Quantity: physics.NewQuantity(1000)},
		map[catalogue.EssenceId]physics.Quantity{saltEssence: physics.NewQuantity(100)},
	)
	highSaturation := substance.NewSolution(1,
		substance.SubstanceData{EssenceId: waterEssence, FormId: liquidForm, Quantity: physics.NewQuantity(1000)},
		map[catalogue.EssenceId]physics.Quantity{saltEssence: physics.NewQuantity(1500)},
	)

	lowSnapshot := newFakeSnapshot().withEssence(waterOf(t)).withEssence(saltOf(t)).withSubstance(lowSaturation)
	highSnapshot := newFakeSnapshot().withEssence(waterOf(t)).withEssence(saltOf(t)).withSubstance(highSaturation)

	lowProducts := builtins.NewPrecipitation().React(reaction.NewContext(lowSnapshot))
	highProducts := builtins.NewPrecipitation().React(reaction.NewContext(highSnapshot))

	require.Len(t, lowProducts, 1)
	require.Len(t, highProducts, 1)

	assert.Less(t, lowProducts[0].Quantity.MilliMoles, highProducts[0].Quantity.MilliMoles)
}
