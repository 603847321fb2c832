package reaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/reaction"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

const (
	aquaEssence = catalogue.EssenceId(1)
	saltEssence = catalogue.EssenceId(2)
	liquidForm  = catalogue.FormId(1)
	solventId   = substance.SubstanceId(7)
)

func TestCombineThermalSumsPower(t *testing.T) {
	t.Parallel()

	combined, err := reaction.Combine(reaction.Thermal(physics.NewPower(10)), reaction.Thermal(physics.NewPower(20)))

	require.NoError(t, err)
	assert.Equal(t, physics.NewPower(30), combined.Power)
}

func TestCombineProduceSumsQuantity(t *testing.T) {
	t.Parallel()

	combined, err := reaction.Combine(
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(5)),
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(3)),
	)

	require.NoError(t, err)
	assert.Equal(t, reaction.KindProduce, combined.Kind)
	assert.Equal(t, physics.NewQuantity(8), combined.Quantity)
}

func TestCombineProduceConsumeYieldsSurplusProduce(t *testing.T) {
	t.Parallel()

	combined, err := reaction.Combine(
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(8)),
		reaction.Consume(aquaEssence, liquidForm, physics.NewQuantity(5)),
	)

	require.NoError(t, err)
	assert.Equal(t, reaction.KindProduce, combined.Kind)
	assert.Equal(t, physics.NewQuantity(3), combined.Quantity)
}

func TestCombineProduceConsumeYieldsSurplusConsume(t *testing.T) {
	t.Parallel()

	combined, err := reaction.Combine(
		reaction.Consume(aquaEssence, liquidForm, physics.NewQuantity(9)),
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(4)),
	)

	require.NoError(t, err)
	assert.Equal(t, reaction.KindConsume, combined.Kind)
	assert.Equal(t, physics.NewQuantity(5), combined.Quantity)
}

func TestCombineProduceConsumeExactlyNeutralizes(t *testing.T) {
	t.Parallel()

	combined, err := reaction.Combine(
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(5)),
		reaction.Consume(aquaEssence, liquidForm, physics.NewQuantity(5)),
	)

	require.NoError(t, err)
	assert.True(t, combined.IsZero())
}

func TestCombineDissolvePrecipitateNetsBySolventKey(t *testing.T) {
	t.Parallel()

	combined, err := reaction.Combine(
		reaction.Dissolve(saltEssence, liquidForm, solventId, physics.NewQuantity(10)),
		reaction.Precipitate(saltEssence, liquidForm, solventId, physics.NewQuantity(4)),
	)

	require.NoError(t, err)
	assert.Equal(t, reaction.KindDissolve, combined.Kind)
	assert.Equal(t, physics.NewQuantity(6), combined.Quantity)
}

func TestCombineRejectsMismatchedProduceKeys(t *testing.T) {
	t.Parallel()

	_, err := reaction.Combine(
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(5)),
		reaction.Produce(saltEssence, liquidForm, physics.NewQuantity(5)),
	)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProductKeyMismatch))
}

func TestCombineRejectsUndefinedPairing(t *testing.T) {
	t.Parallel()

	_, err := reaction.Combine(
		reaction.Thermal(physics.NewPower(1)),
		reaction.Produce(aquaEssence, liquidForm, physics.NewQuantity(1)),
	)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProductKeyMismatch))
}
