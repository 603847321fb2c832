package substance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrelephant-io/essentia/internal/domain/catalogue"
	"github.com/irrelephant-io/essentia/internal/domain/substance"
	"github.com/irrelephant-io/essentia/pkg/errors"
	"github.com/irrelephant-io/essentia/pkg/physics"
)

const (
	liquidForm = catalogue.FormId(1)
	gasForm    = catalogue.FormId(2)
)

func aqua(t *testing.T) catalogue.Essence {
	t.Helper()
	e, err := catalogue.NewEssenceBuilder(catalogue.NewAllocator[catalogue.EssenceId]()).
		WithName("Aqua").
		WithSolubility(catalogue.NewSolubilityBuilder().IsSolvent().WhenInForm(liquidForm).WithSaturationLimit(physics.NewPerMol(2))).
		Build()
	require.NoError(t, err)
	return e
}

func salt(t *testing.T) catalogue.Essence {
	t.Helper()
	e, err := catalogue.NewEssenceBuilder(catalogue.NewAllocator[catalogue.EssenceId]()).
		WithName("Sal").
		WithSolubility(catalogue.NewSolubilityBuilder().IsSoluble().WhenInForm(liquidForm).WithWeight(physics.NewPerMol(1))).
		Build()
	require.NoError(t, err)
	return e
}

func TestBuilderRequiresForm(t *testing.T) {
	t.Parallel()

	_, err := substance.NewBuilder(catalogue.NewAllocator[substance.SubstanceId](), aqua(t)).Build()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConstructionError))
}

func TestBuilderBuildsFreeByDefault(t *testing.T) {
	t.Parallel()

	s, err := substance.NewBuilder(catalogue.NewAllocator[substance.SubstanceId](), salt(t)).
		InForm(liquidForm).
		WithQuantity(physics.NewQuantity(500)).
		Build()

	require.NoError(t, err)
	assert.True(t, s.IsFree())
	assert.Equal(t, physics.NewQuantity(500), s.Quantity())
}

func TestBuilderSolutionRequiresSolventEssence(t *testing.T) {
	t.Parallel()

	_, err := substance.NewBuilder(catalogue.NewAllocator[substance.SubstanceId](), salt(t)).
		InForm(liquidForm).
		AsSolution(nil).
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConstructionError))
}

func TestBuilderSolutionRequiresMatchingActiveForm(t *testing.T) {
	t.Parallel()

	_, err := substance.NewBuilder(catalogue.NewAllocator[substance.SubstanceId](), aqua(t)).
		InForm(gasForm).
		AsSolution(nil).
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConstructionError))
}

func TestBuilderBuildsSolution(t *testing.T) {
	t.Parallel()

	essence := salt(t)
	solutes := map[catalogue.EssenceId]physics.Quantity{essence.Id: physics.NewQuantity(100)}

	s, err := substance.NewBuilder(catalogue.NewAllocator[substance.SubstanceId](), aqua(t)).
		InForm(liquidForm).
		WithQuantity(physics.NewQuantity(1000)).
		AsSolution(solutes).
		Build()

	require.NoError(t, err)
	assert.True(t, s.IsSolution())
	assert.Equal(t, physics.NewQuantity(100), s.SoluteQuantity(essence.Id))
}

func TestBuilderAutoAllocatesDistinctIds(t *testing.T) {
	t.Parallel()

	allocator := catalogue.NewAllocator[substance.SubstanceId]()
	essence := salt(t)

	first, err := substance.NewBuilder(allocator, essence).InForm(liquidForm).Build()
	require.NoError(t, err)
	second, err := substance.NewBuilder(allocator, essence).InForm(liquidForm).Build()
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
}

func TestDivideSplitsOffPartialQuantity(t *testing.T) {
	t.Parallel()

	essence := salt(t)
	pile := substance.NewFree(1, substance.SubstanceData{EssenceId: essence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(100)})

	consumed, remainder := pile.Divide(physics.NewQuantity(30))

	assert.Equal(t, physics.NewQuantity(30), consumed)
	require.NotNil(t, remainder)
	assert.Equal(t, physics.NewQuantity(70), remainder.Quantity())
	assert.Equal(t, pile.Id, remainder.Id)
}

func TestDivideConsumesWholePileWhenMaxExceedsIt(t *testing.T) {
	t.Parallel()

	essence := salt(t)
	pile := substance.NewFree(1, substance.SubstanceData{EssenceId: essence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(50)})

	consumed, remainder := pile.Divide(physics.NewQuantity(80))

	assert.Equal(t, physics.NewQuantity(50), consumed)
	assert.Nil(t, remainder)
}

func TestMergeFreePlusFreeSumsQuantity(t *testing.T) {
	t.Parallel()

	essence := salt(t)
	existing := substance.NewFree(1, substance.SubstanceData{EssenceId: essence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(100)})
	incoming := substance.NewFree(2, substance.SubstanceData{EssenceId: essence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(50)})

	merged := substance.Merge(existing, incoming)

	assert.True(t, merged.IsFree())
	assert.Equal(t, substance.SubstanceId(1), merged.Id)
	assert.Equal(t, physics.NewQuantity(150), merged.Quantity())
}

func TestMergeSolutionPlusFreeGrowsSolventOnly(t *testing.T) {
	t.Parallel()

	aquaEssence := aqua(t)
	saltEssence := salt(t)
	existing := substance.NewSolution(1,
		substance.SubstanceData{EssenceId: aquaEssence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(1000)},
		map[catalogue.EssenceId]physics.Quantity{saltEssence.Id: physics.NewQuantity(50)},
	)
	incoming := substance.NewFree(2, substance.SubstanceData{EssenceId: aquaEssence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(200)})

	merged := substance.Merge(existing, incoming)

	assert.True(t, merged.IsSolution())
	assert.Equal(t, physics.NewQuantity(1200), merged.Quantity())
	assert.Equal(t, physics.NewQuantity(50), merged.SoluteQuantity(saltEssence.Id))
}

func TestMergeFreePlusSolutionAdoptsIncomingSolutes(t *testing.T) {
	t.Parallel()

	aquaEssence := aqua(t)
	saltEssence := salt(t)
	existing := substance.NewFree(1, substance.SubstanceData{EssenceId: aquaEssence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(500)})
	incoming := substance.NewSolution(2,
		substance.SubstanceData{EssenceId: aquaEssence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(300)},
		map[catalogue.EssenceId]physics.Quantity{saltEssence.Id: physics.NewQuantity(20)},
	)

	merged := substance.Merge(existing, incoming)

	assert.True(t, merged.IsSolution())
	assert.Equal(t, substance.SubstanceId(1), merged.Id)
	assert.Equal(t, physics.NewQuantity(800), merged.Quantity())
	assert.Equal(t, physics.NewQuantity(20), merged.SoluteQuantity(saltEssence.Id))
}

func TestMergeSolutionPlusSolutionMergesSoluteMapsByEssence(t *testing.T) {
	t.Parallel()

	aquaEssence := aqua(t)
	saltEssence := salt(t)
	existing := substance.NewSolution(1,
		substance.SubstanceData{EssenceId: aquaEssence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(600)},
		map[catalogue.EssenceId]physics.Quantity{saltEssence.Id: physics.NewQuantity(10)},
	)
	incoming := substance.NewSolution(2,
		substance.SubstanceData{EssenceId: aquaEssence.Id, FormId: liquidForm, Quantity: physics.NewQuantity(400)},
		map[catalogue.EssenceId]physics.Quantity{saltEssence.Id: physics.NewQuantity(15)},
	)

	merged := substance.Merge(existing, incoming)

	assert.Equal(t, physics.NewQuantity(1000), merged.Quantity())
	assert.Equal(t, physics.NewQuantity(25), merged.SoluteQuantity(saltEssence.Id))
}

func TestIsEmptyReflectsNoneQuantity(t *testing.T) {
	t.Parallel()

	essence := salt(t)
	empty := substance.NewFree(1, substance.SubstanceData{EssenceId: essence.Id, FormId: liquidForm, Quantity: physics.NoQuantity()})

	assert.True(t, empty.IsEmpty())
}
