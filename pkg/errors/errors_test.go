package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrelephant-io/essentia/pkg/errors"
)

func TestNewFieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"construction error", errors.CodeConstructionError, "essence requires a name"},
		{"unknown identifier", errors.CodeUnknownIdentifier, "reaction referenced unregistered essence 7"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNewNilIsNeverReturned(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeOK, "")
	require.NotNil(t, ae)
}

func TestWrapNilErrReturnsNil(t *testing.T) {
	t.Parallel()

	result := errors.Wrap(nil, errors.CodeInternal, "should not matter")
	assert.Nil(t, result)
}

func TestWrapCauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("phase graph build failed")
	wrapped := errors.Wrap(root, errors.CodeConstructionError, "essence construction failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeConstructionError, wrapped.Code)
	assert.Equal(t, "essence construction failed", wrapped.Message)
	assert.Equal(t, root, wrapped.Cause)
}

func TestWrapUnwrapReturnsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("original")
	ae := errors.Wrap(cause, errors.CodeInternal, "step failed")

	assert.Equal(t, cause, stderrors.Unwrap(ae))
}

func TestWrapPreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.NewConstructionError("duplicate essence id registered")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	require.NotNil(t, outer)
	assert.Equal(t, errors.CodeConstructionError, outer.Code,
		"Wrap with CodeUnknown should inherit the inner AppError's code")
}

func TestWrapOverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.NewConstructionError("duplicate essence id registered")
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected state")

	assert.Equal(t, errors.CodeInternal, outer.Code,
		"explicit non-Unknown code must override the inner code")
}

func TestWrapMultiLevel(t *testing.T) {
	t.Parallel()

	root := stderrors.New("allocator exhausted")
	level1 := errors.Wrap(root, errors.CodeConstructionError, "essence registration failed")
	level2 := errors.Wrap(level1, errors.CodeInternal, "flask construction failed")

	assert.Equal(t, level1, stderrors.Unwrap(level2))
	assert.Equal(t, root, stderrors.Unwrap(level1))
}

func TestErrorFormatWithoutDetail(t *testing.T) {
	t.Parallel()

	ae := errors.NewUnknownIdentifier("essence 7 not registered")
	s := ae.Error()

	assert.Contains(t, s, "UNKNOWN_IDENTIFIER")
	assert.Contains(t, s, "30001")
	assert.Contains(t, s, "essence 7 not registered")
	assert.False(t, strings.Count(s, ":") > 1,
		"Error() without detail should not contain extra colons from detail")
}

func TestErrorFormatWithDetail(t *testing.T) {
	t.Parallel()

	ae := errors.NewProductKeyMismatch("dissolve+precipitate with mismatched keys").
		WithDetail("essence=7, solvent=3")
	s := ae.Error()

	assert.Contains(t, s, "PRODUCT_KEY_MISMATCH")
	assert.Contains(t, s, "30002")
	assert.Contains(t, s, "dissolve+precipitate with mismatched keys")
	assert.Contains(t, s, "essence=7, solvent=3")
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	t.Parallel()

	var err error = errors.New(errors.CodeInternal, "boom")
	assert.NotEmpty(t, err.Error())
}

func TestErrorEmptyMessageDoesNotPanic(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeOK, "")
	assert.NotPanics(t, func() { _ = ae.Error() })
}

func TestWithDetailSetsDetailOnCopy(t *testing.T) {
	t.Parallel()

	original := errors.NewUnknownIdentifier("form 4 not registered")
	detailed := original.WithDetail("id=4")

	assert.Empty(t, original.Detail, "WithDetail must not mutate the original")
	assert.Equal(t, "id=4", detailed.Detail)
	assert.Equal(t, original.Code, detailed.Code)
	assert.Equal(t, original.Message, detailed.Message)
}

func TestWithDetailChainedCallsReplacePriorDetail(t *testing.T) {
	t.Parallel()

	ae := errors.NewConstructionError("solvent declared in an unreachable form").
		WithDetail("essence=aqua").
		WithDetail("essence=aqua, form=gas")

	assert.Equal(t, "essence=aqua, form=gas", ae.Detail)
}

func TestWithDetailNilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
}

func TestWithCauseAttachesCause(t *testing.T) {
	t.Parallel()

	root := stderrors.New("phase graph has a threshold gap")
	ae := errors.NewConstructionError("phase graph invalid").WithCause(root)

	assert.Equal(t, root, ae.Cause)
	assert.Equal(t, root, stderrors.Unwrap(ae))
}

func TestWithCauseDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	original := errors.New(errors.CodeInternal, "failure")
	cause := stderrors.New("cause")
	withCause := original.WithCause(cause)

	assert.Nil(t, original.Cause, "WithCause must not mutate the original")
	assert.Equal(t, cause, withCause.Cause)
}

func TestWithCauseNilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestIsCodeDirectMatch(t *testing.T) {
	t.Parallel()

	ae := errors.NewSolubilityInvariantBroken("solute fell out of a non-solute essence")
	assert.True(t, errors.IsCode(ae, errors.CodeSolubilityInvariantBroken))
}

func TestIsCodeNoMatch(t *testing.T) {
	t.Parallel()

	ae := errors.NewSolubilityInvariantBroken("solute fell out of a non-solute essence")
	assert.False(t, errors.IsCode(ae, errors.CodeInternal))
}

func TestIsCodeNestedChain(t *testing.T) {
	t.Parallel()

	root := errors.NewConstructionError("duplicate form id registered")
	wrapped := errors.Wrap(root, errors.CodeInternal, "flask build failed")

	assert.True(t, errors.IsCode(wrapped, errors.CodeConstructionError),
		"IsCode must find the code anywhere in the error chain")
	assert.True(t, errors.IsCode(wrapped, errors.CodeInternal))
}

func TestIsCodeNilErrorReturnsFalse(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
}

func TestIsCodeStdlibErrorReturnsFalse(t *testing.T) {
	t.Parallel()

	err := stderrors.New("plain error")
	assert.False(t, errors.IsCode(err, errors.CodeInternal))
}

func TestIsCodeThreeLevelChain(t *testing.T) {
	t.Parallel()

	level0 := errors.NewUnknownIdentifier("substance 12 not found")
	level1 := errors.Wrap(level0, errors.CodeInternal, "step apply failed")
	level2 := errors.Wrap(level1, errors.CodeInternal, "simulate failed")

	assert.True(t, errors.IsCode(level2, errors.CodeUnknownIdentifier))
	assert.True(t, errors.IsCode(level2, errors.CodeInternal))
	assert.False(t, errors.IsCode(level2, errors.CodeProductKeyMismatch))
}

func TestGetCodeDirectAppError(t *testing.T) {
	t.Parallel()

	ae := errors.NewConstructionError("form requires a name")
	assert.Equal(t, errors.CodeConstructionError, errors.GetCode(ae))
}

func TestGetCodeNestedAppErrorReturnsOutermostCode(t *testing.T) {
	t.Parallel()

	inner := errors.NewConstructionError("essence requires a name")
	outer := errors.Wrap(inner, errors.CodeInternal, "builder failed")

	assert.Equal(t, errors.CodeInternal, errors.GetCode(outer))
}

func TestGetCodeNilReturnsCodeOK(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
}

func TestGetCodeStdlibErrorReturnsCodeUnknown(t *testing.T) {
	t.Parallel()

	err := stderrors.New("some stdlib error")
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(err))
}

func TestGetCodeFmtWrappedStdlibReturnsCodeUnknown(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("context: %w", stderrors.New("cause"))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(err))
}

func TestConvenienceFactoriesReturnCorrectCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      *errors.AppError
		wantCode errors.ErrorCode
	}{
		{"ConstructionError", errors.NewConstructionError("bad input"), errors.CodeConstructionError},
		{"UnknownIdentifier", errors.NewUnknownIdentifier("missing id"), errors.CodeUnknownIdentifier},
		{"ProductKeyMismatch", errors.NewProductKeyMismatch("mismatched keys"), errors.CodeProductKeyMismatch},
		{"SolubilityInvariantBroken", errors.NewSolubilityInvariantBroken("broken invariant"), errors.CodeSolubilityInvariantBroken},
		{"Internal", errors.Internal("server error"), errors.CodeInternal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.NotNil(t, tc.err)
			assert.Equal(t, tc.wantCode, tc.err.Code)
			assert.NotEmpty(t, tc.err.Message)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestConvenienceFactoriesMessageIsPreserved(t *testing.T) {
	t.Parallel()

	msg := "essence 7 referenced by a reaction is not registered"
	ae := errors.NewUnknownIdentifier(msg)
	assert.Equal(t, msg, ae.Message)
}

func TestStdlibErrorsIsDirectComparison(t *testing.T) {
	t.Parallel()

	sentinel := errors.New(errors.CodeInternal, "forbidden")
	wrapped := fmt.Errorf("handler: %w", sentinel)

	assert.True(t, stderrors.Is(wrapped, sentinel))
}

func TestStdlibErrorsAsExtractsAppError(t *testing.T) {
	t.Parallel()

	original := errors.NewSolubilityInvariantBroken("solute fell out with a non-solute essence")
	wrapped := fmt.Errorf("apply: %w", original)

	var ae *errors.AppError
	require.True(t, stderrors.As(wrapped, &ae),
		"errors.As must be able to extract *AppError from a wrapped chain")
	assert.Equal(t, errors.CodeSolubilityInvariantBroken, ae.Code)
	assert.Equal(t, "solute fell out with a non-solute essence", ae.Message)
}

func TestStdlibErrorsAsDeepChain(t *testing.T) {
	t.Parallel()

	root := errors.NewConstructionError("phase graph has a threshold gap")
	l1 := errors.Wrap(root, errors.CodeInternal, "essence build failed")
	l2 := fmt.Errorf("builder: %w", l1)
	l3 := fmt.Errorf("flask: %w", l2)

	var ae *errors.AppError
	require.True(t, stderrors.As(l3, &ae))
	assert.Equal(t, errors.CodeInternal, ae.Code)
}

func TestStdlibUnwrapChain(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("root cause")
	ae := errors.New(errors.CodeInternal, "step failure").WithCause(cause)

	assert.True(t, stderrors.Is(ae, cause))
}

func TestStdlibErrorsIsFalseForUnrelatedError(t *testing.T) {
	t.Parallel()

	a := errors.New(errors.CodeInternal, "error A")
	b := errors.New(errors.CodeInternal, "error B")

	assert.False(t, stderrors.Is(a, b))
}

func TestFluentChainCombinedUsage(t *testing.T) {
	t.Parallel()

	root := stderrors.New("phase graph has overlapping thresholds")
	ae := errors.NewConstructionError("essence phase graph invalid").
		WithDetail("essence=aqua, threshold=100").
		WithCause(root)

	assert.Equal(t, errors.CodeConstructionError, ae.Code)
	assert.Equal(t, "essence phase graph invalid", ae.Message)
	assert.Contains(t, ae.Detail, "threshold=100")
	assert.Equal(t, root, ae.Cause)

	s := ae.Error()
	assert.Contains(t, s, "CONSTRUCTION_ERROR")
	assert.Contains(t, s, "essence phase graph invalid")
	assert.Contains(t, s, "threshold=100")

	assert.True(t, stderrors.Is(ae, root))
}
