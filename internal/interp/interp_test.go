package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/interp"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(nil)
	require.NoError(t, err)
	return r
}

func pattern(t *testing.T, reg *registry.Registry, internalName string) iotamodel.Pattern {
	t.Helper()
	entry, ok := reg.Find(internalName)
	require.True(t, ok, "unknown pattern %q", internalName)
	return iotamodel.NewPattern(entry.Signature, entry.InternalName, nil, location.UnknownLocation)
}

func run(t *testing.T, program []iotamodel.Iota, reg *registry.Registry) (*interp.State, *mishap.Located) {
	t.Helper()
	st := interp.NewState(nil, nil, nil)
	return interp.Interpret(program, st, reg, interp.NewDispatch())
}

func TestAddSumsTwoNumbers(t *testing.T) {
	reg := newRegistry(t)
	program := []iotamodel.Iota{
		iotamodel.NewNumber(2),
		iotamodel.NewNumber(3),
		pattern(t, reg, "add"),
	}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	require.Len(t, st.Stack, 1)
	assert.Equal(t, iotamodel.NewNumber(5), st.Stack[0])
}

func TestIfPushesTrueBranch(t *testing.T) {
	reg := newRegistry(t)
	fail := iotamodel.NewList(iotamodel.NewString("fail"))
	succeed := iotamodel.NewList(iotamodel.NewString("succeed"))
	program := []iotamodel.Iota{
		iotamodel.NewBool(true),
		succeed,
		fail,
		pattern(t, reg, "if"),
	}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	require.Len(t, st.Stack, 1)
	assert.Equal(t, succeed, st.Stack[0])
}

func TestQuotedListRoundTripsThroughEval(t *testing.T) {
	reg := newRegistry(t)
	program := []iotamodel.Iota{
		pattern(t, reg, "open_paren"),
		iotamodel.NewNumber(7),
		pattern(t, reg, "close_paren"),
		pattern(t, reg, "eval"),
	}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	require.Len(t, st.Stack, 1)
	assert.Equal(t, iotamodel.NewNumber(7), st.Stack[0])
}

func TestEvalOfBareList(t *testing.T) {
	reg := newRegistry(t)
	code := iotamodel.NewList(iotamodel.NewNumber(4), iotamodel.NewNumber(5), pattern(t, reg, "add"))
	program := []iotamodel.Iota{code, pattern(t, reg, "eval")}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	require.Len(t, st.Stack, 1)
	assert.Equal(t, iotamodel.NewNumber(9), st.Stack[0])
}

// Thoth's Gambit runs code over each data element, restoring the base
// stack between iterations, and collects one result per element.
func TestForEachLinearity(t *testing.T) {
	reg := newRegistry(t)
	code := iotamodel.NewList(iotamodel.NewNumber(1), pattern(t, reg, "add"))
	data := iotamodel.NewList(iotamodel.NewNumber(10), iotamodel.NewNumber(20), iotamodel.NewNumber(30))
	program := []iotamodel.Iota{code, data, pattern(t, reg, "for_each")}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	require.Len(t, st.Stack, 1)
	result, ok := st.Stack[0].(iotamodel.List)
	require.True(t, ok)
	assert.Equal(t, []iotamodel.Iota{
		iotamodel.NewNumber(11),
		iotamodel.NewNumber(21),
		iotamodel.NewNumber(31),
	}, result.Items)
}

func TestDuplicateCopiesTop(t *testing.T) {
	reg := newRegistry(t)
	program := []iotamodel.Iota{
		iotamodel.NewNumber(9),
		pattern(t, reg, "duplicate"),
	}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	require.Len(t, st.Stack, 2)
	assert.Equal(t, iotamodel.NewNumber(9), st.Stack[0])
	assert.Equal(t, iotamodel.NewNumber(9), st.Stack[1])
}

func TestUnderflowMishapAndSalvage(t *testing.T) {
	reg := newRegistry(t)
	program := []iotamodel.Iota{pattern(t, reg, "add")}

	st, err := run(t, program, reg)
	require.NotNil(t, err)
	assert.Equal(t, mishap.KindNotEnoughIotas, err.Mishap.Kind)

	salvaged, ok := mishap.Salvage(err.Mishap, st.Stack)
	require.True(t, ok)
	assert.Len(t, salvaged, err.Mishap.Need)
	for _, i := range salvaged {
		assert.Equal(t, iotamodel.Garbage{}, i)
	}
}

// Charon's Gambit unwinds only up to the EndEval frame of the enclosing
// eval: the iota right before halt survives, the rest of the evaluated
// list is skipped, and evaluation resumes after the eval.
func TestHaltStopsAtEnclosingEval(t *testing.T) {
	reg := newRegistry(t)
	code := iotamodel.NewList(
		iotamodel.NewNumber(1),
		pattern(t, reg, "halt"),
		iotamodel.NewNumber(2), // unreachable: halt unwinds past it
	)
	program := []iotamodel.Iota{code, pattern(t, reg, "eval"), iotamodel.NewNumber(3)}

	st, err := run(t, program, reg)
	require.Nil(t, err)
	assert.Equal(t, []iotamodel.Iota{iotamodel.NewNumber(1), iotamodel.NewNumber(3)}, st.Stack)
}
