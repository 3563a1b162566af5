package mishap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
)

func TestSalvageNotEnoughIotasPadsWithGarbage(t *testing.T) {
	stack := []iotamodel.Iota{iotamodel.NewNumber(1)}
	m := mishap.NotEnoughIotas(2, 1)

	out, ok := mishap.Salvage(m, stack)
	require.True(t, ok)
	require.Len(t, out, 3)
	assert.Equal(t, iotamodel.NewNumber(1), out[0])
	assert.Equal(t, iotamodel.Garbage{}, out[1])
	assert.Equal(t, iotamodel.Garbage{}, out[2])
}

func TestSalvageIncorrectIotaReplacesSlot(t *testing.T) {
	stack := []iotamodel.Iota{iotamodel.NewNumber(1), iotamodel.NewString("oops")}
	m := mishap.IncorrectIota(1, "Number", iotamodel.NewString("oops"))

	out, ok := mishap.Salvage(m, stack)
	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, iotamodel.NewNumber(1), out[0])
	assert.Equal(t, iotamodel.Garbage{}, out[1])
}

func TestSalvageHastyRetrospectionAppendsCloseParen(t *testing.T) {
	m := mishap.HastyRetrospection()
	out, ok := mishap.Salvage(m, nil)
	require.True(t, ok)
	require.Len(t, out, 1)
	pat, ok := out[0].(iotamodel.Pattern)
	require.True(t, ok)
	assert.Equal(t, iotamodel.CloseParenSignature, pat.Signature)
}

func TestSalvageInvalidPatternAppendsGarbage(t *testing.T) {
	m := mishap.InvalidPattern()
	out, ok := mishap.Salvage(m, []iotamodel.Iota{iotamodel.NewBool(true)})
	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, iotamodel.Garbage{}, out[1])
}

func TestSalvageHasNoDefinedCaseForMathematicalError(t *testing.T) {
	m := mishap.MathematicalError()
	out, ok := mishap.Salvage(m, []iotamodel.Iota{iotamodel.NewNumber(1)})
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestSalvageIncorrectIotaOutOfRangeIsFatal(t *testing.T) {
	m := mishap.IncorrectIota(5, "Number", iotamodel.NewNumber(1))
	out, ok := mishap.Salvage(m, []iotamodel.Iota{iotamodel.NewNumber(1)})
	assert.False(t, ok)
	assert.Nil(t, out)
}
