package iotamodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
)

func TestToleranceReflexivity(t *testing.T) {
	values := []iotamodel.Iota{
		iotamodel.NewNumber(3.5),
		iotamodel.NewBool(true),
		iotamodel.Null{},
		iotamodel.Garbage{},
		iotamodel.NewVector(1, 2, 3),
		iotamodel.NewString("hex"),
		iotamodel.NewList(iotamodel.NewNumber(1), iotamodel.NewNumber(2)),
		iotamodel.NewMatrix(2, 2, []float64{1, 2, 3, 4}),
		iotamodel.NewEntity("gunk"),
	}
	for _, v := range values {
		assert.True(t, v.Tolerates(v), "%s should tolerate itself", v.TypeName())
	}
}

func TestNumberTolerance(t *testing.T) {
	a := iotamodel.NewNumber(1.0)
	b := iotamodel.NewNumber(1.00001)
	c := iotamodel.NewNumber(1.1)
	assert.True(t, a.Tolerates(b))
	assert.False(t, a.Tolerates(c))
}

func TestVectorTolerancesByNormOnly(t *testing.T) {
	a := iotamodel.NewVector(3, 0, 0)
	b := iotamodel.NewVector(0, 3, 0)
	require.True(t, a.Tolerates(b), "equal-length vectors in different directions are tolerant by design")
}

func TestListTolerancePointwise(t *testing.T) {
	a := iotamodel.NewList(iotamodel.NewNumber(1), iotamodel.NewNumber(2))
	b := iotamodel.NewList(iotamodel.NewNumber(1), iotamodel.NewNumber(2.00001))
	c := iotamodel.NewList(iotamodel.NewNumber(1))
	assert.True(t, a.Tolerates(b))
	assert.False(t, a.Tolerates(c))
}

func TestPatternToleranceIgnoresValue(t *testing.T) {
	sig, _ := iotamodel.ParseSignature("waaw")
	p1 := iotamodel.NewPattern(sig, "add", iotamodel.NewNumber(1), location.UnknownLocation)
	p2 := iotamodel.NewPattern(sig, "add", iotamodel.NewNumber(2), location.UnknownLocation)
	assert.True(t, p1.Tolerates(p2))
}

func TestContinuationNeverTolerates(t *testing.T) {
	c1 := iotamodel.NewContinuation([]int{1, 2, 3})
	c2 := iotamodel.NewContinuation([]int{1, 2, 3})
	assert.False(t, c1.Tolerates(c2))
	assert.False(t, c1.Tolerates(c1))
}

func TestListAppendIsImmutable(t *testing.T) {
	base := iotamodel.NewList(iotamodel.NewNumber(1))
	next := base.Append(iotamodel.NewNumber(2))
	assert.Len(t, base.Items, 1)
	assert.Len(t, next.Items, 2)
}
