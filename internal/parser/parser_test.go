package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/parser"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(nil)
	require.NoError(t, err)
	return r
}

func TestParseSingleWordAction(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "add", reg, nil)
	require.NoError(t, err)
	require.Len(t, file.Nodes, 1)
	act, ok := file.Nodes[0].(ast.Action)
	require.True(t, ok)
	assert.Equal(t, "add", act.Name)
	assert.Nil(t, act.Value)
}

func TestParseMultiWordActionWithNumberValue(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "Numerical Reflection: 5", reg, nil)
	require.NoError(t, err)
	require.Len(t, file.Nodes, 1)
	act, ok := file.Nodes[0].(ast.Action)
	require.True(t, ok)
	assert.Equal(t, "Numerical Reflection", act.Name)
	require.NotNil(t, act.Value)
	assert.Equal(t, iotamodel.NewNumber(5), act.Value.Iota)
}

func TestParseBookkeeperMaskValue(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "Bookkeeper's Gambit: -v-", reg, nil)
	require.NoError(t, err)
	require.Len(t, file.Nodes, 1)
	act := file.Nodes[0].(ast.Action)
	require.NotNil(t, act.Value)
	assert.True(t, act.Value.IsMask)
	assert.Equal(t, "-v-", act.Value.Mask)
}

func TestParseHexBlock(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "{ add sub }", reg, nil)
	require.NoError(t, err)
	require.Len(t, file.Nodes, 1)
	hex, ok := file.Nodes[0].(ast.Hex)
	require.True(t, ok)
	assert.False(t, hex.External)
	require.Len(t, hex.Nodes, 2)
}

func TestParseStoreOp(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "Store(a)", reg, nil)
	require.NoError(t, err)
	require.Len(t, file.Nodes, 1)
	op, ok := file.Nodes[0].(ast.Op)
	require.True(t, ok)
	assert.Equal(t, ast.OpStore, op.Name)
	require.NotNil(t, op.Arg)
	assert.Equal(t, "a", op.Arg.Var)
}

func TestParseVectorLiteral(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "Vector Reflection: (1, 2, 3)", reg, nil)
	require.NoError(t, err)
	act := file.Nodes[0].(ast.Action)
	require.NotNil(t, act.Value)
	assert.Equal(t, iotamodel.NewVector(1, 2, 3), act.Value.Iota)
}

func TestParseListLiteral(t *testing.T) {
	reg := newRegistry(t)
	file, _, err := parser.Parse("t.hexpat", "String Reflection: [1, 2, 3]", reg, nil)
	require.NoError(t, err)
	act := file.Nodes[0].(ast.Action)
	require.NotNil(t, act.Value)
	list, ok := act.Value.Iota.(iotamodel.List)
	require.True(t, ok)
	assert.Equal(t, []iotamodel.Iota{
		iotamodel.NewNumber(1), iotamodel.NewNumber(2), iotamodel.NewNumber(3),
	}, list.Items)
}

func TestParseMacroDefAndUse(t *testing.T) {
	reg := newRegistry(t)
	file, macros, err := parser.Parse("t.hexpat", "def plus_one { Numerical Reflection: 1 add } plus_one", reg, nil)
	require.NoError(t, err)
	require.Contains(t, macros, "plus_one")
	require.Len(t, file.Nodes, 1)
	act, ok := file.Nodes[0].(ast.Action)
	require.True(t, ok)
	assert.Equal(t, "plus_one", act.Name)
}

func TestUnknownPatternNameFails(t *testing.T) {
	reg := newRegistry(t)
	_, _, err := parser.Parse("t.hexpat", "Not A Real Thing At All Here", reg, nil)
	require.Error(t, err)
}
