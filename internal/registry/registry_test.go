package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func TestConstructionSucceeds(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, r.All())
}

func TestFindByEachKey(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)

	byDisplay, ok := r.Find("Additive Distillation")
	require.True(t, ok)
	assert.Equal(t, registry.ActionID("add"), byDisplay.Action)

	byInternal, ok := r.Find("add")
	require.True(t, ok)
	assert.Equal(t, byDisplay, byInternal)

	bySignature, ok := r.Find("waaw")
	require.True(t, ok)
	assert.Equal(t, byDisplay, bySignature)
}

func TestUnknownQueryMisses(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)
	_, ok := r.Find("not a real pattern")
	assert.False(t, ok)
}

func TestGreatSpellOverrideRemapsSignature(t *testing.T) {
	sig, ok := iotamodel.ParseSignature("wwwww")
	require.True(t, ok)
	r, err := registry.New(map[string]iotamodel.Signature{"add": sig})
	require.NoError(t, err)

	e, ok := r.Find("wwwww")
	require.True(t, ok)
	assert.Equal(t, "add", e.InternalName)

	_, ok = r.Find("waaw")
	assert.False(t, ok, "old signature should no longer resolve once overridden")
}

func TestOverrideOfUnknownNameFails(t *testing.T) {
	sig, _ := iotamodel.ParseSignature("wwwww")
	_, err := registry.New(map[string]iotamodel.Signature{"not_a_pattern": sig})
	assert.Error(t, err)
}
