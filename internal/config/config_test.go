package config_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/config"
	"github.com/hexcompiler/hexagon/internal/interp"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
)

func literalNumber(s string) (iotamodel.Iota, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return iotamodel.NewNumber(f), nil
}

func TestLoadGreatSpellOverride(t *testing.T) {
	doc := []byte(`
[Great_Spells]
add = "wqaw"
`)
	cfg, err := config.Load(doc, nil, literalNumber)
	require.NoError(t, err)
	sig, ok := cfg.GreatSpells["add"]
	require.True(t, ok)
	assert.Equal(t, iotamodel.Signature("wqaw"), sig)
}

func TestLoadGreatSpellInvalidSignatureFails(t *testing.T) {
	doc := []byte(`
[Great_Spells]
add = "xyz"
`)
	_, err := config.Load(doc, nil, literalNumber)
	require.Error(t, err)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, config.KindBadSignature, cfgErr.Kind)
}

func TestLoadLibrary(t *testing.T) {
	doc := []byte(`
[[libraries]]
location = [1, 2, 3]
waaw = "5"
`)
	cfg, err := config.Load(doc, nil, literalNumber)
	require.NoError(t, err)
	lib, ok := cfg.Libraries[interp.LibraryKey{X: 1, Y: 2, Z: 3}]
	require.True(t, ok)
	sig, _ := iotamodel.ParseSignature("waaw")
	assert.Equal(t, iotamodel.NewNumber(5), lib[sig])
}

func TestLoadEntity(t *testing.T) {
	doc := []byte(`
[[entities]]
name = "Steve"
type = "Player"
item = "Focus"
iota = "42"
`)
	cfg, err := config.Load(doc, nil, literalNumber)
	require.NoError(t, err)
	ent, ok := cfg.Entities["Steve"]
	require.True(t, ok)
	assert.Equal(t, interp.EntityPlayer, ent.Type)
	assert.Equal(t, interp.HoldingFocus, ent.Holding.Kind)
	assert.Equal(t, iotamodel.NewNumber(42), ent.Holding.Item)
}

func TestLoadEntityUnknownTypeFails(t *testing.T) {
	doc := []byte(`
[[entities]]
name = "Mystery"
type = "Alien"
`)
	_, err := config.Load(doc, nil, literalNumber)
	require.Error(t, err)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, config.KindBadEntityType, cfgErr.Kind)
}
