package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/serialize"
)

func TestJSONRoundTripsNumber(t *testing.T) {
	data, err := serialize.JSON(iotamodel.NewNumber(3.5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"iotaType":"number","value":3.5}`, string(data))
}

func TestJSONListEncodesInOrder(t *testing.T) {
	data, err := serialize.JSONList([]iotamodel.Iota{iotamodel.NewNumber(1), iotamodel.NewBool(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"iotaType":"number","value":1},{"iotaType":"boolean","value":true}]`, string(data))
}

func TestNBTMatchesPerIotaSerialization(t *testing.T) {
	n := iotamodel.NewNumber(2)
	assert.Equal(t, n.SerializeNBT(), serialize.NBT(n))
}

func TestNBTListWrapsChildren(t *testing.T) {
	out := serialize.NBTList([]iotamodel.Iota{iotamodel.NewNumber(1), iotamodel.NewNumber(2)})
	assert.Equal(t, "["+iotamodel.NewNumber(1).SerializeNBT()+", "+iotamodel.NewNumber(2).SerializeNBT()+"]", out)
}
