// Package serialize renders iotas in the two interchange formats
// spec.md §6 names: the game's NBT-string convention (SerializeNBT,
// already implemented per-Iota in internal/iotamodel) and a JSON tree
// encoded with github.com/json-iterator/go for drop-in compatibility
// with encoding/json call sites while getting jsoniter's faster
// marshaling, the way AKJUS-bsc-erigon uses it for its own hot-path
// JSON encoding.
package serialize

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON encodes a single iota using SerializeJSON's tree, matching
// spec.md §6's `{iotaType: <kind>, value: <payload>}` shape.
func JSON(i iotamodel.Iota) ([]byte, error) {
	return json.Marshal(i.SerializeJSON())
}

// JSONList encodes a whole stack or program as a JSON array in order.
func JSONList(items []iotamodel.Iota) ([]byte, error) {
	payload := make([]any, len(items))
	for i, it := range items {
		payload[i] = it.SerializeJSON()
	}
	return json.Marshal(payload)
}

// NBT returns an iota's SerializeNBT() string unmodified; this wrapper
// exists so callers only need to import one package for both formats.
func NBT(i iotamodel.Iota) string {
	return i.SerializeNBT()
}

// NBTList renders a slice of iotas as a single `[<child>, ...]` NBT
// list payload, per spec.md §6.
func NBTList(items []iotamodel.Iota) string {
	out := "["
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it.SerializeNBT()
	}
	return out + "]"
}
