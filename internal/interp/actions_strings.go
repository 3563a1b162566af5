package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerStringActions(d *Dispatch) {
	d.Register("string_concat", actionStringConcat)
	d.Register("string_length", actionStringLength)
	d.Register("string_to_list", actionStringToList)
}

// actionStringConcat joins the deeper string followed by the
// shallower one, matching concat's list convention.
func actionStringConcat(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	deep, m, ok := st.StringAt(0, 2)
	if !ok {
		return ptr(m)
	}
	top, m, ok := st.StringAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewString(deep.Value + top.Value))
	return nil
}

func actionStringLength(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	s, m, ok := st.StringAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewNumber(float64(len(s.Value))))
	return nil
}

// actionStringToList explodes a string into a List of single-character
// Strings.
func actionStringToList(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	s, m, ok := st.StringAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	runes := []rune(s.Value)
	items := make([]iotamodel.Iota, len(runes))
	for i, r := range runes {
		items[i] = iotamodel.NewString(string(r))
	}
	st.Push(iotamodel.NewList(items...))
	return nil
}
