package mishap

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
)

// Salvage applies the deterministic stack recovery spec.md §4.7 defines
// for a handful of mishap kinds, given the stack as it stood right
// before the failing dispatch. It returns the salvaged stack and true,
// or (nil, false) when m's kind has no defined salvage (fatal).
//
// The core never calls this itself (spec.md: "the core propagates the
// mishap out... the salvage table is kept as data so a host can invoke
// it explicitly") — cmd/hexagon's forgiving-mode flag is the caller.
func Salvage(m Mishap, stack []iotamodel.Iota) ([]iotamodel.Iota, bool) {
	switch m.Kind {
	case KindNotEnoughIotas:
		out := append([]iotamodel.Iota(nil), stack...)
		for i := 0; i < m.Need; i++ {
			out = append(out, iotamodel.Garbage{})
		}
		return out, true

	case KindIncorrectIota:
		if m.Index < 0 || m.Index >= len(stack) {
			return nil, false
		}
		out := append([]iotamodel.Iota(nil), stack...)
		out[m.Index] = iotamodel.Garbage{}
		return out, true

	case KindHastyRetrospection:
		out := append([]iotamodel.Iota(nil), stack...)
		out = append(out, iotamodel.NewPattern(iotamodel.CloseParenSignature, "close_paren", nil, location.UnknownLocation))
		return out, true

	case KindInvalidPattern:
		out := append([]iotamodel.Iota(nil), stack...)
		out = append(out, iotamodel.Garbage{})
		return out, true

	default:
		return nil, false
	}
}
