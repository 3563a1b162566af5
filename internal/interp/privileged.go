package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

// dispatchPrivileged handles the patterns spec.md §4.4 says the
// evaluator itself must special-case. handled=false means entry is an
// ordinary catalogue action and the caller should fall through to the
// Dispatch table.
func dispatchPrivileged(st *State, reg *registry.Registry, d *Dispatch, entry registry.Entry, pat iotamodel.Pattern) (handled bool, m *mishap.Mishap) {
	switch entry.InternalName {
	case "escape":
		return true, actionEscape(st, pat.Value)
	case "open_paren":
		return true, actionOpenParen(st, reg, pat.Value)
	case "close_paren":
		return true, actionCloseParen(st, reg, pat.Value)
	case "eval":
		return true, actionEval(st, reg, pat.Value)
	case "for_each":
		return true, actionForEach(st, pat.Value)
	case "halt":
		return true, actionHalt(st, pat.Value)
	case "if":
		return true, actionIf(st, pat.Value)
	case "number":
		return true, actionNumber(st, pat.Value)
	case "mask":
		return true, actionMask(st, pat.Value)
	case "read_local":
		return true, actionReadLocal(st, pat.Value)
	case "write_local":
		return true, actionWriteLocal(st, pat.Value)
	case "modify_in_place":
		return true, actionModifyInPlace(st, pat.Value)
	default:
		return false, nil
	}
}

// actionEscape is Consideration: with a value, push it unmodified;
// bare, set consider_next so the next dispatched iota is quoted
// instead.
func actionEscape(st *State, value any) *mishap.Mishap {
	if iota, ok := value.(iotamodel.Iota); ok {
		bufferOrPush(st, iota, false)
		return nil
	}
	st.ConsiderNext = true
	return nil
}

// actionOpenParen is Introspection: while already quoting, it is just
// another buffered iota; otherwise it opens a fresh buffer.
func actionOpenParen(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	if st.Buffer != nil {
		*st.Buffer = append(*st.Buffer, BufferedIota{Iota: iotamodel.NewPattern(iotamodel.OpenParenSignature, "open_paren", nil, location.UnknownLocation), Considered: false})
		return nil
	}
	buf := []BufferedIota{}
	st.Buffer = &buf
	return nil
}

// actionCloseParen is Retrospection: counts unescaped open/close pairs
// in the buffer; balanced means flush it as a List, otherwise append a
// close_paren and keep quoting.
func actionCloseParen(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	if st.Buffer == nil {
		return ptr(mishap.HastyRetrospection())
	}

	net := 0
	for _, b := range *st.Buffer {
		if b.Considered {
			continue
		}
		if p, ok := b.Iota.(iotamodel.Pattern); ok {
			switch p.Signature {
			case iotamodel.OpenParenSignature:
				net++
			case iotamodel.CloseParenSignature:
				net--
			}
		}
	}

	if net <= 0 {
		items := make([]iotamodel.Iota, len(*st.Buffer))
		for i, b := range *st.Buffer {
			items[i] = b.Iota
		}
		st.Buffer = nil
		st.Push(iotamodel.NewList(items...))
		return nil
	}

	*st.Buffer = append(*st.Buffer, BufferedIota{Iota: iotamodel.NewPattern(iotamodel.CloseParenSignature, "close_paren", nil, location.UnknownLocation), Considered: false})
	return nil
}

// actionEval is Hermes' Gambit: dispatches a List as code, re-dispatches
// a bare Pattern, or swaps in a captured Continuation wholesale.
func actionEval(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	if cont, _, cok := st.ContinuationAt(0, 1); cok {
		st.RemoveArgs(1)
		if frames, ok := cont.Frames.([]Frame); ok {
			st.Continuation = frames
		}
		return nil
	}

	list, pat, isList, m, ok := st.ListOrPatternAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)

	if isList {
		pushFrame(st, &FrameEndEval{})
		pushFrame(st, &FrameEvaluate{Queue: append([]iotamodel.Iota(nil), list.Items...)})
		return nil
	}
	pushFrame(st, &FrameEvaluate{Queue: []iotamodel.Iota{pat}})
	return nil
}

// actionForEach is Thoth's Gambit: pop code list then data list, push
// a ForEach frame over them.
func actionForEach(st *State, value any) *mishap.Mishap {
	code, m, ok := st.ListAt(0, 2)
	if !ok {
		return ptr(m)
	}
	data, m, ok := st.ListAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)

	acc := []iotamodel.Iota{}
	pushFrame(st, &FrameForEach{
		Data: append([]iotamodel.Iota(nil), data.Items...),
		Code: append([]iotamodel.Iota(nil), code.Items...),
		Acc:  &acc,
	})
	return nil
}

// actionHalt is Charon's Gambit: call break_out on the top frame (each
// frame's BreakOut pops itself where it has to) until one returns true
// or the continuation empties.
func actionHalt(st *State, value any) *mishap.Mishap {
	for len(st.Continuation) > 0 {
		f := st.Continuation[len(st.Continuation)-1]
		if f.BreakOut(st) {
			break
		}
	}
	return nil
}

// actionIf pops fail, succeed, cond and pushes whichever branch cond
// selects (as a List, generally eval'd by the compiler-emitted code
// that follows).
func actionIf(st *State, value any) *mishap.Mishap {
	cond, m, ok := st.BoolAt(0, 3)
	if !ok {
		return ptr(m)
	}
	succeed, m, ok := st.ListAt(1, 3)
	if !ok {
		return ptr(m)
	}
	fail, m, ok := st.ListAt(2, 3)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(3)

	if cond.Value {
		st.Push(succeed)
	} else {
		st.Push(fail)
	}
	return nil
}

// actionNumber pushes a numeric literal's embedded value.
func actionNumber(st *State, value any) *mishap.Mishap {
	n, ok := value.(iotamodel.Number)
	if !ok {
		return ptr(mishap.ExpectedValue("Numerical Reflection", "Number"))
	}
	st.Push(n)
	return nil
}

// actionMask applies a Bookkeeper's Gambit mask: one char per stack
// slot (mask order left-to-right matches the stack's last len(mask)
// elements from the deepest up to the top), "v" keeps, "-" drops.
func actionMask(st *State, value any) *mishap.Mishap {
	mask, ok := value.(iotamodel.BookkeeperMask)
	if !ok {
		return ptr(mishap.ExpectedValue("Bookkeeper's Gambit", "Mask"))
	}
	s := string(mask)
	if len(st.Stack) < len(s) {
		return ptr(mishap.NotEnoughIotas(len(s)-len(st.Stack), len(st.Stack)))
	}
	start := len(st.Stack) - len(s)
	kept := make([]iotamodel.Iota, 0, len(s))
	for i, c := range s {
		if c == 'v' {
			kept = append(kept, st.Stack[start+i])
		}
	}
	st.Stack = append(st.Stack[:start], kept...)
	return nil
}

// actionReadLocal pushes the current ravenmind value (null if unset).
func actionReadLocal(st *State, value any) *mishap.Mishap {
	if st.Ravenmind == nil {
		st.Push(iotamodel.Null{})
		return nil
	}
	st.Push(st.Ravenmind)
	return nil
}

// actionWriteLocal pops one iota and stores it as ravenmind (a no-op on
// an empty stack, per spec.md's table).
func actionWriteLocal(st *State, value any) *mishap.Mishap {
	if len(st.Stack) == 0 {
		return nil
	}
	top := st.Stack[len(st.Stack)-1]
	st.Stack = st.Stack[:len(st.Stack)-1]
	st.Ravenmind = top
	return nil
}

// actionModifyInPlace is list, index, value -> new list with that slot
// replaced. Used by compileOpStore's read_local/rotate lowering.
func actionModifyInPlace(st *State, value any) *mishap.Mishap {
	list, m, ok := st.ListAt(0, 3)
	if !ok {
		return ptr(m)
	}
	index, m, ok := st.IntegerAt(1, 3)
	if !ok {
		return ptr(m)
	}
	newValue, m, ok := st.IotaAt(2, 3)
	if !ok {
		return ptr(m)
	}
	if index < 0 || index >= len(list.Items) {
		return ptr(mishap.NoIotaAtIndex(index))
	}
	st.RemoveArgs(3)
	st.Push(list.WithReplaced(index, newValue))
	return nil
}

func ptr(m mishap.Mishap) *mishap.Mishap { return &m }
