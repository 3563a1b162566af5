package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

// ActionFunc is one catalogue action: given the current state and the
// Pattern's embedded value (nil for value-less patterns), mutate state
// and return a Mishap on failure, or nil on success. The dispatcher
// wraps a non-nil Mishap with the firing pattern's Location.
type ActionFunc func(st *State, reg *registry.Registry, value any) *mishap.Mishap

// Dispatch is the interpreter's action table, keyed by the same
// registry.ActionID tag an Entry carries. This is the "enum-tag
// dispatched table" spec.md §9 asks for in place of the source
// project's closures-capturing-the-registry design.
type Dispatch struct {
	actions map[registry.ActionID]ActionFunc
}

func (d *Dispatch) Register(id registry.ActionID, fn ActionFunc) {
	d.actions[id] = fn
}

func (d *Dispatch) lookup(id registry.ActionID) (ActionFunc, bool) {
	fn, ok := d.actions[id]
	return fn, ok
}

// NewDispatch builds the full action table (math, lists, stack,
// constructors, read/write, matrix, string, misc and constant actions;
// see actions_*.go). The twelve privileged patterns in privileged.go
// are handled directly by evalOne/dispatchEntry and never registered
// here.
func NewDispatch() *Dispatch {
	d := &Dispatch{actions: make(map[registry.ActionID]ActionFunc)}
	registerMathActions(d)
	registerListActions(d)
	registerStackActions(d)
	registerConstructorActions(d)
	registerReadWriteActions(d)
	registerMatrixActions(d)
	registerStringActions(d)
	registerMiscActions(d)
	registerConstantActions(d)
	return d
}

// isBracketOrEscape reports whether sig names one of the three
// patterns whose dispatch is never suppressed by quoting on its own
// (spec.md §4.4: "not an unescaped Introspection/Retrospection/escape").
func isBracketOrEscape(reg *registry.Registry, sig iotamodel.Signature) bool {
	entry, ok := reg.FindBySignature(sig)
	if !ok {
		return false
	}
	switch entry.InternalName {
	case "open_paren", "close_paren", "escape":
		return true
	}
	return false
}

// resolveEntry looks up the catalogue entry a compiled Pattern
// dispatches to. A Pattern carrying an InternalName (set for the
// value-bearing entries, whose Signature is "") is resolved that way;
// every other pattern resolves by its (unique, non-empty) Signature.
func resolveEntry(reg *registry.Registry, pat iotamodel.Pattern) (registry.Entry, bool) {
	if pat.InternalName != "" {
		return reg.FindByInternalName(pat.InternalName)
	}
	return reg.FindBySignature(pat.Signature)
}

func isLiteralValuePattern(internalName string) bool {
	switch internalName {
	case "number", "vector", "string_literal", "entity":
		return true
	}
	return false
}

// bufferOrPush records iota as quoted: into the buffer if one is open,
// else straight onto the stack (spec.md §4.6).
func bufferOrPush(st *State, iota iotamodel.Iota, considered bool) {
	if st.Buffer != nil {
		*st.Buffer = append(*st.Buffer, BufferedIota{Iota: iota, Considered: considered})
		return
	}
	st.Push(iota)
}

// evalOne dispatches a single iota popped off a FrameEvaluate's queue
// (spec.md §4.4).
func evalOne(st *State, reg *registry.Registry, d *Dispatch, iota iotamodel.Iota) *mishap.Located {
	if st.ConsiderNext {
		st.ConsiderNext = false
		bufferOrPush(st, iota, true)
		return nil
	}

	pat, isPattern := iota.(iotamodel.Pattern)
	if !isPattern {
		if st.Buffer != nil {
			*st.Buffer = append(*st.Buffer, BufferedIota{Iota: iota, Considered: false})
			return nil
		}
		st.Push(iota)
		return nil
	}

	entry, found := resolveEntry(reg, pat)

	if found && isBracketOrEscape(reg, pat.Signature) {
		return dispatchEntry(st, reg, d, entry, pat)
	}

	if st.Buffer != nil {
		if found && isLiteralValuePattern(entry.InternalName) {
			if v, ok := pat.Value.(iotamodel.Iota); ok {
				*st.Buffer = append(*st.Buffer, BufferedIota{Iota: v, Considered: false})
				return nil
			}
		}
		*st.Buffer = append(*st.Buffer, BufferedIota{Iota: pat, Considered: false})
		return nil
	}

	if !found {
		return mishap.InvalidPattern().At(pat.Location)
	}
	return dispatchEntry(st, reg, d, entry, pat)
}

// dispatchEntry runs entry's action: the twelve privileged patterns are
// handled inline (privileged.go); everything else goes through the
// Dispatch table.
func dispatchEntry(st *State, reg *registry.Registry, d *Dispatch, entry registry.Entry, pat iotamodel.Pattern) *mishap.Located {
	if handled, m := dispatchPrivileged(st, reg, d, entry, pat); handled {
		if m == nil {
			return nil
		}
		return m.At(pat.Location)
	}

	fn, ok := d.lookup(entry.Action)
	if !ok {
		return mishap.InvalidPattern().At(pat.Location)
	}
	if m := fn(st, reg, pat.Value); m != nil {
		return m.At(pat.Location)
	}
	return nil
}

// Interpret drives the program to completion (spec.md §4.3): it seeds
// an initial Evaluate frame over program and drains the continuation
// stack until empty or a mishap fires.
func Interpret(program []iotamodel.Iota, st *State, reg *registry.Registry, d *Dispatch) (*State, *mishap.Located) {
	if st == nil {
		st = NewState(nil, nil, nil)
	}
	pushFrame(st, &FrameEvaluate{Queue: program})

	for len(st.Continuation) > 0 {
		frame := st.Continuation[len(st.Continuation)-1]
		if err := frame.Evaluate(st, reg, d); err != nil {
			return st, err
		}
	}
	return st, nil
}
