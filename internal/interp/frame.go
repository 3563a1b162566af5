package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

// Frame is one entry of the continuation stack (spec.md §4.5): a
// polymorphic record exposing Evaluate (may push further frames, mutate
// state, and fail) and BreakOut (invoked by `halt` while unwinding;
// returning true means "stop here").
type Frame interface {
	Evaluate(st *State, reg *registry.Registry, dispatch *Dispatch) *mishap.Located
	BreakOut(st *State) bool
}

// popFrame pops and returns the top frame, or nil if the continuation
// is empty.
func popFrame(st *State) Frame {
	n := len(st.Continuation)
	if n == 0 {
		return nil
	}
	f := st.Continuation[n-1]
	st.Continuation = st.Continuation[:n-1]
	return f
}

func pushFrame(st *State, f Frame) {
	st.Continuation = append(st.Continuation, f)
}

// FrameEvaluate holds a queue of iotas still to be interpreted. Pattern
// iotas dispatch as actions; any other iota is either quoted (while
// buffering) or pushed as a literal (spec.md §4.4).
type FrameEvaluate struct {
	Queue []iotamodel.Iota
}

func (f *FrameEvaluate) Evaluate(st *State, reg *registry.Registry, dispatch *Dispatch) *mishap.Located {
	popFrame(st)
	if len(f.Queue) == 0 {
		return nil
	}
	head := f.Queue[0]
	rest := f.Queue[1:]
	pushFrame(st, &FrameEvaluate{Queue: rest})
	return evalOne(st, reg, dispatch, head)
}

func (f *FrameEvaluate) BreakOut(st *State) bool {
	popFrame(st)
	return false
}

// FrameEndEval is the sentinel `eval` of a quoted List pushes beneath
// its inner Evaluate frame: it clears consider_next on the way out and
// is the frame `halt`'s unwind stops at.
type FrameEndEval struct{}

func (f *FrameEndEval) Evaluate(st *State, reg *registry.Registry, dispatch *Dispatch) *mishap.Located {
	popFrame(st)
	st.ConsiderNext = false
	return nil
}

func (f *FrameEndEval) BreakOut(st *State) bool { return true }

// FrameForEach implements Thoth's Gambit (spec.md §4.5): folds the
// stack delta of running code over each element of data into an
// accumulator, restoring the base stack between iterations.
type FrameForEach struct {
	Data      []iotamodel.Iota
	Code      []iotamodel.Iota
	BaseStack []iotamodel.Iota // stack restored between iterations; only meaningful once Entered
	Entered   bool
	Acc       *[]iotamodel.Iota
}

func (f *FrameForEach) Evaluate(st *State, reg *registry.Registry, dispatch *Dispatch) *mishap.Located {
	popFrame(st)
	var stack []iotamodel.Iota
	if !f.Entered {
		stack = append([]iotamodel.Iota(nil), st.Stack...)
	} else {
		*f.Acc = append(*f.Acc, st.Stack...)
		stack = append([]iotamodel.Iota(nil), f.BaseStack...)
	}

	if len(f.Data) > 0 {
		top := f.Data[0]
		rest := f.Data[1:]

		pushFrame(st, &FrameForEach{Data: rest, Code: f.Code, BaseStack: stack, Entered: true, Acc: f.Acc})
		pushFrame(st, &FrameEvaluate{Queue: append([]iotamodel.Iota(nil), f.Code...)})

		st.Stack = append(stack, top)
	} else {
		result := iotamodel.NewList(*f.Acc...)
		st.Stack = append(stack, iotamodel.Iota(result))
	}
	return nil
}

func (f *FrameForEach) BreakOut(st *State) bool {
	popFrame(st)
	base := f.BaseStack
	*f.Acc = append(*f.Acc, st.Stack...)
	st.Stack = append(append([]iotamodel.Iota(nil), base...), iotamodel.Iota(iotamodel.NewList(*f.Acc...)))
	return true
}

// FrameIterate drives infinite "continuum" streams (spec.md §4.5). Not
// reachable from any pattern in this catalogue (no continuum-generating
// action is wired — see DESIGN.md), but implemented so a future action
// (or a host extension) can schedule it the way ForEach/Map are
// scheduled.
type FrameIterate struct {
	BaseStack    []iotamodel.Iota
	Entered      bool
	Index        int
	CollectLo    int
	CollectHi    int
	Acc          *[]iotamodel.Iota
	Prev         iotamodel.Iota
	GenNextCode  []iotamodel.Iota
	Maps         [][]iotamodel.Iota
	CollectSingle bool
}

func (f *FrameIterate) Evaluate(st *State, reg *registry.Registry, dispatch *Dispatch) *mishap.Located {
	popFrame(st)
	base := f.BaseStack
	if !f.Entered {
		base = append([]iotamodel.Iota(nil), st.Stack...)
	}

	if f.Index >= f.CollectLo && f.Index <= f.CollectHi {
		if !f.Entered {
			*f.Acc = append(*f.Acc, f.Prev)
		} else if len(st.Stack) > 0 {
			*f.Acc = append(*f.Acc, st.Stack[len(st.Stack)-1])
		} else {
			*f.Acc = append(*f.Acc, iotamodel.Null{})
		}
	}

	if f.Index >= f.CollectHi {
		st.Stack = nil
		if len(f.Maps) == 0 {
			st.Stack = append(st.Stack, base...)
			if f.CollectSingle && len(*f.Acc) > 0 {
				st.Stack = append(st.Stack, (*f.Acc)[0])
			} else {
				st.Stack = append(st.Stack, iotamodel.Iota(iotamodel.NewList(*f.Acc...)))
			}
		} else {
			mapAcc := []iotamodel.Iota{}
			pushFrame(st, &FrameMap{
				Data:          *f.Acc,
				Maps:          f.Maps,
				BaseStack:     base,
				Acc:           &mapAcc,
				Init:          true,
				CollectSingle: f.CollectSingle,
			})
		}
		return nil
	}

	var result iotamodel.Iota
	if !f.Entered {
		result = f.Prev
	} else if len(st.Stack) > 0 {
		result = st.Stack[len(st.Stack)-1]
	} else {
		result = iotamodel.Null{}
	}

	st.Stack = []iotamodel.Iota{result}
	pushFrame(st, &FrameIterate{
		BaseStack: base, Entered: true, Index: f.Index + 1,
		CollectLo: f.CollectLo, CollectHi: f.CollectHi, Acc: f.Acc,
		Prev: result, GenNextCode: f.GenNextCode, Maps: f.Maps, CollectSingle: f.CollectSingle,
	})
	pushFrame(st, &FrameEvaluate{Queue: append([]iotamodel.Iota(nil), f.GenNextCode...)})
	return nil
}

func (f *FrameIterate) BreakOut(st *State) bool { return true }

// FrameMap is the three-phase mapping chain scheduled at the tail of an
// Iterate (spec.md §4.5).
type FrameMap struct {
	Data          []iotamodel.Iota
	Maps          [][]iotamodel.Iota
	CurrentMap    []iotamodel.Iota
	BaseStack     []iotamodel.Iota
	Acc           *[]iotamodel.Iota
	Init          bool
	CollectSingle bool
}

func (f *FrameMap) Evaluate(st *State, reg *registry.Registry, dispatch *Dispatch) *mishap.Located {
	popFrame(st)
	if f.Init {
		maps := f.Maps
		currentMap := maps[0]
		maps = maps[1:]

		data := f.Data
		element := data[0]
		data = data[1:]

		pushFrame(st, &FrameMap{
			Data: data, Maps: maps, BaseStack: f.BaseStack, Acc: f.Acc,
			Init: false, CurrentMap: currentMap, CollectSingle: f.CollectSingle,
		})
		st.Stack = []iotamodel.Iota{element}
		pushFrame(st, &FrameEvaluate{Queue: append([]iotamodel.Iota(nil), currentMap...)})
		return nil
	}

	if len(f.Data) == 0 {
		var top iotamodel.Iota = iotamodel.Null{}
		if len(st.Stack) > 0 {
			top = st.Stack[len(st.Stack)-1]
		}
		*f.Acc = append(*f.Acc, top)

		if len(f.Maps) > 0 {
			nextAcc := []iotamodel.Iota{}
			st.Stack = nil
			pushFrame(st, &FrameMap{
				Data: *f.Acc, Maps: f.Maps, BaseStack: f.BaseStack, Acc: &nextAcc,
				Init: true, CollectSingle: f.CollectSingle,
			})
		} else {
			st.Stack = append([]iotamodel.Iota(nil), f.BaseStack...)
			if f.CollectSingle && len(*f.Acc) > 0 {
				st.Stack = append(st.Stack, (*f.Acc)[0])
			} else {
				st.Stack = append(st.Stack, iotamodel.Iota(iotamodel.NewList(*f.Acc...)))
			}
		}
		return nil
	}

	var top iotamodel.Iota = iotamodel.Null{}
	if len(st.Stack) > 0 {
		top = st.Stack[len(st.Stack)-1]
	}
	data := f.Data
	element := data[0]
	data = data[1:]
	*f.Acc = append(*f.Acc, top)

	pushFrame(st, &FrameMap{
		Data: data, Maps: f.Maps, BaseStack: f.BaseStack, Acc: f.Acc,
		Init: false, CurrentMap: f.CurrentMap, CollectSingle: f.CollectSingle,
	})
	st.Stack = []iotamodel.Iota{element}
	pushFrame(st, &FrameEvaluate{Queue: append([]iotamodel.Iota(nil), f.CurrentMap...)})
	return nil
}

func (f *FrameMap) BreakOut(st *State) bool { return true }
