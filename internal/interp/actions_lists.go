package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerListActions(d *Dispatch) {
	d.Register("to_set", actionToSet)
	d.Register("append", actionAppend)
	d.Register("concat", actionConcat)
	d.Register("index", actionIndex)
	d.Register("list_size", actionListSize)
	d.Register("singleton", actionSingleton)
	d.Register("reverse_list", actionReverseList)
	d.Register("last_n_list", actionLastNList)
	d.Register("splat", actionSplat)
	d.Register("index_of", actionIndexOf)
	d.Register("list_remove", actionListRemove)
	d.Register("slice", actionSlice)
	d.Register("construct", actionConstruct)
	d.Register("deconstruct", actionDeconstruct)
	d.Register("empty_list", actionEmptyList)
}

// actionToSet is Uniqueness Purification: dedupe a list by tolerant
// equality, preserving first-seen order.
func actionToSet(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	var out []iotamodel.Iota
	for _, it := range l.Items {
		dup := false
		for _, o := range out {
			if it.Tolerates(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, it)
		}
	}
	st.Push(iotamodel.NewList(out...))
	return nil
}

// actionAppend is Integration Distillation: list, value -> list with value
// appended (list is the deeper of the two args, value is on top).
func actionAppend(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 2)
	if !ok {
		return ptr(m)
	}
	v, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(l.Append(v))
	return nil
}

// actionConcat is Combination Distillation: list, list -> concatenated
// list, deeper list's items first.
func actionConcat(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	a, m, ok := st.ListAt(0, 2)
	if !ok {
		return ptr(m)
	}
	b, m, ok := st.ListAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	out := make([]iotamodel.Iota, 0, len(a.Items)+len(b.Items))
	out = append(out, a.Items...)
	out = append(out, b.Items...)
	st.Push(iotamodel.NewList(out...))
	return nil
}

// actionIndex is Selection Distillation: list, integer -> element at
// index.
func actionIndex(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 2)
	if !ok {
		return ptr(m)
	}
	idx, m, ok := st.IntegerAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if idx < 0 || idx >= len(l.Items) {
		return ptr(mishap.NoIotaAtIndex(idx))
	}
	st.RemoveArgs(2)
	st.Push(l.Items[idx])
	return nil
}

func actionListSize(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 1)
	if !ok {
		if s, _, sok := st.StringAt(0, 1); sok {
			st.RemoveArgs(1)
			st.Push(iotamodel.NewNumber(float64(len(s.Value))))
			return nil
		}
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewNumber(float64(len(l.Items))))
	return nil
}

func actionSingleton(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, m, ok := st.IotaAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewList(v))
	return nil
}

func actionReverseList(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(l.Reversed())
	return nil
}

// actionLastNList is Flock's Gambit: integer, then that many stack
// elements collected into a List (bottom-to-top order preserved).
func actionLastNList(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	n, m, ok := st.IntegerAt(0, 1)
	if !ok {
		return ptr(m)
	}
	if n < 0 || len(st.Stack)-1 < n {
		return ptr(mishap.NotEnoughIotas(n-(len(st.Stack)-1), len(st.Stack)-1))
	}
	st.RemoveArgs(1)
	start := len(st.Stack) - n
	items := append([]iotamodel.Iota(nil), st.Stack[start:]...)
	st.Stack = st.Stack[:start]
	st.Push(iotamodel.NewList(items...))
	return nil
}

// actionSplat is Flock's Disintegration: a List -> its elements pushed
// in order.
func actionSplat(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.PushAll(l.Items)
	return nil
}

// actionIndexOf is Locator's Distillation: list, value -> first index
// (tolerant), or -1.
func actionIndexOf(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 2)
	if !ok {
		return ptr(m)
	}
	v, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	idx := -1
	for i, it := range l.Items {
		if it.Tolerates(v) {
			idx = i
			break
		}
	}
	st.Push(iotamodel.NewNumber(float64(idx)))
	return nil
}

func actionListRemove(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 2)
	if !ok {
		return ptr(m)
	}
	idx, m, ok := st.IntegerAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if idx < 0 || idx >= len(l.Items) {
		return ptr(mishap.NoIotaAtIndex(idx))
	}
	st.RemoveArgs(2)
	out := make([]iotamodel.Iota, 0, len(l.Items)-1)
	out = append(out, l.Items[:idx]...)
	out = append(out, l.Items[idx+1:]...)
	st.Push(iotamodel.NewList(out...))
	return nil
}

func actionSlice(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	hi, m, ok := st.IntegerAt(0, 3)
	if !ok {
		return ptr(m)
	}
	lo, m, ok := st.IntegerAt(1, 3)
	if !ok {
		return ptr(m)
	}
	l, m, ok := st.ListAt(2, 3)
	if !ok {
		return ptr(m)
	}
	if lo < 0 || hi > len(l.Items) || lo > hi {
		return ptr(mishap.IncorrectIota(1, "valid slice bounds", iotamodel.NewNumber(float64(lo))))
	}
	st.RemoveArgs(3)
	st.Push(iotamodel.NewList(l.Items[lo:hi]...))
	return nil
}

// actionConstruct is Vector/List Exaltation's generic cousin: integer
// count then that many values -> a List.
func actionConstruct(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	n, m, ok := st.IntegerAt(0, 1)
	if !ok {
		return ptr(m)
	}
	if n < 0 || len(st.Stack)-1 < n {
		return ptr(mishap.NotEnoughIotas(n-(len(st.Stack)-1), len(st.Stack)-1))
	}
	st.RemoveArgs(1)
	start := len(st.Stack) - n
	items := append([]iotamodel.Iota(nil), st.Stack[start:]...)
	st.Stack = st.Stack[:start]
	st.Push(iotamodel.NewList(items...))
	return nil
}

func actionDeconstruct(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	l, m, ok := st.ListAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.PushAll(l.Items)
	st.Push(iotamodel.NewNumber(float64(len(l.Items))))
	return nil
}

func actionEmptyList(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	st.Push(iotamodel.NewList())
	return nil
}
