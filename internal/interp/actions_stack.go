package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerStackActions(d *Dispatch) {
	d.Register("duplicate", actionDuplicate)
	d.Register("two_dup", actionTwoDup)
	d.Register("duplicate_n", actionDuplicateN)
	d.Register("swap", actionSwap)
	d.Register("rotate", actionRotate)
	d.Register("rotate_reverse", actionRotateReverse)
	d.Register("over", actionOver)
	d.Register("tuck", actionTuck)
	d.Register("stack_len", actionStackLen)
	d.Register("fisherman", actionFisherman)
	d.Register("fisherman_copy", actionFishermanCopy)
}

func actionDuplicate(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	top, m, ok := st.IotaAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.Push(top)
	return nil
}

// actionTwoDup duplicates the top two elements onto the stack,
// preserving their relative order (original_source/src/patterns/
// stack.rs's two_dup: args aren't removed, the same two iotas are
// pushed again deep-then-top).
func actionTwoDup(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	deep, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	top, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.Push(deep)
	st.Push(top)
	return nil
}

// actionDuplicateN is Gemini Distillation: iota, integer n, pushes n
// copies of iota (original_source/src/patterns/stack.rs's duplicate_n:
// the element duplicated is the one below the count, not the top n
// elements of the stack).
func actionDuplicateN(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	iota, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	n, m, ok := st.IntegerAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if n < 0 {
		return ptr(mishap.InvalidValue("non-negative Integer", "negative Integer"))
	}
	st.RemoveArgs(2)
	dup := make([]iotamodel.Iota, n)
	for i := range dup {
		dup[i] = iota
	}
	st.Stack = append(st.Stack, dup...)
	return nil
}

// actionSwap reverses the top two elements: [deep,top] -> [top,deep]
// (original_source/src/patterns/stack.rs's swap).
func actionSwap(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	deep, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	top, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(top)
	st.Push(deep)
	return nil
}

// actionRotate rotates the top 3 elements: [a,b,c] (c top) -> [b,c,a].
func actionRotate(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	a, m, ok := st.IotaAt(0, 3)
	if !ok {
		return ptr(m)
	}
	b, m, ok := st.IotaAt(1, 3)
	if !ok {
		return ptr(m)
	}
	c, m, ok := st.IotaAt(2, 3)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(3)
	st.Push(b)
	st.Push(c)
	st.Push(a)
	return nil
}

// actionRotateReverse is rotate's inverse: [a,b,c] (c top) -> [c,a,b].
func actionRotateReverse(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	a, m, ok := st.IotaAt(0, 3)
	if !ok {
		return ptr(m)
	}
	b, m, ok := st.IotaAt(1, 3)
	if !ok {
		return ptr(m)
	}
	c, m, ok := st.IotaAt(2, 3)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(3)
	st.Push(c)
	st.Push(a)
	st.Push(b)
	return nil
}

// actionOver duplicates the second-from-top element onto the top.
func actionOver(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	a, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	st.Push(a)
	return nil
}

// actionTuck copies the top element to just below the second-from-top:
// [deep,top] -> [top,deep,top].
func actionTuck(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	deep, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	top, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(top)
	st.Push(deep)
	st.Push(top)
	return nil
}

func actionStackLen(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	st.Push(iotamodel.NewNumber(float64(len(st.Stack))))
	return nil
}

// actionFisherman consumes the whole stack as a list, replacing it with
// a single List iota (Flock's Disintegration-adjacent "fisherman's
// gambit": dredge the entire stack).
func actionFisherman(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	items := append([]iotamodel.Iota(nil), st.Stack...)
	st.Stack = nil
	st.Push(iotamodel.NewList(items...))
	return nil
}

// actionFishermanCopy is fisherman without consuming the original
// stack: pushes a List snapshot on top, leaving the rest untouched.
func actionFishermanCopy(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	items := append([]iotamodel.Iota(nil), st.Stack...)
	st.Push(iotamodel.NewList(items...))
	return nil
}
