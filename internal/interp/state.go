// Package interp implements the interpreter core (spec.md §4.3-§4.7): the
// stack/ravenmind/heap state, the continuation stack of frames, pattern
// dispatch with quoting and considering, and the mishaps raised along
// the way (the salvage transform lives in package mishap). It consumes the flat iota program the compiler package
// produces — per spec.md §2's merged pipeline, a compiled Pattern iota
// already carries everything an AST Action node did (signature, value,
// location), so this package never needs its own copy of ast.Node: a
// compiled iota list already serves as the interpreter's node queue
// (spec.md §2: "a queue of AST nodes (or iotas re-lifted to nodes)").
package interp

import (
	"math"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
)

// HoldingKind is which slot (if any) an Entity is holding an item in.
type HoldingKind int

const (
	HoldingNone HoldingKind = iota
	HoldingFocus
	HoldingTrinket
	HoldingArtifact
	HoldingCypher
)

// Holding is an entity's held item, if any. Two Holdings of the same
// Kind compare equal only when both carry an item and those items
// tolerate one another (state.rs's PartialEq impl).
type Holding struct {
	Kind HoldingKind
	Item iotamodel.Iota // nil iff Kind == HoldingNone or the slot is empty
}

func (h Holding) Equal(o Holding) bool {
	if h.Kind != o.Kind {
		return false
	}
	if h.Kind == HoldingNone {
		return true
	}
	if h.Item == nil || o.Item == nil {
		return false
	}
	return h.Item.Tolerates(o.Item)
}

// EntityType classifies a config-declared entity.
type EntityType int

const (
	EntityAnimal EntityType = iota
	EntityMonster
	EntityLiving
	EntityItem
	EntityPlayer
	EntityMisc
)

func (t EntityType) String() string {
	switch t {
	case EntityAnimal:
		return "Animal"
	case EntityMonster:
		return "Monster"
	case EntityLiving:
		return "Living"
	case EntityItem:
		return "Item"
	case EntityPlayer:
		return "Player"
	case EntityMisc:
		return "Misc"
	default:
		return "Misc"
	}
}

// Entity is a host-declared entity available to akashic/craft/holding
// patterns, distinct from iotamodel.Entity (the stack-value reference to
// one by name).
type Entity struct {
	Name    string
	Type    EntityType
	Holding Holding
}

// Library is one akashic record: a signature-keyed table of iotas
// stashed at a world position.
type Library map[iotamodel.Signature]iotamodel.Iota

// LibraryKey is an integer (x,y,z) position, the key into State.Libraries.
type LibraryKey struct{ X, Y, Z int }

func KeyFromVector(v iotamodel.Vector) LibraryKey {
	return LibraryKey{X: int(math.Round(v.X)), Y: int(math.Round(v.Y)), Z: int(math.Round(v.Z))}
}

// BufferedIota is one element accumulated while quoting, paired with
// whether it arrived via Consideration (spec.md §4.6: "skipping those
// whose considered_flag = true" when counting bracket balance).
type BufferedIota struct {
	Iota       iotamodel.Iota
	Considered bool
}

// State is the full interpreter state (spec.md §3's "Interpreter
// State"). A single State lives for exactly one program run.
type State struct {
	Stack        []iotamodel.Iota
	Ravenmind    iotamodel.Iota
	Heap         map[string]int
	Buffer       *[]BufferedIota
	ConsiderNext bool
	Continuation []Frame

	Entities  map[string]*Entity
	Libraries map[LibraryKey]Library

	SentinelLocation *iotamodel.Vector

	// PrintLog accumulates Jester's Gambit (print) output in
	// evaluation order, for the host to flush after Interpret returns.
	PrintLog []string
}

// NewState builds an empty initial state (spec.md §4.3): empty stack,
// null ravenmind, no buffer, consider_next false, caller-supplied
// entities/libraries (from config), and an empty heap (populated by
// compilation, not interpretation, but re-supplied here for Push/read
// of already-compiled variable references).
func NewState(heap map[string]int, entities map[string]*Entity, libraries map[LibraryKey]Library) *State {
	if heap == nil {
		heap = map[string]int{}
	}
	if entities == nil {
		entities = map[string]*Entity{}
	}
	if libraries == nil {
		libraries = map[LibraryKey]Library{}
	}
	return &State{
		Heap:      heap,
		Entities:  entities,
		Libraries: libraries,
	}
}

func (st *State) Push(i iotamodel.Iota) {
	st.Stack = append(st.Stack, i)
}

func (st *State) PushAll(items []iotamodel.Iota) {
	st.Stack = append(st.Stack, items...)
}

// RemoveArgs drops the top argCount elements of the stack.
func (st *State) RemoveArgs(argCount int) {
	st.Stack = st.Stack[:len(st.Stack)-argCount]
}

// iotaAt resolves get_iota(index, arg_count): index counts from the
// start of the trailing argCount elements, so index=0 is the deepest of
// the args and index=argCount-1 is the stack top (state.rs's
// StackExt::get_iota).
func (st *State) iotaAt(index, argCount int) (iotamodel.Iota, mishap.Mishap, bool) {
	if len(st.Stack) < argCount {
		return nil, mishap.NotEnoughIotas(argCount-len(st.Stack), len(st.Stack)), false
	}
	return st.Stack[len(st.Stack)-argCount+index], mishap.Mishap{}, true
}

func (st *State) IotaAt(index, argCount int) (iotamodel.Iota, mishap.Mishap, bool) {
	return st.iotaAt(index, argCount)
}

func (st *State) NumberAt(index, argCount int) (iotamodel.Number, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Number{}, m, false
	}
	n, ok := i.(iotamodel.Number)
	if !ok {
		return iotamodel.Number{}, mishap.IncorrectIota(index, "Number", i), false
	}
	return n, mishap.Mishap{}, true
}

func (st *State) IntegerAt(index, argCount int) (int, mishap.Mishap, bool) {
	n, m, ok := st.NumberAt(index, argCount)
	if !ok {
		return 0, m, false
	}
	rounded := iotamodel.NewNumber(roundHalfAwayFromZero(n.Value))
	if !n.Tolerates(rounded) {
		return 0, mishap.IncorrectIota(index, "Integer", n), false
	}
	return int(rounded.Value), mishap.Mishap{}, true
}

func (st *State) VectorAt(index, argCount int) (iotamodel.Vector, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Vector{}, m, false
	}
	v, ok := i.(iotamodel.Vector)
	if !ok {
		return iotamodel.Vector{}, mishap.IncorrectIota(index, "Vector", i), false
	}
	return v, mishap.Mishap{}, true
}

func (st *State) BoolAt(index, argCount int) (iotamodel.Bool, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Bool{}, m, false
	}
	b, ok := i.(iotamodel.Bool)
	if !ok {
		return iotamodel.Bool{}, mishap.IncorrectIota(index, "Boolean", i), false
	}
	return b, mishap.Mishap{}, true
}

func (st *State) StringAt(index, argCount int) (iotamodel.String, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.String{}, m, false
	}
	s, ok := i.(iotamodel.String)
	if !ok {
		return iotamodel.String{}, mishap.IncorrectIota(index, "String", i), false
	}
	return s, mishap.Mishap{}, true
}

func (st *State) ListAt(index, argCount int) (iotamodel.List, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.List{}, m, false
	}
	l, ok := i.(iotamodel.List)
	if !ok {
		return iotamodel.List{}, mishap.IncorrectIota(index, "List", i), false
	}
	return l, mishap.Mishap{}, true
}

func (st *State) PatternAt(index, argCount int) (iotamodel.Pattern, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Pattern{}, m, false
	}
	p, ok := i.(iotamodel.Pattern)
	if !ok {
		return iotamodel.Pattern{}, mishap.IncorrectIota(index, "Pattern", i), false
	}
	return p, mishap.Mishap{}, true
}

func (st *State) EntityAt(index, argCount int) (iotamodel.Entity, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Entity{}, m, false
	}
	e, ok := i.(iotamodel.Entity)
	if !ok {
		return iotamodel.Entity{}, mishap.IncorrectIota(index, "Entity", i), false
	}
	return e, mishap.Mishap{}, true
}

func (st *State) MatrixAt(index, argCount int) (iotamodel.Matrix, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Matrix{}, m, false
	}
	mat, ok := i.(iotamodel.Matrix)
	if !ok {
		return iotamodel.Matrix{}, mishap.IncorrectIota(index, "Matrix", i), false
	}
	return mat, mishap.Mishap{}, true
}

func (st *State) ContinuationAt(index, argCount int) (iotamodel.Continuation, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Continuation{}, m, false
	}
	c, ok := i.(iotamodel.Continuation)
	if !ok {
		return iotamodel.Continuation{}, mishap.IncorrectIota(index, "Continuation", i), false
	}
	return c, mishap.Mishap{}, true
}

// ListOrPatternAt backs `eval`: the top of stack is either a quoted
// List (the common case) or a bare Pattern.
func (st *State) ListOrPatternAt(index, argCount int) (iotamodel.List, iotamodel.Pattern, bool, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.List{}, iotamodel.Pattern{}, false, m, false
	}
	switch v := i.(type) {
	case iotamodel.List:
		return v, iotamodel.Pattern{}, true, mishap.Mishap{}, true
	case iotamodel.Pattern:
		return iotamodel.List{}, v, false, mishap.Mishap{}, true
	default:
		return iotamodel.List{}, iotamodel.Pattern{}, false, mishap.IncorrectIota(index, "List or Pattern", i), false
	}
}

// NumOrVecAt backs the arithmetic actions, which accept either operand
// kind (add/sub/mul_dot/div_cross all dispatch on this pair).
func (st *State) NumOrVecAt(index, argCount int) (iotamodel.Number, iotamodel.Vector, bool, mishap.Mishap, bool) {
	i, m, ok := st.iotaAt(index, argCount)
	if !ok {
		return iotamodel.Number{}, iotamodel.Vector{}, false, m, false
	}
	switch v := i.(type) {
	case iotamodel.Number:
		return v, iotamodel.Vector{}, true, mishap.Mishap{}, true
	case iotamodel.Vector:
		return iotamodel.Number{}, v, false, mishap.Mishap{}, true
	default:
		return iotamodel.Number{}, iotamodel.Vector{}, false, mishap.IncorrectIota(index, "Number or Vector", i), false
	}
}

func roundHalfAwayFromZero(f float64) float64 {
	if f >= 0 {
		return float64(int64(f + 0.5))
	}
	return float64(int64(f - 0.5))
}
