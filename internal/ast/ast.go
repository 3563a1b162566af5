// Package ast defines the AST that a Hexagon front end (grammar parser
// or, here, the small text parser in internal/parser) must produce for
// the compiler to consume. Parsing itself is out of scope for the
// core (spec.md §1); this package is data definitions only.
package ast

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
)

// Node is any AST node. It is a closed interface implemented only by
// the variants in this file.
type Node interface {
	node()
}

// File is the root of a parsed program: a flat sequence of top-level
// nodes.
type File struct {
	Nodes []Node
}

func (File) node() {}

// ActionValue is the optional value carried by an Action node: either
// a literal iota (e.g. `Numerical Reflection: 5`) or a bookkeeper mask
// string (e.g. `Bookkeeper's Gambit: -v-`).
type ActionValue struct {
	Iota    iotamodel.Iota  // set if this is an iota-valued action
	Mask    string          // set if this is a bookkeeper mask
	IsMask  bool
}

// Action references one pattern (or macro) by name, with an optional
// value.
type Action struct {
	Location location.Location
	Name     string
	Value    *ActionValue
}

func (Action) node() {}

// Hex is a bracketed sequence of nodes. External hexes get a fresh
// heap-init prelude spliced in just inside their opening bracket (see
// compiler.Compile), the way an externally-callable hex needs its own
// ravenmind list.
type Hex struct {
	Location location.Location
	External bool
	Nodes    []Node
}

func (Hex) node() {}

// OpName enumerates the compiler-level variable/embed operators.
type OpName int

const (
	OpStore OpName = iota
	OpCopy
	OpPush
	OpEmbed
	OpSmartEmbed
	OpIntroEmbed
	OpConsiderEmbed
)

func (n OpName) String() string {
	switch n {
	case OpStore:
		return "Store"
	case OpCopy:
		return "Copy"
	case OpPush:
		return "Push"
	case OpEmbed:
		return "Embed"
	case OpSmartEmbed:
		return "SmartEmbed"
	case OpIntroEmbed:
		return "IntroEmbed"
	case OpConsiderEmbed:
		return "ConsiderEmbed"
	default:
		return "?"
	}
}

// OpValue is an Op's argument: either a literal iota (for the Embed
// family) or a variable name (for Store/Copy/Push).
type OpValue struct {
	Iota    iotamodel.Iota
	Var     string
	IsVar   bool
}

// Op is a variable or embed operator.
type Op struct {
	Location location.Location
	Name     OpName
	Arg      *OpValue
}

func (Op) node() {}

// IfBlock desugars to patterns + bracketed hexes + `if` (see
// compiler.compileIfBlock). Fail is nil for a bare `if` with no else.
type IfBlock struct {
	Location  location.Location
	Condition Node
	Succeed   Node
	Fail      Node // nil, a Hex, or another IfBlock
}

func (IfBlock) node() {}

// WhileBlock desugars to a fixed self-replicating loop expansion (see
// compiler.compileWhileBlock).
type WhileBlock struct {
	Location  location.Location
	Condition Node
	Body      Node
}

func (WhileBlock) node() {}
