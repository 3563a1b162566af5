package compiler

import (
	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
)

func (c *compiler) compileOp(op ast.Op) ([]iotamodel.Iota, *mishap.Located) {
	switch op.Name {
	case ast.OpStore:
		return c.compileOpStore(op)
	case ast.OpCopy:
		return c.compileOpCopy(op)
	case ast.OpPush:
		return c.compileOpPush(op)
	case ast.OpEmbed:
		return c.compileOpEmbed(op, embedNormal)
	case ast.OpSmartEmbed:
		return c.compileOpEmbed(op, embedSmart)
	case ast.OpIntroEmbed:
		return c.compileOpEmbed(op, embedIntroRetro)
	case ast.OpConsiderEmbed:
		return c.compileOpEmbed(op, embedConsider)
	default:
		return nil, mishap.OpExpectedIota().At(op.Location)
	}
}

// compileOpStore lowers Op{Store, var}, allocating the next heap
// index if var hasn't been seen before (spec.md §4.2, scenario 1:
// sequential Store calls yield heap = {a:0, b:1, ...}).
//
// Both branches rewrite the slot in place rather than appending: the
// heap prelude already pre-sizes ravenmind to the program's final
// variable count (heapPrelude runs after the whole body is compiled),
// so every index a Store will ever target is already a Null slot by
// the time the program runs. Appending a newly-seen variable's value
// instead of writing it at its assigned index would leave it past the
// prelude's Null padding, where nothing else ever looks for it.
func (c *compiler) compileOpStore(op ast.Op) ([]iotamodel.Iota, *mishap.Located) {
	arg := op.Arg
	if arg == nil {
		return nil, mishap.OpNotEnoughArgs(1).At(op.Location)
	}
	if !arg.IsVar {
		return nil, mishap.OpExpectedVar(arg.Iota).At(op.Location)
	}

	index, ok := c.heap[arg.Var]
	if !ok {
		index = len(c.heap)
		c.heap[arg.Var] = index
	}
	return c.patternSeq(op.Location,
		seqStep{"read_local", nil},
		seqStep{"number", iotamodel.NewNumber(float64(index))},
		seqStep{"rotate", nil},
		seqStep{"modify_in_place", nil},
		seqStep{"write_local", nil},
	)
}

// compileOpCopy is `duplicate` followed by the Store lowering.
func (c *compiler) compileOpCopy(op ast.Op) ([]iotamodel.Iota, *mishap.Located) {
	dup, err := c.patternSeq(op.Location, seqStep{"duplicate", nil})
	if err != nil {
		return nil, err
	}
	store, err := c.compileOpStore(op)
	if err != nil {
		return nil, err
	}
	return append(dup, store...), nil
}

// compileOpPush lowers Op{Push, var}; var must already be in the heap.
func (c *compiler) compileOpPush(op ast.Op) ([]iotamodel.Iota, *mishap.Located) {
	arg := op.Arg
	if arg == nil {
		return nil, mishap.OpNotEnoughArgs(1).At(op.Location)
	}
	if !arg.IsVar {
		return nil, mishap.OpExpectedVar(arg.Iota).At(op.Location)
	}
	index, ok := c.heap[arg.Var]
	if !ok {
		return nil, mishap.VariableNotAssigned(arg.Var).At(op.Location)
	}
	return c.patternSeq(op.Location,
		seqStep{"read_local", nil},
		seqStep{"number", iotamodel.NewNumber(float64(index))},
		seqStep{"index", nil},
	)
}

type embedKind int

const (
	embedNormal embedKind = iota
	embedSmart
	embedIntroRetro
	embedConsider
)

// compileOpEmbed lowers the Embed family. All four take a literal
// iota argument (never a variable); they differ in whether the iota
// is dispatched as an action (Embed), pushed as-is (SmartEmbed),
// bracketed (IntroEmbed), or preceded by Consideration (ConsiderEmbed)
// (spec.md §4.2).
func (c *compiler) compileOpEmbed(op ast.Op, kind embedKind) ([]iotamodel.Iota, *mishap.Located) {
	arg := op.Arg
	if arg == nil {
		return nil, mishap.OpNotEnoughArgs(1).At(op.Location)
	}
	if arg.IsVar {
		return nil, mishap.OpExpectedIota().At(op.Location)
	}
	value := arg.Iota

	switch kind {
	case embedNormal:
		if pat, ok := value.(iotamodel.Pattern); ok {
			return []iotamodel.Iota{pat}, nil
		}
		return []iotamodel.Iota{value}, nil

	case embedSmart:
		if pat, ok := value.(iotamodel.Pattern); ok {
			escape, err := c.patternSeq(op.Location, seqStep{"escape", nil})
			if err != nil {
				return nil, err
			}
			return append(escape, pat), nil
		}
		return []iotamodel.Iota{value}, nil

	case embedIntroRetro:
		open, err := c.patternSeq(op.Location, seqStep{"open_paren", nil})
		if err != nil {
			return nil, err
		}
		closeP, err := c.patternSeq(op.Location, seqStep{"close_paren", nil})
		if err != nil {
			return nil, err
		}
		return append(append(open, value), closeP...), nil

	case embedConsider:
		escape, err := c.patternSeq(op.Location, seqStep{"escape", nil})
		if err != nil {
			return nil, err
		}
		return append(escape, value), nil

	default:
		return nil, mishap.OpExpectedIota().At(op.Location)
	}
}
