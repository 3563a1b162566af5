// Package compiler lowers an internal/ast tree to the flat, ordered
// iota program the interpreter consumes (spec.md §4.2).
package compiler

import (
	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

// Macro is one macro-table entry: eager, unconditional expansion of
// Body's nodes at every use of Name (spec.md §4.2, §4.3 "Macro purity").
type Macro struct {
	Body ast.Hex
}

// Macros maps a macro's invoked name to its definition.
type Macros map[string]Macro

// maxMacroDepth bounds macro expansion. spec.md §4.2 calls recursive
// macros an explicitly unenforced open question ("macros never
// recurse (not enforced by compiler — flagged as open question)");
// SPEC_FULL.md resolves it by capping expansion depth so a
// self-referential macro table fails the compile instead of looping
// forever, rather than leaving it genuinely unenforced.
const maxMacroDepth = 256

type compiler struct {
	heap       map[string]int
	registry   *registry.Registry
	macros     Macros
	macroDepth int
}

// Compile lowers file to a flat iota program prefixed with the heap
// prelude (spec.md §4.2). heap may be nil to start a fresh top-level
// program with an empty heap.
func Compile(file ast.File, heap map[string]int, reg *registry.Registry, macros Macros) ([]iotamodel.Iota, *mishap.Located) {
	if heap == nil {
		heap = map[string]int{}
	}
	c := &compiler{heap: heap, registry: reg, macros: macros}

	body, err := c.compileNodes(file.Nodes, 0)
	if err != nil {
		return nil, err
	}
	prelude, err := c.heapPrelude(location.UnknownLocation)
	if err != nil {
		return nil, err
	}
	return append(prelude, body...), nil
}

func (c *compiler) compileNode(node ast.Node, depth int) ([]iotamodel.Iota, *mishap.Located) {
	switch n := node.(type) {
	case ast.File:
		return c.compileNodes(n.Nodes, depth)
	case ast.Action:
		return c.compileAction(n, depth)
	case ast.Hex:
		return c.compileHex(n, depth)
	case ast.Op:
		return c.compileOp(n)
	case ast.IfBlock:
		return c.compileIfBlock(n, depth)
	case ast.WhileBlock:
		return c.compileWhileBlock(n, depth)
	default:
		return nil, mishap.InvalidPattern().At(location.UnknownLocation)
	}
}

func (c *compiler) compileNodes(nodes []ast.Node, depth int) ([]iotamodel.Iota, *mishap.Located) {
	var result []iotamodel.Iota
	for _, node := range nodes {
		compiled, err := c.compileNode(node, depth)
		if err != nil {
			return nil, err
		}
		result = append(result, compiled...)
	}
	return result, nil
}

// compileAction resolves name against macros first, then the
// registry, per spec.md §4.2's Action rule.
func (c *compiler) compileAction(a ast.Action, depth int) ([]iotamodel.Iota, *mishap.Located) {
	if macro, ok := c.macros[a.Name]; ok {
		c.macroDepth++
		defer func() { c.macroDepth-- }()
		if c.macroDepth > maxMacroDepth {
			return nil, mishap.InvalidPattern().At(a.Location)
		}
		return c.compileNodes(macro.Body.Nodes, depth)
	}

	entry, ok := c.registry.Find(a.Name)
	if !ok {
		return nil, mishap.InvalidPattern().At(a.Location)
	}

	var value any
	if a.Value != nil {
		if a.Value.IsMask {
			value = iotamodel.BookkeeperMask(a.Value.Mask)
		} else if a.Value.Iota != nil {
			value = a.Value.Iota
		}
	}
	return []iotamodel.Iota{iotamodel.NewPattern(entry.Signature, entry.InternalName, value, a.Location)}, nil
}

// compileHex emits open_paren, the compiled inner nodes, and
// close_paren; an external hex gets a fresh heap prelude spliced in
// immediately after its opening bracket (spec.md §4.2's Hex rule).
func (c *compiler) compileHex(h ast.Hex, depth int) ([]iotamodel.Iota, *mishap.Located) {
	depth++

	inner, err := c.compileNodes(h.Nodes, depth)
	if err != nil {
		return nil, err
	}

	open, err := c.patternSeq(h.Location, seqStep{"open_paren", nil})
	if err != nil {
		return nil, err
	}
	closeP, err := c.patternSeq(h.Location, seqStep{"close_paren", nil})
	if err != nil {
		return nil, err
	}

	result := append([]iotamodel.Iota{}, open...)
	if h.External {
		prelude, perr := c.heapPrelude(h.Location)
		if perr != nil {
			return nil, perr
		}
		result = append(result, prelude...)
	}
	result = append(result, inner...)
	result = append(result, closeP...)
	return result, nil
}

// compileCondition emits an IfBlock/WhileBlock condition's patterns
// with no surrounding brackets: a bracketed condition hex has its
// brackets stripped (spec.md §4.2: "Emit condition block (patterns
// only, no brackets)").
func (c *compiler) compileCondition(node ast.Node, depth int) ([]iotamodel.Iota, *mishap.Located) {
	if hex, ok := node.(ast.Hex); ok {
		return c.compileNodes(hex.Nodes, depth)
	}
	return c.compileNode(node, depth)
}

// heapPrelude emits `const/null ; number(size) ; duplicate_n ;
// number(size) ; last_n_list ; write/local`, which resets ravenmind
// to a fresh list of `size` nulls (spec.md §4.2). size is the current
// heap's entry count at the point of emission.
func (c *compiler) heapPrelude(loc location.Location) ([]iotamodel.Iota, *mishap.Located) {
	size := iotamodel.NewNumber(float64(len(c.heap)))
	return c.patternSeq(loc,
		seqStep{"const/null", nil},
		seqStep{"number", size},
		seqStep{"duplicate_n", nil},
		seqStep{"number", size},
		seqStep{"last_n_list", nil},
		seqStep{"write_local", nil},
	)
}

// seqStep is one step of a fixed pattern sequence: an internal name
// and its optional embedded value (an iotamodel.Iota or a
// BookkeeperMask).
type seqStep struct {
	Name  string
	Value any
}

// patternSeq resolves each step against the registry and returns the
// resulting Pattern iotas in order. A missing internal name here is a
// programming error in this package, not a user-facing compile
// failure, but it is still reported as InvalidPattern so a broken
// override table fails loudly rather than panicking.
func (c *compiler) patternSeq(loc location.Location, steps ...seqStep) ([]iotamodel.Iota, *mishap.Located) {
	out := make([]iotamodel.Iota, 0, len(steps))
	for _, step := range steps {
		entry, ok := c.registry.Find(step.Name)
		if !ok {
			return nil, mishap.InvalidPattern().At(loc)
		}
		out = append(out, iotamodel.NewPattern(entry.Signature, entry.InternalName, step.Value, loc))
	}
	return out, nil
}
