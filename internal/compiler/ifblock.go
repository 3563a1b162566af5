package compiler

import (
	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
)

// compileIfBlock desugars IfBlock per spec.md §4.2: the condition's
// patterns (unbracketed), the succeed hex, the fail hex (or an empty
// one, or a wrapped-and-evaluated nested IfBlock for "else if"), then
// `if`.
func (c *compiler) compileIfBlock(ib ast.IfBlock, depth int) ([]iotamodel.Iota, *mishap.Located) {
	var result []iotamodel.Iota

	cond, err := c.compileCondition(ib.Condition, depth)
	if err != nil {
		return nil, err
	}
	result = append(result, cond...)

	succeed, err := c.compileNode(ib.Succeed, depth)
	if err != nil {
		return nil, err
	}
	result = append(result, succeed...)

	switch fail := ib.Fail.(type) {
	case nil:
		empty, ferr := c.compileHex(ast.Hex{Location: ib.Location}, depth)
		if ferr != nil {
			return nil, ferr
		}
		result = append(result, empty...)

	case ast.Hex:
		compiled, ferr := c.compileHex(fail, depth)
		if ferr != nil {
			return nil, ferr
		}
		result = append(result, compiled...)

	case ast.IfBlock:
		wrapped, ferr := c.compileHex(ast.Hex{Location: fail.Location, Nodes: []ast.Node{fail}}, depth)
		if ferr != nil {
			return nil, ferr
		}
		result = append(result, wrapped...)

		evalPat, ferr := c.patternSeq(ib.Location, seqStep{"eval", nil})
		if ferr != nil {
			return nil, ferr
		}
		result = append(result, evalPat...)

	default:
		return nil, mishap.InvalidPattern().At(ib.Location)
	}

	ifPat, err := c.patternSeq(ib.Location, seqStep{"if", nil})
	if err != nil {
		return nil, err
	}
	return append(result, ifPat...), nil
}
