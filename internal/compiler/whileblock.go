package compiler

import (
	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
)

// compileWhileBlock desugars WhileBlock to a self-replicating loop hex
// grounded on original_source/src/compiler/while_block.rs: it quotes
// the body, folds its stack delta onto a running base via `for_each`
// over a singleton, then quotes the condition and re-evaluates the
// whole construct as long as the condition holds (spec.md §4.2's
// WhileBlock rule explicitly allows "any faithful re-encoding of the
// same semantics").
func (c *compiler) compileWhileBlock(wb ast.WhileBlock, depth int) ([]iotamodel.Iota, *mishap.Located) {
	var result []iotamodel.Iota

	open, err := c.patternSeq(wb.Location, seqStep{"open_paren", nil})
	if err != nil {
		return nil, err
	}
	result = append(result, open...)

	body, err := c.compileNode(wb.Body, depth)
	if err != nil {
		return nil, err
	}
	result = append(result, body...)

	fold, err := c.patternSeq(wb.Location,
		seqStep{"open_paren", nil},
		seqStep{"mask", iotamodel.BookkeeperMask("vv")},
		seqStep{"close_paren", nil},
		seqStep{"swap", nil},
		seqStep{"concat", nil},
		seqStep{"const/null", nil},
		seqStep{"singleton", nil},
		seqStep{"for_each", nil},
		seqStep{"number", iotamodel.NewNumber(2)},
		seqStep{"last_n_list", nil},
		seqStep{"stack_len", nil},
		seqStep{"last_n_list", nil},
		seqStep{"reverse_list", nil},
		seqStep{"deconstruct", nil},
		seqStep{"swap", nil},
		seqStep{"mask", iotamodel.BookkeeperMask("v")},
		seqStep{"splat", nil},
		seqStep{"swap", nil},
		seqStep{"append", nil},
		seqStep{"splat", nil},
	)
	if err != nil {
		return nil, err
	}
	result = append(result, fold...)

	cond, err := c.compileCondition(wb.Condition, depth)
	if err != nil {
		return nil, err
	}
	result = append(result, cond...)

	tail, err := c.patternSeq(wb.Location,
		seqStep{"open_paren", nil},
		seqStep{"duplicate", nil},
		seqStep{"eval", nil},
		seqStep{"close_paren", nil},
		seqStep{"open_paren", nil},
		seqStep{"mask", iotamodel.BookkeeperMask("v")},
		seqStep{"close_paren", nil},
		seqStep{"splat", nil},
		seqStep{"if", nil},
		seqStep{"eval", nil},
		seqStep{"close_paren", nil},
		seqStep{"duplicate", nil},
		seqStep{"eval", nil},
	)
	if err != nil {
		return nil, err
	}
	return append(result, tail...), nil
}
