package pass

import "github.com/wippyai/flowopt/ast"

// BranchStats summarizes one ReduceBranchInstructionSet run.
type BranchStats struct {
	// Rewritten counts jumps replaced by an IfTrue form.
	Rewritten int
	// Fused counts three-way compares folded into the following jump.
	Fused int
	// Skipped counts instruction-set specific nodes left untouched because
	// their shape did not match any rewrite.
	Skipped int
}

// ReduceBranchInstructionSet rewrites the conditional jumps of one block body
// into IfTrue jumps over a boolean comparison. Nested blocks are not visited.
//
// The body shrinks only when a three-way compare is fused with the zero test
// that follows it. The jump target always stays on the IfTrue node, and
// the ranges of consumed nodes end up on the comparison.
func ReduceBranchInstructionSet(block *ast.Block) BranchStats {
	var stats BranchStats
	body := block.Body

	for i := 0; i < len(body); i++ {
		e, ok := body[i].(*ast.Expression)
		if !ok {
			continue
		}

		switch e.Code {
		case ast.TableSwitch, ast.LookupSwitch:
			if len(e.Arguments) > 0 {
				e.Arguments[0].AddRanges(e.Ranges...)
				e.Ranges = nil
			}
			continue

		case ast.LCmp, ast.FCmpL, ast.FCmpG, ast.DCmpL, ast.DCmpG:
			if fused := fuseCompare(e, body, i); fused != nil {
				body[i] = fused
				body = append(body[:i+1], body[i+2:]...)
				stats.Fused++
			} else {
				stats.Skipped++
			}
			continue

		case ast.IfNe:
			if len(e.Arguments) != 1 || !hasLabelOperand(e) {
				stats.Skipped++
				continue
			}
			e.Code = ast.IfTrue
			stats.Rewritten++
			continue
		}

		cmp, arity, extra, ok := jumpComparison(e.Code)
		if !ok {
			continue
		}
		if len(e.Arguments) != arity || !hasLabelOperand(e) {
			stats.Skipped++
			continue
		}

		args := e.Arguments
		if extra != nil {
			args = append(args, extra())
		}
		cond := ast.NewExpression(cmp, nil, args...)
		cond.AddRanges(e.Ranges...)
		body[i] = ast.NewExpression(ast.IfTrue, e.Operand, cond)
		stats.Rewritten++
	}

	block.Body = body
	return stats
}

// fuseCompare folds body[i], a three-way compare, with the zero test at
// body[i+1]. It returns nil when the pair does not have that shape.
func fuseCompare(compare *ast.Expression, body []ast.Node, i int) *ast.Expression {
	if i+1 >= len(body) || len(compare.Arguments) != 2 {
		return nil
	}
	next, ok := body[i+1].(*ast.Expression)
	if !ok || !next.Code.IsZeroTest() || len(next.Arguments) != 0 || !hasLabelOperand(next) {
		return nil
	}

	cond := ast.NewExpression(zeroTestComparison(next.Code), nil, compare.Arguments...)
	cond.AddRanges(compare.Ranges...)
	cond.AddRanges(next.Ranges...)
	return ast.NewExpression(ast.IfTrue, next.Operand, cond)
}

// zeroTestComparison maps a zero test onto the comparison it performs.
func zeroTestComparison(code ast.Code) ast.Code {
	switch code {
	case ast.IfEq:
		return ast.CmpEq
	case ast.IfNe:
		return ast.CmpNe
	case ast.IfLt:
		return ast.CmpLt
	case ast.IfGe:
		return ast.CmpGe
	case ast.IfGt:
		return ast.CmpGt
	case ast.IfLe:
		return ast.CmpLe
	}
	panic("not a zero test: " + code.String())
}

// jumpComparison describes how a standalone conditional jump is rewritten:
// the condition code, the number of arguments the jump must carry and the
// operand appended to complete the condition.
func jumpComparison(code ast.Code) (cmp ast.Code, arity int, extra func() *ast.Expression, ok bool) {
	zero := func() *ast.Expression { return ast.NewExpression(ast.LdC, int64(0)) }
	null := func() *ast.Expression { return ast.NewExpression(ast.AConstNull, nil) }

	switch code {
	case ast.IfEq:
		return ast.LogicalNot, 1, nil, true
	case ast.IfLt:
		return ast.CmpLt, 1, zero, true
	case ast.IfGe:
		return ast.CmpGe, 1, zero, true
	case ast.IfGt:
		return ast.CmpGt, 1, zero, true
	case ast.IfLe:
		return ast.CmpLe, 1, zero, true
	case ast.IfICmpEq, ast.IfACmpEq:
		return ast.CmpEq, 2, nil, true
	case ast.IfICmpNe, ast.IfACmpNe:
		return ast.CmpNe, 2, nil, true
	case ast.IfICmpLt:
		return ast.CmpLt, 2, nil, true
	case ast.IfICmpGe:
		return ast.CmpGe, 2, nil, true
	case ast.IfICmpGt:
		return ast.CmpGt, 2, nil, true
	case ast.IfICmpLe:
		return ast.CmpLe, 2, nil, true
	case ast.IfNull:
		return ast.CmpEq, 1, null, true
	case ast.IfNonNull:
		return ast.CmpNe, 1, null, true
	}
	return 0, 0, nil, false
}

func hasLabelOperand(e *ast.Expression) bool {
	_, ok := e.Operand.(*ast.Label)
	return ok
}
