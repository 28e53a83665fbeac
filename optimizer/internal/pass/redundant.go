package pass

import (
	"fmt"
	"maps"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/errors"
)

// RemoveRedundantCode rewrites every block body under root, dropping no-ops,
// fallthrough jumps, variable pops and unreferenced labels,
// then makes every consumer of a duplicated value read the producer directly.
//
// refs must be the census of root taken before the call; it is copied, not
// consumed. A pop whose argument
// is not a plain variable load is reported as malformed input; the tree may
// be partially rewritten in that case and must not be processed further.
func RemoveRedundantCode(root *ast.Block, refs LabelReferences) error {
	refs = maps.Clone(refs)
	if refs == nil {
		refs = LabelReferences{}
	}
	for i, block := range ast.Blocks(root) {
		if err := removeRedundantNodes(block, refs, i); err != nil {
			return err
		}
	}
	removeDuplicates(root)
	return nil
}

type bodyBuilder struct {
	block   *ast.Block
	body    []ast.Node
	pending []ast.Range
}

func (b *bodyBuilder) last() ast.Node {
	if len(b.body) == 0 {
		return nil
	}
	return b.body[len(b.body)-1]
}

func (b *bodyBuilder) keep(n ast.Node) {
	if e, ok := n.(*ast.Expression); ok && len(b.pending) > 0 {
		e.AddRanges(b.pending...)
		b.pending = nil
	}
	b.body = append(b.body, n)
}

// drop discards n, carrying its ranges to a surviving expression.
func (b *bodyBuilder) drop(n ast.Node) {
	b.pending = append(b.pending, ast.CollectRanges(n)...)
}

func (b *bodyBuilder) finish() {
	if len(b.pending) > 0 {
		for i := len(b.body) - 1; i >= 0; i-- {
			if e, ok := b.body[i].(*ast.Expression); ok {
				e.AddRanges(b.pending...)
				b.pending = nil
				break
			}
		}
	}
	if len(b.pending) > 0 {
		b.block.Ranges = append(b.block.Ranges, b.pending...)
		b.pending = nil
	}
	b.block.Body = b.body
}

func removeRedundantNodes(block *ast.Block, refs LabelReferences, blockIndex int) error {
	b := &bodyBuilder{
		block: block,
		body:  make([]ast.Node, 0, len(block.Body)),
	}

	for i, node := range block.Body {
		if label, ok := node.(*ast.Label); ok {
			// Neighbours are judged on the rebuilt body so that jumps
			// exposed by earlier deletions collapse in the same run.
			for {
				target, ok := ast.MatchOperand[*ast.Label](b.last(), ast.Goto)
				if !ok || target != label {
					break
				}
				jump := b.last()
				b.body = b.body[:len(b.body)-1]
				b.drop(jump)
				refs[label]--
			}
			if refs[label] > 0 {
				b.keep(label)
			}
			continue
		}

		if ast.Match(node, ast.Nop) {
			b.drop(node)
			continue
		}

		if ast.Match(node, ast.Pop) {
			v, err := popVariable(node.(*ast.Expression), blockIndex, i)
			if err != nil {
				return err
			}
			if sv, ok := ast.MatchOperand[*ast.Variable](b.last(), ast.Store); ok && sv == v {
				store := b.last().(*ast.Expression)
				store.AddRanges(ast.CollectRanges(node)...)
			} else {
				b.drop(node)
			}
			continue
		}

		b.keep(node)
	}

	b.finish()
	return nil
}

func popVariable(pop *ast.Expression, blockIndex, nodeIndex int) (*ast.Variable, error) {
	arg, ok := ast.MatchArgument(pop, ast.Pop)
	if ok && len(arg.Arguments) == 0 {
		if v, ok := ast.MatchOperand[*ast.Variable](arg, ast.Load); ok {
			return v, nil
		}
	}
	return nil, errors.MalformedInput(
		errors.PhaseRedundantCode,
		[]string{fmt.Sprintf("block[%d]", blockIndex), fmt.Sprintf("body[%d]", nodeIndex)},
		fmt.Sprintf("pop must consume a plain variable load, got %s", pop),
	)
}

// removeDuplicates replaces every Dup argument with the duplicated
// expression. The Dup's ranges move onto the replacement.
func removeDuplicates(root ast.Node) {
	for _, e := range ast.Expressions(root) {
		for i, arg := range e.Arguments {
			for arg.Code == ast.Dup && len(arg.Arguments) == 1 {
				child := arg.Arguments[0]
				child.AddRanges(arg.Ranges...)
				arg.Ranges = nil
				arg = child
			}
			e.Arguments[i] = arg
		}
	}
}
