package pass

import (
	"fmt"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/errors"
)

// VerifyBasicBlocks checks that block has been split into basic blocks:
// the body holds only BasicBlocks, each starting with its own label, with
// control flow allowed only at the tail, and the entry goto targets the
// first block.
func VerifyBasicBlocks(block *ast.Block) error {
	entry := block.EntryLabel()
	if entry == nil {
		return invalidBlock(nil, "missing entry goto")
	}

	seen := make(map[*ast.Label]bool, len(block.Body))
	for i, n := range block.Body {
		path := []string{fmt.Sprintf("body[%d]", i)}

		bb, ok := n.(*ast.BasicBlock)
		if !ok {
			return invalidBlock(path, fmt.Sprintf("expected basic block, got %T", n))
		}

		label := bb.Label()
		if label == nil {
			return invalidBlock(path, "basic block does not start with a label")
		}
		if seen[label] {
			return invalidBlock(path, fmt.Sprintf("label %s starts more than one basic block", label.Name))
		}
		seen[label] = true
		if i == 0 && label != entry {
			return invalidBlock(path, fmt.Sprintf("entry goto targets %s, first block is %s", entry.Name, label.Name))
		}

		end := interiorEnd(bb.Body)
		for j := 1; j < end; j++ {
			node := bb.Body[j]
			if _, ok := node.(*ast.Label); ok {
				return invalidBlock(append(path, fmt.Sprintf("body[%d]", j)), "interior label")
			}
			if node.IsConditionalControlFlow() || node.IsUnconditionalControlFlow() {
				return invalidBlock(append(path, fmt.Sprintf("body[%d]", j)), "interior control flow "+node.String())
			}
		}
	}
	return nil
}

// interiorEnd returns the index where the trailing jumps of a basic block
// body begin: a final jump, optionally preceded by the conditional jump it
// falls through from.
func interiorEnd(body []ast.Node) int {
	end := len(body)
	if end > 1 && isControlFlow(body[end-1]) {
		end--
		if end > 1 && body[end-1].IsConditionalControlFlow() && ast.Match(body[end], ast.Goto) {
			end--
		}
	}
	return end
}

func isControlFlow(n ast.Node) bool {
	return n.IsConditionalControlFlow() || n.IsUnconditionalControlFlow()
}

func invalidBlock(path []string, detail string) error {
	return errors.MalformedInput(errors.PhaseBasicBlocks, path, detail)
}
