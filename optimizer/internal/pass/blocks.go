package pass

import "github.com/wippyai/flowopt/ast"

// SplitToMovableBlocks partitions the body of block into basic blocks and
// sets its entry goto. Labels for blocks that do not start with one are
// taken from labels.
//
// A new basic block starts before every label and try region, and after
// every jump. A block that would fall into its successor is closed with an
// explicit goto, so the resulting blocks can be reordered freely.
func SplitToMovableBlocks(block *ast.Block, labels *ast.LabelGenerator) {
	body := block.Body

	var entry *ast.Label
	if len(body) > 0 {
		entry, _ = body[0].(*ast.Label)
	}
	if entry == nil {
		entry = labels.Next()
	}

	current := &ast.BasicBlock{Body: []ast.Node{entry}}
	blocks := []ast.Node{current}

	if len(body) > 0 {
		if body[0] != ast.Node(entry) {
			current.Body = append(current.Body, body[0])
		}

		for i := 1; i < len(body); i++ {
			last, node := body[i-1], body[i]

			if !startsBasicBlock(last, node) {
				current.Body = append(current.Body, node)
				continue
			}

			label, isLabel := node.(*ast.Label)
			if !isLabel {
				label = labels.Next()
			}

			if !last.IsUnconditionalControlFlow() {
				current.Body = append(current.Body, ast.NewExpression(ast.Goto, label))
			}

			current = &ast.BasicBlock{Body: []ast.Node{label}}
			blocks = append(blocks, current)

			if !isLabel {
				current.Body = append(current.Body, node)
			}
		}
	}

	block.Body = blocks
	block.EntryGoto = ast.NewExpression(ast.Goto, entry)
}

func startsBasicBlock(last, node ast.Node) bool {
	switch node.(type) {
	case *ast.Label, *ast.TryCatchBlock:
		return true
	}
	return last.IsConditionalControlFlow() || last.IsUnconditionalControlFlow()
}
