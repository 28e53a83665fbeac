package ast

// Inspect traverses the tree rooted at n in pre-order. If fn returns false
// the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, fn)
	}
}

// Blocks returns root (when it is a Block) and every Block nested below it,
// in pre-order.
func Blocks(root Node) []*Block {
	var out []*Block
	Inspect(root, func(n Node) bool {
		switch v := n.(type) {
		case *Block:
			out = append(out, v)
		case *Expression:
			// Expressions never own blocks.
			return false
		}
		return true
	})
	return out
}

// Expressions returns every Expression in the tree, including arguments of
// other expressions, in pre-order.
func Expressions(root Node) []*Expression {
	var out []*Expression
	Inspect(root, func(n Node) bool {
		if e, ok := n.(*Expression); ok {
			out = append(out, e)
		}
		return true
	})
	return out
}

// CollectRanges returns every debug range attached anywhere in the tree.
func CollectRanges(root Node) []Range {
	var out []Range
	Inspect(root, func(n Node) bool {
		switch v := n.(type) {
		case *Expression:
			out = append(out, v.Ranges...)
		case *Block:
			out = append(out, v.Ranges...)
		}
		return true
	})
	return out
}
