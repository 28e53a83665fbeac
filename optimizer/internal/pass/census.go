// Package pass implements the control-flow normalization passes run by the
// optimizer: label census, redundant code elimination, branch instruction
// reduction and basic block construction.
package pass

import "github.com/wippyai/flowopt/ast"

// LabelReferences maps each label to the number of branch expressions
// targeting it. Keys are compared by pointer identity.
type LabelReferences map[*ast.Label]int

// Count returns the number of references to l.
func (r LabelReferences) Count(l *ast.Label) int {
	return r[l]
}

// CountLabelReferences counts incoming branch references for every label in
// the tree. A label's own definition is not a reference; a switch contributes
// one reference per target entry.
func CountLabelReferences(root ast.Node) LabelReferences {
	refs := make(LabelReferences)
	for _, e := range ast.Expressions(root) {
		if !e.IsBranch() {
			continue
		}
		for _, target := range e.BranchTargets() {
			refs[target]++
		}
	}
	return refs
}
