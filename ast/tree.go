// Package ast provides the per-method tree rewritten by the control-flow
// normalization passes.
//
// A method body is a Block holding a flat list of Nodes: Labels marking jump
// targets, Expressions (one per lowered instruction, with argument
// sub-expressions), nested Blocks and TryCatchBlocks. After basic block
// construction a Block body holds only BasicBlocks.
//
// Labels and Variables are compared by identity. Two distinct *Label values
// are different targets even when their names are equal.
package ast

// Node represents a node in the method tree.
type Node interface {
	// IsConditionalControlFlow returns true if the node may jump or fall through.
	IsConditionalControlFlow() bool
	// IsUnconditionalControlFlow returns true if execution never falls through the node.
	IsUnconditionalControlFlow() bool
	// Children returns the direct child nodes, or nil for leaves.
	Children() []Node
	String() string
}

// Range is a half-open byte offset interval in the original instruction stream.
type Range struct {
	Start int
	End   int
}

// Variable is a local slot. Matching is by identity.
type Variable struct {
	Name  string
	Index int
}

// Label is a jump target.
type Label struct {
	Name string
}

func (l *Label) IsConditionalControlFlow() bool   { return false }
func (l *Label) IsUnconditionalControlFlow() bool { return false }
func (l *Label) Children() []Node                 { return nil }

// Expression is a single operation with its operand and arguments.
//
// The operand depends on the code: *Label for jumps, []*Label for switches,
// *Variable for Load and Store, a constant (int64, float64 or string) for
// LdC, nil otherwise.
type Expression struct {
	Operand      any
	Arguments    []*Expression
	Ranges       []Range
	InferredType string
	Code         Code
}

// NewExpression creates an expression with the given code, operand and arguments.
func NewExpression(code Code, operand any, args ...*Expression) *Expression {
	return &Expression{Code: code, Operand: operand, Arguments: args}
}

func (e *Expression) IsConditionalControlFlow() bool {
	return e.Code.IsConditionalControlFlow()
}

func (e *Expression) IsUnconditionalControlFlow() bool {
	return e.Code.IsUnconditionalControlFlow()
}

func (e *Expression) Children() []Node {
	if len(e.Arguments) == 0 {
		return nil
	}
	out := make([]Node, len(e.Arguments))
	for i, a := range e.Arguments {
		out[i] = a
	}
	return out
}

// IsBranch reports whether the expression jumps to labels.
func (e *Expression) IsBranch() bool {
	return e.Code.IsBranch()
}

// BranchTargets returns the labels the expression can jump to.
func (e *Expression) BranchTargets() []*Label {
	if !e.Code.IsBranch() {
		return nil
	}
	switch op := e.Operand.(type) {
	case *Label:
		return []*Label{op}
	case []*Label:
		return op
	}
	return nil
}

// AddRanges appends debug ranges. Duplicates are kept.
func (e *Expression) AddRanges(rs ...Range) {
	e.Ranges = append(e.Ranges, rs...)
}

// Block is a method body or a nested lexical region.
type Block struct {
	// EntryGoto jumps to the first basic block once the body is split.
	EntryGoto *Expression
	Body      []Node
	// Ranges keeps debug ranges of deleted instructions that had no
	// surviving expression in the same body to move to.
	Ranges []Range
}

func (b *Block) IsConditionalControlFlow() bool   { return false }
func (b *Block) IsUnconditionalControlFlow() bool { return false }

func (b *Block) Children() []Node {
	if b.EntryGoto == nil {
		return b.Body
	}
	out := make([]Node, 0, len(b.Body)+1)
	out = append(out, b.EntryGoto)
	return append(out, b.Body...)
}

// EntryLabel returns the label targeted by the entry goto, if any.
func (b *Block) EntryLabel() *Label {
	if b.EntryGoto == nil {
		return nil
	}
	l, _ := b.EntryGoto.Operand.(*Label)
	return l
}

// BasicBlock is a straight-line run of nodes starting with a Label.
type BasicBlock struct {
	Body []Node
}

func (b *BasicBlock) IsConditionalControlFlow() bool   { return false }
func (b *BasicBlock) IsUnconditionalControlFlow() bool { return false }
func (b *BasicBlock) Children() []Node                 { return b.Body }

// Label returns the leading label, or nil for a malformed block.
func (b *BasicBlock) Label() *Label {
	if len(b.Body) == 0 {
		return nil
	}
	l, _ := b.Body[0].(*Label)
	return l
}

// CatchBlock is a handler region of a TryCatchBlock.
type CatchBlock struct {
	Variable       *Variable
	Body           *Block
	ExceptionTypes []string
}

// TryCatchBlock is a protected region with its handlers.
type TryCatchBlock struct {
	Try     *Block
	Finally *Block
	Catches []*CatchBlock
}

func (t *TryCatchBlock) IsConditionalControlFlow() bool   { return false }
func (t *TryCatchBlock) IsUnconditionalControlFlow() bool { return false }

func (t *TryCatchBlock) Children() []Node {
	var out []Node
	if t.Try != nil {
		out = append(out, t.Try)
	}
	for _, c := range t.Catches {
		if c.Body != nil {
			out = append(out, c.Body)
		}
	}
	if t.Finally != nil {
		out = append(out, t.Finally)
	}
	return out
}

// Method is one method body ready for optimization.
type Method struct {
	Body *Block
	Name string
}
