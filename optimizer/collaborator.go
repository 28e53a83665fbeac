package optimizer

import "github.com/wippyai/flowopt/ast"

// Inliner performs variable inlining and copy propagation over a method
// body. Both calls receive the whole tree and may rewrite it in place.
type Inliner interface {
	InlineAllVariables(body *ast.Block) error
	CopyPropagation(body *ast.Block) error
}

// TypeAnalyzer infers expression types over a method body, typically by
// filling Expression.InferredType.
type TypeAnalyzer interface {
	Run(body *ast.Block) error
}

// TypeAnalyzerFunc adapts a function to the TypeAnalyzer interface.
type TypeAnalyzerFunc func(body *ast.Block) error

// Run calls f(body).
func (f TypeAnalyzerFunc) Run(body *ast.Block) error {
	return f(body)
}

// NopInliner leaves the tree untouched.
type NopInliner struct{}

func (NopInliner) InlineAllVariables(*ast.Block) error { return nil }
func (NopInliner) CopyPropagation(*ast.Block) error    { return nil }

// NopTypeAnalyzer leaves the tree untouched.
type NopTypeAnalyzer struct{}

func (NopTypeAnalyzer) Run(*ast.Block) error { return nil }
