// Package errors provides structured error types for the flowopt module.
//
// Errors are categorized by Phase (the pass or tool stage that failed) and
// Kind (error category). The Error type carries the node path inside the
// method tree, an optional offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRedundantCode, errors.KindMalformedInput).
//		Path("block[0]", "body[3]").
//		Detail("pop must consume a plain variable load").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MalformedInput(errors.PhaseBasicBlocks, path, "interior label")
//	err := errors.Collaborator(errors.PhaseInlining, "inline variables", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only.
package errors
