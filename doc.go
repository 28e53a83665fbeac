// Package flowopt normalizes the control flow of decompiled method bodies.
//
// A method arrives as a tree of expressions lifted from stack bytecode, still
// carrying the raw conditional jumps, switch forms, pops, dups and nops of
// the instruction set. The optimizer rewrites it into a small canonical form
// and then partitions every block into labeled basic blocks that later
// structuring stages can move freely.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	flowopt/
//	├── ast/             Method tree: labels, variables, expressions, regions
//	├── optimizer/       Step pipeline, collaborator interfaces, logging
//	│   └── internal/pass/  Redundant code, branch reduction, basic blocks
//	├── listing/         Textual S-expression format for method trees
//	├── errors/          Structured error types for debugging
//	└── cmd/flowopt/     Command line driver with watch and interactive modes
//
// # Quick Start
//
// Parse a listing, run the pipeline and print the result:
//
//	prog, err := listing.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	o := optimizer.New(optimizer.Config{Verify: true})
//	for _, m := range prog.Methods {
//	    if err := o.Optimize(m); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	fmt.Print(listing.Format(prog))
//
// # Pipeline
//
// Steps run in a fixed order:
//
//   - remove-redundant-code: drops nops, folds pops and dups, prunes labels
//   - reduce-branch-instruction-set: rewrites raw jumps into iftrue and switch
//   - inline-variables, copy-propagation: delegated to an Inliner
//   - split-to-movable-blocks: builds basic blocks with explicit fallthrough
//   - type-inference: delegated to a TypeAnalyzer
//
// Config.AbortBefore stops the pipeline ahead of a step, leaving the tree as
// the previous steps produced it.
//
// # Thread Safety
//
// An Optimizer owns the label generator shared by the methods it processes
// and must not be used from several goroutines at once. Distinct Optimizers
// and distinct methods are independent.
package flowopt
