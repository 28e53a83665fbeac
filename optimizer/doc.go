// Package optimizer normalizes the control flow of a freshly lowered method
// tree.
//
// The pipeline runs these steps in order, each rewriting the tree in place:
//
//   - StepRemoveRedundantCode drops no-ops, fallthrough jumps, pops of
//     just-stored variables and unreferenced labels, and removes stack
//     duplication from argument positions
//   - StepReduceBranchInstructionSet turns every instruction-set specific
//     conditional jump into an IfTrue over a boolean comparison
//   - StepInlineVariables and StepCopyPropagation call the Inliner
//   - StepSplitToMovableBlocks partitions every block into labelled basic
//     blocks that end in explicit jumps
//   - StepTypeInference calls the TypeAnalyzer
//
// Config.AbortBefore stops the pipeline before a step, which is useful to
// inspect intermediate trees:
//
//	err := optimizer.Optimize(method, optimizer.Config{
//		AbortBefore: optimizer.StepSplitToMovableBlocks,
//	})
package optimizer
