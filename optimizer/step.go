package optimizer

import (
	"strings"

	"github.com/wippyai/flowopt/errors"
)

// Step names one stage of the pipeline. Steps run in declaration order.
type Step uint8

const (
	// StepNone never matches a pipeline stage, so AbortBefore: StepNone
	// runs the whole pipeline.
	StepNone Step = iota
	StepRemoveRedundantCode
	StepReduceBranchInstructionSet
	StepInlineVariables
	StepCopyPropagation
	StepSplitToMovableBlocks
	StepTypeInference
	stepCount
)

var stepNames = [stepCount]string{
	StepNone:                       "none",
	StepRemoveRedundantCode:        "remove-redundant-code",
	StepReduceBranchInstructionSet: "reduce-branch-instruction-set",
	StepInlineVariables:            "inline-variables",
	StepCopyPropagation:            "copy-propagation",
	StepSplitToMovableBlocks:       "split-to-movable-blocks",
	StepTypeInference:              "type-inference",
}

var stepPhases = [stepCount]errors.Phase{
	StepRemoveRedundantCode:        errors.PhaseRedundantCode,
	StepReduceBranchInstructionSet: errors.PhaseBranchReduction,
	StepInlineVariables:            errors.PhaseInlining,
	StepCopyPropagation:            errors.PhaseCopyPropagation,
	StepSplitToMovableBlocks:       errors.PhaseBasicBlocks,
	StepTypeInference:              errors.PhaseTypeInference,
}

func (s Step) String() string {
	if s < stepCount {
		return stepNames[s]
	}
	return "unknown"
}

// Phase returns the error phase reported for failures in s.
func (s Step) Phase() errors.Phase {
	if s < stepCount {
		return stepPhases[s]
	}
	return ""
}

// Steps returns the pipeline stages in execution order.
func Steps() []Step {
	out := make([]Step, 0, stepCount-1)
	for s := StepRemoveRedundantCode; s < stepCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseStep resolves a step by its String form. Matching ignores case, and
// underscores are accepted in place of dashes.
func ParseStep(name string) (Step, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for s, n := range stepNames {
		if n == key {
			return Step(s), nil
		}
	}
	return StepNone, errors.New(errors.PhaseLoad, errors.KindNotFound).
		Value(name).
		Detail("unknown step %q", name).
		Build()
}
