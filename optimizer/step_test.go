package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/flowopt/errors"
)

func TestSteps(t *testing.T) {
	assert.Equal(t, []Step{
		StepRemoveRedundantCode,
		StepReduceBranchInstructionSet,
		StepInlineVariables,
		StepCopyPropagation,
		StepSplitToMovableBlocks,
		StepTypeInference,
	}, Steps())

	for i, d := range pipeline {
		assert.Equal(t, Steps()[i], d.step, "pipeline order")
	}
}

func TestParseStep(t *testing.T) {
	for _, s := range append(Steps(), StepNone) {
		got, err := ParseStep(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStep("  Split_To_Movable_Blocks ")
	require.NoError(t, err)
	assert.Equal(t, StepSplitToMovableBlocks, got)

	_, err = ParseStep("unroll-loops")
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound})
	assert.Contains(t, err.Error(), `"unroll-loops"`)
}

func TestStepPhase(t *testing.T) {
	tests := map[Step]errors.Phase{
		StepRemoveRedundantCode:        errors.PhaseRedundantCode,
		StepReduceBranchInstructionSet: errors.PhaseBranchReduction,
		StepInlineVariables:            errors.PhaseInlining,
		StepCopyPropagation:            errors.PhaseCopyPropagation,
		StepSplitToMovableBlocks:       errors.PhaseBasicBlocks,
		StepTypeInference:              errors.PhaseTypeInference,
	}
	for s, want := range tests {
		assert.Equal(t, want, s.Phase(), s.String())
	}
	assert.Equal(t, "unknown", Step(200).String())
	assert.Empty(t, Step(200).Phase())
}
