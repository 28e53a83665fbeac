package optimizer

import (
	"go.uber.org/zap"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/errors"
	"github.com/wippyai/flowopt/optimizer/internal/pass"
)

// Config configures an Optimizer.
type Config struct {
	// Inliner runs variable inlining and copy propagation.
	// Defaults to NopInliner.
	Inliner Inliner
	// TypeAnalyzer runs type inference. Defaults to NopTypeAnalyzer.
	TypeAnalyzer TypeAnalyzer
	// Logger overrides the package logger.
	Logger *zap.Logger
	// OnStep is called after every completed step with the method as it
	// stands at that point.
	OnStep func(Step, *ast.Method)
	// AbortBefore stops the pipeline right before the given step.
	// The method is left as the previous step produced it.
	AbortBefore Step
	// Verify checks basic block well-formedness after block construction.
	Verify bool
}

// Optimizer runs the control-flow normalization pipeline.
//
// An Optimizer owns the generator for synthesized block labels, so names
// stay unique across every method it processes. It is not safe for
// concurrent use; use one Optimizer per goroutine.
type Optimizer struct {
	inliner     Inliner
	analyzer    TypeAnalyzer
	logger      *zap.Logger
	onStep      func(Step, *ast.Method)
	labels      *ast.LabelGenerator
	abortBefore Step
	verify      bool
}

// New creates an optimizer with the given config.
func New(cfg Config) *Optimizer {
	o := &Optimizer{
		inliner:     cfg.Inliner,
		analyzer:    cfg.TypeAnalyzer,
		logger:      cfg.Logger,
		onStep:      cfg.OnStep,
		labels:      ast.NewLabelGenerator(),
		abortBefore: cfg.AbortBefore,
		verify:      cfg.Verify,
	}
	if o.inliner == nil {
		o.inliner = NopInliner{}
	}
	if o.analyzer == nil {
		o.analyzer = NopTypeAnalyzer{}
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// Optimize runs the pipeline over m with a fresh Optimizer.
func Optimize(m *ast.Method, cfg Config) error {
	return New(cfg).Optimize(m)
}

type stepFunc func(o *Optimizer, body *ast.Block, log *zap.Logger) error

type stepDescriptor struct {
	run  stepFunc
	step Step
	// external steps delegate to a collaborator; their errors are wrapped
	// rather than reported as malformed input.
	external bool
}

var pipeline = [...]stepDescriptor{
	{step: StepRemoveRedundantCode, run: removeRedundantCode},
	{step: StepReduceBranchInstructionSet, run: reduceBranchInstructionSet},
	{step: StepInlineVariables, run: inlineVariables, external: true},
	{step: StepCopyPropagation, run: copyPropagation, external: true},
	{step: StepSplitToMovableBlocks, run: splitToMovableBlocks},
	{step: StepTypeInference, run: typeInference, external: true},
}

// Optimize rewrites m in place.
//
// Every step mutates the shared tree. When a step fails the method is left
// partially rewritten and must be discarded. Failures of the built-in
// passes are *errors.Error values of kind KindMalformedInput whose path
// starts with the method name; collaborator failures are wrapped with
// KindCollaborator.
func (o *Optimizer) Optimize(m *ast.Method) error {
	if m == nil || m.Body == nil {
		return errors.InvalidInput(errors.PhaseLoad, "method has no body")
	}

	log := o.logger.With(zap.String("method", m.Name))

	for _, d := range pipeline {
		if d.step == o.abortBefore {
			log.Debug("pipeline aborted", zap.Stringer("before", d.step))
			return nil
		}

		if err := d.run(o, m.Body, log); err != nil {
			log.Debug("step failed", zap.Stringer("step", d.step), zap.Error(err))
			return o.stepError(m, d, err)
		}

		log.Debug("step done", zap.Stringer("step", d.step))
		if o.onStep != nil {
			o.onStep(d.step, m)
		}
	}
	return nil
}

func (o *Optimizer) stepError(m *ast.Method, d stepDescriptor, err error) error {
	if d.external {
		e := errors.Collaborator(d.step.Phase(), d.step.String(), err)
		e.Path = []string{m.Name}
		return e
	}
	if e, ok := err.(*errors.Error); ok {
		return e.WithPrefix(m.Name)
	}
	return errors.Wrap(d.step.Phase(), errors.KindMalformedInput, err, m.Name)
}

func removeRedundantCode(_ *Optimizer, body *ast.Block, log *zap.Logger) error {
	refs := pass.CountLabelReferences(body)
	log.Debug("label census", zap.Int("labels", len(refs)))
	return pass.RemoveRedundantCode(body, refs)
}

func reduceBranchInstructionSet(_ *Optimizer, body *ast.Block, log *zap.Logger) error {
	var total pass.BranchStats
	for _, b := range ast.Blocks(body) {
		s := pass.ReduceBranchInstructionSet(b)
		total.Rewritten += s.Rewritten
		total.Fused += s.Fused
		total.Skipped += s.Skipped
	}
	if total.Skipped > 0 {
		log.Debug("unexpected branch shapes left untouched", zap.Int("skipped", total.Skipped))
	}
	log.Debug("branches reduced",
		zap.Int("rewritten", total.Rewritten),
		zap.Int("fused", total.Fused))
	return nil
}

func inlineVariables(o *Optimizer, body *ast.Block, _ *zap.Logger) error {
	return o.inliner.InlineAllVariables(body)
}

func copyPropagation(o *Optimizer, body *ast.Block, _ *zap.Logger) error {
	return o.inliner.CopyPropagation(body)
}

func splitToMovableBlocks(o *Optimizer, body *ast.Block, log *zap.Logger) error {
	blocks := ast.Blocks(body)
	for _, b := range blocks {
		pass.SplitToMovableBlocks(b, o.labels)
	}
	log.Debug("basic blocks built", zap.Int("blocks", len(blocks)))

	if !o.verify {
		return nil
	}
	for _, b := range blocks {
		if err := pass.VerifyBasicBlocks(b); err != nil {
			return err
		}
	}
	return nil
}

func typeInference(o *Optimizer, body *ast.Block, _ *zap.Logger) error {
	return o.analyzer.Run(body)
}
