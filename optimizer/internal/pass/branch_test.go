package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/flowopt/ast"
)

func TestReduceBranchInstructionSet_Jumps(t *testing.T) {
	a, b := local("a"), local("b")
	target := lbl("T")

	tests := []struct {
		code ast.Code
		args []*ast.Expression
		want string
	}{
		{ast.IfEq, []*ast.Expression{load(a)}, "(iftrue $T (logical_not (load $a)))"},
		{ast.IfNe, []*ast.Expression{load(a)}, "(iftrue $T (load $a))"},
		{ast.IfLt, []*ast.Expression{load(a)}, "(iftrue $T (cmp_lt (load $a) (ldc 0)))"},
		{ast.IfGe, []*ast.Expression{load(a)}, "(iftrue $T (cmp_ge (load $a) (ldc 0)))"},
		{ast.IfGt, []*ast.Expression{load(a)}, "(iftrue $T (cmp_gt (load $a) (ldc 0)))"},
		{ast.IfLe, []*ast.Expression{load(a)}, "(iftrue $T (cmp_le (load $a) (ldc 0)))"},
		{ast.IfICmpEq, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_eq (load $a) (load $b)))"},
		{ast.IfICmpNe, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_ne (load $a) (load $b)))"},
		{ast.IfICmpLt, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_lt (load $a) (load $b)))"},
		{ast.IfICmpGe, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_ge (load $a) (load $b)))"},
		{ast.IfICmpGt, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_gt (load $a) (load $b)))"},
		{ast.IfICmpLe, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_le (load $a) (load $b)))"},
		{ast.IfACmpEq, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_eq (load $a) (load $b)))"},
		{ast.IfACmpNe, []*ast.Expression{load(a), load(b)}, "(iftrue $T (cmp_ne (load $a) (load $b)))"},
		{ast.IfNull, []*ast.Expression{load(a)}, "(iftrue $T (cmp_eq (load $a) (aconst_null)))"},
		{ast.IfNonNull, []*ast.Expression{load(a)}, "(iftrue $T (cmp_ne (load $a) (aconst_null)))"},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			b := block(ex(tt.code, target, tt.args...))

			stats := ReduceBranchInstructionSet(b)

			require.Len(t, b.Body, 1)
			assert.Equal(t, tt.want, b.Body[0].String())
			assert.Equal(t, BranchStats{Rewritten: 1}, stats)

			op, ok := ast.MatchOperand[*ast.Label](b.Body[0], ast.IfTrue)
			require.True(t, ok)
			assert.Same(t, target, op)
		})
	}
}

func TestReduceBranchInstructionSet_FusesCompares(t *testing.T) {
	compares := []ast.Code{ast.LCmp, ast.FCmpL, ast.FCmpG, ast.DCmpL, ast.DCmpG}
	zeroTests := map[ast.Code]string{
		ast.IfEq: "cmp_eq",
		ast.IfNe: "cmp_ne",
		ast.IfLt: "cmp_lt",
		ast.IfGe: "cmp_ge",
		ast.IfGt: "cmp_gt",
		ast.IfLe: "cmp_le",
	}

	for _, cmp := range compares {
		for test, cond := range zeroTests {
			t.Run(cmp.String()+"/"+test.String(), func(t *testing.T) {
				target := lbl("T")
				b := block(
					at(ex(cmp, nil, load(local("a")), load(local("b"))), 0),
					at(ex(test, target), 1),
				)

				stats := ReduceBranchInstructionSet(b)

				assert.Equal(t, BranchStats{Fused: 1}, stats)
				assert.Equal(t,
					"(iftrue $T ("+cond+" (load $a) (load $b) (range 0 1) (range 1 2)))",
					render(b.Body))
			})
		}
	}
}

func TestReduceBranchInstructionSet_CompareThenBranch(t *testing.T) {
	a, b := local("a"), local("b")
	target := lbl("target")
	body := block(ex(ast.LCmp, nil, load(a), load(b)), ex(ast.IfLe, target))

	ReduceBranchInstructionSet(body)

	require.Len(t, body.Body, 1)
	cond, ok := ast.MatchArgument(body.Body[0], ast.IfTrue)
	require.True(t, ok)
	assert.Equal(t, ast.CmpLe, cond.Code)
	require.Len(t, cond.Arguments, 2)
	assert.True(t, ast.MatchLoadOf(cond.Arguments[0], a))
	assert.True(t, ast.MatchLoadOf(cond.Arguments[1], b))
	assert.Same(t, target, body.Body[0].(*ast.Expression).Operand)
}

func TestReduceBranchInstructionSet_NullTest(t *testing.T) {
	x := local("x")
	target := lbl("target")
	body := block(ex(ast.IfNull, target, load(x)))

	ReduceBranchInstructionSet(body)

	assert.Equal(t, "(iftrue $target (cmp_eq (load $x) (aconst_null)))", render(body.Body))
}

func TestReduceBranchInstructionSet_Ranges(t *testing.T) {
	a := local("a")

	t.Run("jump ranges move to the condition", func(t *testing.T) {
		b := block(at(ex(ast.IfLe, lbl("T"), load(a)), 5))
		ReduceBranchInstructionSet(b)
		assert.Equal(t, "(iftrue $T (cmp_le (load $a) (ldc 0) (range 5 6)))", render(b.Body))
	})

	t.Run("ifne keeps its ranges", func(t *testing.T) {
		b := block(at(ex(ast.IfNe, lbl("T"), load(a)), 5))
		ReduceBranchInstructionSet(b)
		assert.Equal(t, "(iftrue $T (load $a) (range 5 6))", render(b.Body))
	})

	t.Run("switch ranges move to the discriminant", func(t *testing.T) {
		sw := at(ex(ast.TableSwitch, []*ast.Label{lbl("A"), lbl("B")}, load(local("k"))), 3)
		b := block(sw)

		stats := ReduceBranchInstructionSet(b)

		assert.Equal(t, "(tableswitch (targets $A $B) (load $k (range 3 4)))", render(b.Body))
		assert.Empty(t, sw.Ranges)
		assert.Equal(t, BranchStats{}, stats)
	})

	t.Run("lookupswitch without discriminant keeps ranges", func(t *testing.T) {
		sw := at(ex(ast.LookupSwitch, []*ast.Label{lbl("A")}), 3)
		ReduceBranchInstructionSet(block(sw))
		assert.Equal(t, []ast.Range{{Start: 3, End: 4}}, sw.Ranges)
	})
}

func TestReduceBranchInstructionSet_UnexpectedShapesUntouched(t *testing.T) {
	a, b := local("a"), local("b")

	tests := []struct {
		name  string
		body  []ast.Node
		stats BranchStats
	}{
		{
			name:  "compare at end of body",
			body:  []ast.Node{ex(ast.LCmp, nil, load(a), load(b))},
			stats: BranchStats{Skipped: 1},
		},
		{
			name:  "compare followed by goto",
			body:  []ast.Node{ex(ast.DCmpG, nil, load(a), load(b)), jump(lbl("T"))},
			stats: BranchStats{Skipped: 1},
		},
		{
			name:  "compare with one argument",
			body:  []ast.Node{ex(ast.FCmpL, nil, load(a)), ex(ast.IfEq, lbl("T"))},
			stats: BranchStats{Skipped: 2},
		},
		{
			name:  "zero test without argument",
			body:  []ast.Node{ex(ast.IfGt, lbl("T"))},
			stats: BranchStats{Skipped: 1},
		},
		{
			name:  "two-operand compare with one argument",
			body:  []ast.Node{ex(ast.IfICmpLt, lbl("T"), load(a))},
			stats: BranchStats{Skipped: 1},
		},
		{
			name:  "null test without label",
			body:  []ast.Node{ex(ast.IfNull, nil, load(a))},
			stats: BranchStats{Skipped: 1},
		},
		{
			name:  "ifne without argument",
			body:  []ast.Node{ex(ast.IfNe, lbl("T"))},
			stats: BranchStats{Skipped: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := block(tt.body...)
			before := b.String()

			stats := ReduceBranchInstructionSet(b)

			assert.Equal(t, before, b.String())
			assert.Equal(t, tt.stats, stats)
		})
	}
}

func TestReduceBranchInstructionSet_CompareBeforeZeroTestWithArgument(t *testing.T) {
	a, c := local("a"), local("c")
	// The zero test already has its own operand, so the compare stands alone.
	b := block(ex(ast.LCmp, nil, load(a), load(a)), ex(ast.IfLe, lbl("T"), load(c)))

	stats := ReduceBranchInstructionSet(b)

	assert.Equal(t, lines(
		"(lcmp (load $a) (load $a))",
		"(iftrue $T (cmp_le (load $c) (ldc 0)))",
	), render(b.Body))
	assert.Equal(t, BranchStats{Rewritten: 1, Skipped: 1}, stats)
}

func TestReduceBranchInstructionSet_NotRecursive(t *testing.T) {
	inner := block(ex(ast.IfNull, lbl("H"), load(local("x"))))
	b := block(&ast.TryCatchBlock{Try: inner}, ex(ast.IfEq, lbl("T"), load(local("y"))))

	ReduceBranchInstructionSet(b)

	assert.Equal(t, "(ifnull $H (load $x))", render(inner.Body))
	assert.Equal(t, "(iftrue $T (logical_not (load $y)))", b.Body[1].String())
}

func TestReduceBranchInstructionSet_Coverage(t *testing.T) {
	root := fixture()
	require.NoError(t, RemoveRedundantCode(root, CountLabelReferences(root)))
	before := ast.CollectRanges(root)

	var stats BranchStats
	for _, b := range ast.Blocks(root) {
		s := ReduceBranchInstructionSet(b)
		stats.Rewritten += s.Rewritten
		stats.Fused += s.Fused
		stats.Skipped += s.Skipped
	}

	assert.Equal(t, BranchStats{Rewritten: 2, Fused: 1}, stats)
	assert.ElementsMatch(t, before, ast.CollectRanges(root))
	for _, e := range ast.Expressions(root) {
		assert.False(t, isInstructionSetSpecific(e.Code), "%s survived normalization", e)
	}

	// A second run has nothing left to do.
	for _, b := range ast.Blocks(root) {
		assert.Equal(t, BranchStats{}, ReduceBranchInstructionSet(b))
	}
}

func isInstructionSetSpecific(code ast.Code) bool {
	if code.IsThreeWayCompare() {
		return true
	}
	switch code {
	case ast.IfTrue, ast.TableSwitch, ast.LookupSwitch:
		return false
	}
	return code.IsConditionalControlFlow()
}
