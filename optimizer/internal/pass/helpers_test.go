package pass

import (
	"strings"

	"github.com/wippyai/flowopt/ast"
)

func lbl(name string) *ast.Label { return &ast.Label{Name: name} }

func local(name string) *ast.Variable { return &ast.Variable{Name: name} }

func ex(code ast.Code, operand any, args ...*ast.Expression) *ast.Expression {
	return ast.NewExpression(code, operand, args...)
}

func load(v *ast.Variable) *ast.Expression { return ex(ast.Load, v) }

func store(v *ast.Variable, value *ast.Expression) *ast.Expression {
	return ex(ast.Store, v, value)
}

func ldc(v int64) *ast.Expression { return ex(ast.LdC, v) }

func jump(target *ast.Label) *ast.Expression { return ex(ast.Goto, target) }

// at attaches ranges [start, start+1) for each start to e.
func at(e *ast.Expression, starts ...int) *ast.Expression {
	for _, s := range starts {
		e.AddRanges(ast.Range{Start: s, End: s + 1})
	}
	return e
}

func block(nodes ...ast.Node) *ast.Block {
	return &ast.Block{Body: nodes}
}

// render prints a body one node per line.
func render(nodes []ast.Node) string {
	lines := make([]string, len(nodes))
	for i, n := range nodes {
		lines[i] = n.String()
	}
	return strings.Join(lines, "\n")
}

func lines(s ...string) string { return strings.Join(s, "\n") }

// fixture is a method exercising every stage one rule: fallthrough jumps,
// no-ops, store/pop pairs, dead labels, dups, nested try regions and
// instruction-set specific branches.
func fixture() *ast.Block {
	a, b, x := local("a"), local("b"), local("x")
	top, mid, end, dead, handler := lbl("Top"), lbl("Mid"), lbl("End"), lbl("Dead"), lbl("Handler")
	dup := at(ex(ast.Dup, nil, at(load(a), 20)), 21)

	try := &ast.TryCatchBlock{
		Try: block(
			at(ex(ast.Nop, nil), 30),
			at(ex(ast.IfNull, handler, load(x)), 31),
			at(store(x, ldc(1)), 32),
			at(ex(ast.Pop, nil, load(x)), 33),
			handler,
		),
		Catches: []*ast.CatchBlock{{
			ExceptionTypes: []string{"java/lang/Exception"},
			Variable:       local("e"),
			Body:           block(at(ex(ast.AThrow, nil, load(local("e"))), 40)),
		}},
	}

	return block(
		top,
		at(store(a, ldc(5)), 0, 1),
		at(ex(ast.Pop, nil, load(a)), 2),
		at(ex(ast.Nop, nil), 3),
		at(ex(ast.LCmp, nil, load(a), load(b)), 4),
		at(ex(ast.IfLe, mid), 5),
		at(store(b, ex(ast.Add, nil, dup, dup)), 6),
		at(jump(mid), 7),
		dead,
		mid,
		try,
		at(ex(ast.IfICmpLt, top, load(a), load(b)), 8),
		at(jump(end), 9),
		end,
		at(ex(ast.Return, nil, load(b)), 10),
	)
}
