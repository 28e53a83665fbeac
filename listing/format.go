package listing

import (
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/flowopt/ast"
)

// Format renders p in listing syntax. Parse(Format(p)) yields an
// equivalent program as long as label names are unique per method.
func Format(p *Program) string {
	w := &printer{}
	version := FormatVersion
	if p.Version != nil {
		version = p.Version.String()
	}
	w.line(`(version ` + strconv.Quote(version) + `)`)
	for _, m := range p.Methods {
		w.lines = append(w.lines, "")
		w.method(m)
	}
	return strings.Join(w.lines, "\n") + "\n"
}

// FormatMethod renders a single method form.
func FormatMethod(m *ast.Method) string {
	w := &printer{}
	w.method(m)
	return strings.Join(w.lines, "\n")
}

// Print writes Format(p) to out.
func Print(out io.Writer, p *Program) error {
	_, err := io.WriteString(out, Format(p))
	return err
}

// printer emits one form per line, indenting nested regions. Closing
// parens are attached to the last line of the form.
type printer struct {
	lines []string
	depth int
}

func (w *printer) line(s string) {
	w.lines = append(w.lines, strings.Repeat("  ", w.depth)+s)
}

func (w *printer) close() {
	w.lines[len(w.lines)-1] += ")"
}

func (w *printer) method(m *ast.Method) {
	w.line("(method $" + m.Name)
	if m.Body != nil {
		w.depth++
		w.blockContents(m.Body)
		w.depth--
	}
	w.close()
}

func (w *printer) blockContents(b *ast.Block) {
	if l := b.EntryLabel(); l != nil {
		w.line("(entry $" + l.Name + ")")
	}
	for _, n := range b.Body {
		w.node(n)
	}
	for _, r := range b.Ranges {
		w.line("(range " + strconv.Itoa(r.Start) + " " + strconv.Itoa(r.End) + ")")
	}
}

func (w *printer) node(n ast.Node) {
	switch v := n.(type) {
	case *ast.BasicBlock:
		w.line("(basicblock")
		w.depth++
		for _, c := range v.Body {
			w.node(c)
		}
		w.depth--
		w.close()

	case *ast.Block:
		w.line("(block")
		w.depth++
		w.blockContents(v)
		w.depth--
		w.close()

	case *ast.TryCatchBlock:
		w.line("(try")
		w.depth++
		w.region(v.Try)
		for _, c := range v.Catches {
			w.catch(c)
		}
		if v.Finally != nil {
			w.line("(finally")
			w.depth++
			w.region(v.Finally)
			w.depth--
			w.close()
		}
		w.depth--
		w.close()

	default:
		w.line(n.String())
	}
}

func (w *printer) catch(c *ast.CatchBlock) {
	var sb strings.Builder
	sb.WriteString("(catch")
	for _, typ := range c.ExceptionTypes {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(typ))
	}
	if c.Variable != nil {
		sb.WriteString(" $")
		sb.WriteString(c.Variable.Name)
	}
	w.line(sb.String())
	w.depth++
	w.region(c.Body)
	w.depth--
	w.close()
}

func (w *printer) region(b *ast.Block) {
	if b == nil {
		return
	}
	w.line("(body")
	w.depth++
	w.blockContents(b)
	w.depth--
	w.close()
}
