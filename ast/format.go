package ast

import (
	"strconv"
	"strings"
)

// String renders the label as a body node.
func (l *Label) String() string {
	return "(label $" + l.Name + ")"
}

// String renders the expression on a single line.
func (e *Expression) String() string {
	var b strings.Builder
	writeExpression(&b, e)
	return b.String()
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	writeBlockContents(&sb, b)
	sb.WriteByte(')')
	return sb.String()
}

func (b *BasicBlock) String() string {
	var sb strings.Builder
	sb.WriteString("(basicblock")
	writeNodes(&sb, b.Body)
	sb.WriteByte(')')
	return sb.String()
}

func (t *TryCatchBlock) String() string {
	var sb strings.Builder
	sb.WriteString("(try")
	writeRegion(&sb, t.Try)
	for _, c := range t.Catches {
		sb.WriteString(" (catch")
		for _, typ := range c.ExceptionTypes {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Quote(typ))
		}
		if c.Variable != nil {
			sb.WriteString(" $")
			sb.WriteString(c.Variable.Name)
		}
		writeRegion(&sb, c.Body)
		sb.WriteByte(')')
	}
	if t.Finally != nil {
		sb.WriteString(" (finally")
		writeRegion(&sb, t.Finally)
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

// writeRegion writes a nested block as " (body ...)"; nil writes nothing.
func writeRegion(sb *strings.Builder, b *Block) {
	if b == nil {
		return
	}
	sb.WriteString(" (body")
	writeBlockContents(sb, b)
	sb.WriteByte(')')
}

func writeBlockContents(sb *strings.Builder, b *Block) {
	if l := b.EntryLabel(); l != nil {
		sb.WriteString(" (entry $")
		sb.WriteString(l.Name)
		sb.WriteByte(')')
	}
	writeNodes(sb, b.Body)
	writeRanges(sb, b.Ranges)
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		b.WriteByte(' ')
		b.WriteString(n.String())
	}
}

func writeExpression(b *strings.Builder, e *Expression) {
	b.WriteByte('(')
	b.WriteString(e.Code.String())
	if op := FormatOperand(e.Operand); op != "" {
		b.WriteByte(' ')
		b.WriteString(op)
	}
	for _, a := range e.Arguments {
		b.WriteByte(' ')
		writeExpression(b, a)
	}
	writeRanges(b, e.Ranges)
	b.WriteByte(')')
}

func writeRanges(b *strings.Builder, rs []Range) {
	for _, r := range rs {
		b.WriteString(" (range ")
		b.WriteString(strconv.Itoa(r.Start))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(r.End))
		b.WriteByte(')')
	}
}

// FormatOperand renders an expression operand in listing syntax.
// It returns "" for a nil operand.
func FormatOperand(op any) string {
	switch v := op.(type) {
	case nil:
		return ""
	case *Label:
		return "$" + v.Name
	case []*Label:
		var b strings.Builder
		b.WriteString("(targets")
		for _, l := range v {
			b.WriteString(" $")
			b.WriteString(l.Name)
		}
		b.WriteByte(')')
		return b.String()
	case *Variable:
		return "$" + v.Name
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return "?"
}
