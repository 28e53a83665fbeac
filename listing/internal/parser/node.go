package parser

import (
	"fmt"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/listing/internal/token"
)

// parseBlock reads block contents up to and including the closing paren.
// Besides body nodes a block accepts (entry $L) and (range s e) forms.
func (p *Parser) parseBlock(b *ast.Block) error {
	for {
		kw, done, err := p.openForm()
		if err != nil || done {
			return err
		}

		switch kw.Value {
		case "entry":
			if b.EntryGoto != nil {
				return fmt.Errorf("line %d: duplicate entry", kw.Line)
			}
			name, err := p.expectName()
			if err != nil {
				return err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return err
			}
			b.EntryGoto = ast.NewExpression(ast.Goto, p.label(name.Name()))

		case "range":
			r, err := p.parseRange()
			if err != nil {
				return err
			}
			b.Ranges = append(b.Ranges, r)

		default:
			n, err := p.parseNode(kw)
			if err != nil {
				return err
			}
			b.Body = append(b.Body, n)
		}
	}
}

// openForm consumes "(keyword" and returns the keyword, or consumes ")"
// and reports done.
func (p *Parser) openForm() (kw *token.Token, done bool, err error) {
	t := p.peek()
	if t == nil {
		return nil, false, fmt.Errorf("unexpected end of input")
	}
	if t.Type == token.RParen {
		p.next()
		return nil, true, nil
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, false, err
	}
	kw, err = p.expect(token.Ident)
	if err != nil {
		return nil, false, err
	}
	return kw, false, nil
}

// parseNode parses a body node whose "(keyword" has been consumed.
func (p *Parser) parseNode(kw *token.Token) (ast.Node, error) {
	switch kw.Value {
	case "label":
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return p.label(name.Name()), nil

	case "block":
		b := &ast.Block{}
		if err := p.parseBlock(b); err != nil {
			return nil, err
		}
		return b, nil

	case "basicblock":
		bb := &ast.BasicBlock{}
		for {
			kw, done, err := p.openForm()
			if err != nil {
				return nil, err
			}
			if done {
				return bb, nil
			}
			n, err := p.parseNode(kw)
			if err != nil {
				return nil, err
			}
			bb.Body = append(bb.Body, n)
		}

	case "try":
		return p.parseTry()

	case "entry", "range", "body", "catch", "finally", "targets":
		return nil, fmt.Errorf("line %d: %s is not allowed here", kw.Line, kw.Value)
	}

	code, ok := ast.LookupCode(kw.Value)
	if !ok {
		return nil, fmt.Errorf("line %d: unknown instruction %q", kw.Line, kw.Value)
	}
	return p.parseExpression(code)
}

// parseExpression parses operand, arguments and ranges of an expression
// whose "(mnemonic" has been consumed.
func (p *Parser) parseExpression(code ast.Code) (*ast.Expression, error) {
	op, err := p.parseOperand(code)
	if err != nil {
		return nil, err
	}
	e := ast.NewExpression(code, op)

	for {
		kw, done, err := p.openForm()
		if err != nil {
			return nil, err
		}
		if done {
			return e, nil
		}

		if kw.Value == "range" {
			r, err := p.parseRange()
			if err != nil {
				return nil, err
			}
			e.AddRanges(r)
			continue
		}

		c, ok := ast.LookupCode(kw.Value)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown instruction %q", kw.Line, kw.Value)
		}
		arg, err := p.parseExpression(c)
		if err != nil {
			return nil, err
		}
		e.Arguments = append(e.Arguments, arg)
	}
}

func (p *Parser) parseRange() (ast.Range, error) {
	start, err := p.parseInt()
	if err != nil {
		return ast.Range{}, err
	}
	end, err := p.parseInt()
	if err != nil {
		return ast.Range{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.Range{}, err
	}
	if end < start {
		return ast.Range{}, fmt.Errorf("invalid range [%d, %d)", start, end)
	}
	return ast.Range{Start: start, End: end}, nil
}

// parseTry parses a try region whose "(try" has been consumed.
func (p *Parser) parseTry() (*ast.TryCatchBlock, error) {
	t := &ast.TryCatchBlock{}
	for {
		kw, done, err := p.openForm()
		if err != nil {
			return nil, err
		}
		if done {
			return t, nil
		}

		switch kw.Value {
		case "body":
			if t.Try != nil {
				return nil, fmt.Errorf("line %d: duplicate try body", kw.Line)
			}
			t.Try = &ast.Block{}
			if err := p.parseBlock(t.Try); err != nil {
				return nil, err
			}

		case "catch":
			c, err := p.parseCatch()
			if err != nil {
				return nil, err
			}
			t.Catches = append(t.Catches, c)

		case "finally":
			if t.Finally != nil {
				return nil, fmt.Errorf("line %d: duplicate finally", kw.Line)
			}
			t.Finally, err = p.parseRegion()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("line %d: expected body, catch or finally, got %q", kw.Line, kw.Value)
		}
	}
}

// parseCatch parses ("type"... [$var] [(body ...)]) after "(catch".
func (p *Parser) parseCatch() (*ast.CatchBlock, error) {
	c := &ast.CatchBlock{}
	for {
		t := p.peek()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input")
		}

		switch {
		case t.Type == token.RParen:
			p.next()
			return c, nil

		case t.Type == token.String:
			p.next()
			typ, err := unquote(t)
			if err != nil {
				return nil, err
			}
			c.ExceptionTypes = append(c.ExceptionTypes, typ)

		case t.IsName():
			p.next()
			if c.Variable != nil {
				return nil, fmt.Errorf("line %d: catch binds more than one variable", t.Line)
			}
			c.Variable = p.variable(t.Name())

		case t.Type == token.LParen:
			if c.Body != nil {
				return nil, fmt.Errorf("line %d: duplicate catch body", t.Line)
			}
			body, err := p.parseRegion()
			if err != nil {
				return nil, err
			}
			c.Body = body

		default:
			return nil, fmt.Errorf("line %d: unexpected %q in catch", t.Line, t.Value)
		}
	}
}

// parseRegion parses a "(body ...)" form.
func (p *Parser) parseRegion() (*ast.Block, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	kw, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if kw.Value != "body" {
		return nil, fmt.Errorf("line %d: expected body, got %q", kw.Line, kw.Value)
	}
	b := &ast.Block{}
	if err := p.parseBlock(b); err != nil {
		return nil, err
	}
	return b, nil
}
