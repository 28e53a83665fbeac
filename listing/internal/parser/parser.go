// Package parser builds method trees from listing tokens.
package parser

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/listing/internal/token"
)

// File is the parsed content of one listing.
type File struct {
	// Version is the raw version header, or "" when the listing has none.
	Version string
	Methods []*ast.Method
}

type Parser struct {
	labels map[string]*ast.Label
	vars   map[string]*ast.Variable
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse reads every top-level form. A malformed method is skipped and its
// error collected, so the returned File holds every method that parsed;
// the error combines all failures.
func (p *Parser) Parse() (*File, error) {
	f := &File{}
	var errs error

	for p.peek() != nil {
		start := p.pos
		t := p.next()
		if t.Type != token.LParen {
			errs = multierr.Append(errs, fmt.Errorf("line %d: expected %v, got %q", t.Line, token.LParen, t.Value))
			continue
		}

		err := p.parseTopLevel(f)
		if err == nil {
			continue
		}
		errs = multierr.Append(errs, err)
		p.pos = start
		if !p.skipList() {
			break
		}
	}
	return f, errs
}

func (p *Parser) parseTopLevel(f *File) error {
	kw, err := p.expect(token.Ident)
	if err != nil {
		return err
	}

	switch kw.Value {
	case "version":
		if f.Version != "" || len(f.Methods) > 0 {
			return fmt.Errorf("line %d: version must be the first form", kw.Line)
		}
		v, err := p.expect(token.String)
		if err != nil {
			return err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return err
		}
		f.Version = v.Value
		return nil

	case "method":
		m, err := p.parseMethod()
		if err != nil {
			return err
		}
		f.Methods = append(f.Methods, m)
		return nil
	}
	return fmt.Errorf("line %d: expected method, got %q", kw.Line, kw.Value)
}

func (p *Parser) parseMethod() (*ast.Method, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	// Labels and variables are scoped to one method.
	p.labels = make(map[string]*ast.Label)
	p.vars = make(map[string]*ast.Variable)

	m := &ast.Method{Name: name.Name(), Body: &ast.Block{}}
	if err := p.parseBlock(m.Body); err != nil {
		return nil, fmt.Errorf("method %s: %w", m.Name, err)
	}
	return m, nil
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

// peekAt returns the token n positions ahead.
func (p *Parser) peekAt(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if t.Type != typ {
		return nil, fmt.Errorf("line %d: expected %v, got %q", t.Line, typ, t.Value)
	}
	return t, nil
}

func (p *Parser) expectName() (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if !t.IsName() {
		return nil, fmt.Errorf("line %d: expected $name, got %q", t.Line, t.Value)
	}
	return t, nil
}

// skipList moves past the balanced list starting at the current '('.
// It returns false when the input ends first.
func (p *Parser) skipList() bool {
	depth := 0
	for {
		t := p.next()
		if t == nil {
			return false
		}
		switch t.Type {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}

func (p *Parser) label(name string) *ast.Label {
	if l, ok := p.labels[name]; ok {
		return l
	}
	l := &ast.Label{Name: name}
	p.labels[name] = l
	return l
}

// variable resolves a variable by name. Indices follow first appearance.
func (p *Parser) variable(name string) *ast.Variable {
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := &ast.Variable{Name: name, Index: len(p.vars)}
	p.vars[name] = v
	return v
}
