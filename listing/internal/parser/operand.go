package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/listing/internal/token"
)

// parseOperand reads the optional operand following a mnemonic. The
// accepted forms depend on the code: a $label for jumps, (targets ...) for
// switches, a $variable for load and store, a literal for constants.
func (p *Parser) parseOperand(code ast.Code) (any, error) {
	t := p.peek()
	if t == nil {
		return nil, nil
	}

	switch code {
	case ast.TableSwitch, ast.LookupSwitch:
		if next := p.peekAt(1); t.Type == token.LParen && next != nil && next.Value == "targets" {
			p.pos += 2
			return p.parseTargets()
		}
		return nil, nil

	case ast.Load, ast.Store:
		if t.IsName() {
			p.next()
			return p.variable(t.Name()), nil
		}
		return nil, nil
	}

	if code.IsBranch() {
		if t.IsName() {
			p.next()
			return p.label(t.Name()), nil
		}
		return nil, nil
	}

	switch {
	case t.Type == token.Number:
		p.next()
		return parseNumber(t)
	case t.Type == token.String:
		p.next()
		return unquote(t)
	case t.IsName():
		p.next()
		return p.variable(t.Name()), nil
	case t.Type == token.Ident && code == ast.LdC:
		p.next()
		return parseLiteral(t)
	}
	return nil, nil
}

func (p *Parser) parseTargets() ([]*ast.Label, error) {
	var targets []*ast.Label
	for {
		t := p.next()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input")
		}
		if t.Type == token.RParen {
			return targets, nil
		}
		if !t.IsName() {
			return nil, fmt.Errorf("line %d: expected $label, got %q", t.Line, t.Value)
		}
		targets = append(targets, p.label(t.Name()))
	}
}

func (p *Parser) parseInt() (int, error) {
	t, err := p.expect(token.Number)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.ReplaceAll(t.Value, "_", ""))
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid integer: %s", t.Line, t.Value)
	}
	return n, nil
}

// parseNumber returns an int64 for integer literals and a float64 for
// literals with a fraction or exponent.
func parseNumber(t *token.Token) (any, error) {
	s := strings.ReplaceAll(t.Value, "_", "")
	digits := strings.TrimLeft(s, "+-")
	isHex := strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X")

	if !isHex && strings.ContainsAny(digits, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float: %s", t.Line, t.Value)
		}
		return f, nil
	}

	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid integer: %s", t.Line, t.Value)
	}
	return n, nil
}

// parseLiteral handles identifier constants: booleans, NaN and infinities.
func parseLiteral(t *token.Token) (any, error) {
	switch t.Value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	f, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid constant: %s", t.Line, t.Value)
	}
	return f, nil
}

func unquote(t *token.Token) (string, error) {
	s, err := strconv.Unquote(`"` + t.Value + `"`)
	if err != nil {
		return "", fmt.Errorf("line %d: invalid string literal %q", t.Line, t.Value)
	}
	return s, nil
}
