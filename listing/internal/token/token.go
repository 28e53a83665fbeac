// Package token splits method listings into S-expression tokens.
package token

import (
	"unicode"
)

type Type int

const (
	LParen Type = iota
	RParen
	Ident
	String
	Number
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	}
	return "unknown"
}

// Token is one lexical element. String tokens hold the raw text between the
// quotes with escapes left in place.
type Token struct {
	Value string
	Type  Type
	Line  int
}

// IsName reports whether the token is a $-prefixed label or variable name.
func (t Token) IsName() bool {
	return t.Type == Ident && len(t.Value) > 1 && t.Value[0] == '$'
}

// Name returns the name without its $ prefix.
func (t Token) Name() string {
	if t.IsName() {
		return t.Value[1:]
	}
	return t.Value
}

func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == ';' && i+1 < len(runes) && runes[i+1] == ';' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Block comment or left paren
		if r == '(' {
			if i+1 < len(runes) && runes[i+1] == ';' {
				depth := 1
				i += 2
				for i < len(runes) && depth > 0 {
					if runes[i] == '(' && i+1 < len(runes) && runes[i+1] == ';' {
						depth++
						i++
					} else if runes[i] == ';' && i+1 < len(runes) && runes[i+1] == ')' {
						depth--
						i++
					} else if runes[i] == '\n' {
						line++
					}
					i++
				}
				i--
				continue
			}
			tokens = append(tokens, Token{"(", LParen, line})
			continue
		}

		if r == ')' {
			tokens = append(tokens, Token{")", RParen, line})
			continue
		}

		// String literal
		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			tokens = append(tokens, Token{string(runes[start:min(i, len(runes))]), String, line})
			continue
		}

		// Signed special float values: +Inf, -Inf
		if (r == '-' || r == '+') && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
			start := i
			i++
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		// Number (including negative)
		if r == '-' || r == '+' || unicode.IsDigit(r) {
			start := i
			if r == '-' || r == '+' {
				i++
			}
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || c == '.' || c == 'e' || c == 'E' ||
					c == 'x' || c == 'X' || c == '_' ||
					(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
					((c == '-' || c == '+') && i > start && (runes[i-1] == 'e' || runes[i-1] == 'E')) {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		// Identifier: $names, keywords and mnemonics such as if_icmpeq.
		if r == '$' || unicode.IsLetter(r) || r == '_' || r == '.' {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' || c == '$' || c == '-' || c == ':' || c == '/' || c == '<' || c == '>' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		// Anything else is a one-character identifier the parser rejects.
		tokens = append(tokens, Token{string(r), Ident, line})
	}

	return tokens
}
