package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"parens",
			"()",
			[]Token{{"(", LParen, 1}, {")", RParen, 1}},
		},
		{
			"method",
			"(method $run)",
			[]Token{{"(", LParen, 1}, {"method", Ident, 1}, {"$run", Ident, 1}, {")", RParen, 1}},
		},
		{
			"whitespace",
			"  (  label  )  ",
			[]Token{{"(", LParen, 1}, {"label", Ident, 1}, {")", RParen, 1}},
		},
		{
			"newlines",
			"(\nlabel\n)",
			[]Token{{"(", LParen, 1}, {"label", Ident, 2}, {")", RParen, 3}},
		},
		{
			"mnemonic_with_underscore",
			"if_icmpeq",
			[]Token{{"if_icmpeq", Ident, 1}},
		},
		{
			"generated_label",
			"$Block_12",
			[]Token{{"$Block_12", Ident, 1}},
		},
		{
			"number",
			"42",
			[]Token{{"42", Number, 1}},
		},
		{
			"negative_number",
			"-42",
			[]Token{{"-42", Number, 1}},
		},
		{
			"hex_number",
			"0xFF",
			[]Token{{"0xFF", Number, 1}},
		},
		{
			"float",
			"3.14",
			[]Token{{"3.14", Number, 1}},
		},
		{
			"float_neg_exp",
			"1e-10",
			[]Token{{"1e-10", Number, 1}},
		},
		{
			"string",
			`"java/lang/Exception"`,
			[]Token{{"java/lang/Exception", String, 1}},
		},
		{
			"string_quote_escape",
			`"say \"hi\""`,
			[]Token{{`say \"hi\"`, String, 1}},
		},
		{
			"unterminated_string",
			`"open`,
			[]Token{{"open", String, 1}},
		},
		{
			"line_comment",
			";; comment\n(method)",
			[]Token{{"(", LParen, 2}, {"method", Ident, 2}, {")", RParen, 2}},
		},
		{
			"block_comment",
			"(; comment ;)(method)",
			[]Token{{"(", LParen, 1}, {"method", Ident, 1}, {")", RParen, 1}},
		},
		{
			"nested_block_comment",
			"(; outer (; inner ;) outer ;)(method)",
			[]Token{{"(", LParen, 1}, {"method", Ident, 1}, {")", RParen, 1}},
		},
		{
			"signed_infinity",
			"-Inf +Inf NaN",
			[]Token{{"-Inf", Ident, 1}, {"+Inf", Ident, 1}, {"NaN", Ident, 1}},
		},
		{
			"stray_character",
			"#",
			[]Token{{"#", Ident, 1}},
		},
		{
			"expression",
			"(store $v (ldc 5) (range 0 3))",
			[]Token{
				{"(", LParen, 1}, {"store", Ident, 1}, {"$v", Ident, 1},
				{"(", LParen, 1}, {"ldc", Ident, 1}, {"5", Number, 1}, {")", RParen, 1},
				{"(", LParen, 1}, {"range", Ident, 1}, {"0", Number, 1}, {"3", Number, 1}, {")", RParen, 1},
				{")", RParen, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestTokenName(t *testing.T) {
	tok := Token{"$loop", Ident, 1}
	if !tok.IsName() || tok.Name() != "loop" {
		t.Fatalf("expected name loop, got %q", tok.Name())
	}
	for _, tok := range []Token{{"$", Ident, 1}, {"goto", Ident, 1}, {"$x", String, 1}} {
		if tok.IsName() {
			t.Errorf("expected %v not to be a name", tok)
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := map[Type]string{
		LParen:   "'('",
		RParen:   "')'",
		Ident:    "identifier",
		String:   "string",
		Number:   "number",
		Type(99): "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
