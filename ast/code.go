package ast

// Code identifies the operation performed by an Expression.
type Code uint8

// Normalized control flow.
const (
	Nop Code = iota
	Goto
	IfTrue
	Return
	AThrow
	TableSwitch
	LookupSwitch

	// Stack and locals.
	Pop
	Dup
	Load
	Store
	LdC
	AConstNull

	// Comparisons producing a boolean.
	CmpEq
	CmpNe
	CmpLt
	CmpGe
	CmpGt
	CmpLe
	LogicalNot

	// Ordinary operations.
	Add
	Sub
	Mul
	Div
	Rem
	Neg
	Invoke
	GetField
	PutField
	GetStatic
	PutStatic
	New
	ArrayLength

	// Instruction-set specific forms. They only exist between lowering
	// and branch reduction.
	LCmp
	FCmpL
	FCmpG
	DCmpL
	DCmpG
	IfEq
	IfNe
	IfLt
	IfGe
	IfGt
	IfLe
	IfICmpEq
	IfICmpNe
	IfICmpLt
	IfICmpGe
	IfICmpGt
	IfICmpLe
	IfACmpEq
	IfACmpNe
	IfNull
	IfNonNull

	codeCount
)

var codeNames = [codeCount]string{
	Nop:          "nop",
	Goto:         "goto",
	IfTrue:       "iftrue",
	Return:       "return",
	AThrow:       "athrow",
	TableSwitch:  "tableswitch",
	LookupSwitch: "lookupswitch",
	Pop:          "pop",
	Dup:          "dup",
	Load:         "load",
	Store:        "store",
	LdC:          "ldc",
	AConstNull:   "aconst_null",
	CmpEq:        "cmp_eq",
	CmpNe:        "cmp_ne",
	CmpLt:        "cmp_lt",
	CmpGe:        "cmp_ge",
	CmpGt:        "cmp_gt",
	CmpLe:        "cmp_le",
	LogicalNot:   "logical_not",
	Add:          "add",
	Sub:          "sub",
	Mul:          "mul",
	Div:          "div",
	Rem:          "rem",
	Neg:          "neg",
	Invoke:       "invoke",
	GetField:     "getfield",
	PutField:     "putfield",
	GetStatic:    "getstatic",
	PutStatic:    "putstatic",
	New:          "new",
	ArrayLength:  "arraylength",
	LCmp:         "lcmp",
	FCmpL:        "fcmpl",
	FCmpG:        "fcmpg",
	DCmpL:        "dcmpl",
	DCmpG:        "dcmpg",
	IfEq:         "ifeq",
	IfNe:         "ifne",
	IfLt:         "iflt",
	IfGe:         "ifge",
	IfGt:         "ifgt",
	IfLe:         "ifle",
	IfICmpEq:     "if_icmpeq",
	IfICmpNe:     "if_icmpne",
	IfICmpLt:     "if_icmplt",
	IfICmpGe:     "if_icmpge",
	IfICmpGt:     "if_icmpgt",
	IfICmpLe:     "if_icmple",
	IfACmpEq:     "if_acmpeq",
	IfACmpNe:     "if_acmpne",
	IfNull:       "ifnull",
	IfNonNull:    "ifnonnull",
}

var codesByName = func() map[string]Code {
	m := make(map[string]Code, codeCount)
	for c, name := range codeNames {
		m[name] = Code(c)
	}
	return m
}()

// String returns the listing mnemonic of the code.
func (c Code) String() string {
	if c < codeCount {
		return codeNames[c]
	}
	return "unknown"
}

// LookupCode resolves a listing mnemonic.
func LookupCode(name string) (Code, bool) {
	c, ok := codesByName[name]
	return c, ok
}

// Codes returns every defined code in declaration order.
func Codes() []Code {
	out := make([]Code, codeCount)
	for i := range out {
		out[i] = Code(i)
	}
	return out
}

// IsUnconditionalControlFlow reports whether execution never falls through
// an instruction with this code.
func (c Code) IsUnconditionalControlFlow() bool {
	switch c {
	case Goto, Return, AThrow:
		return true
	}
	return false
}

// IsConditionalControlFlow reports whether the code may transfer control
// to a label or fall through.
func (c Code) IsConditionalControlFlow() bool {
	switch c {
	case IfTrue, TableSwitch, LookupSwitch,
		IfEq, IfNe, IfLt, IfGe, IfGt, IfLe,
		IfICmpEq, IfICmpNe, IfICmpLt, IfICmpGe, IfICmpGt, IfICmpLe,
		IfACmpEq, IfACmpNe, IfNull, IfNonNull:
		return true
	}
	return false
}

// IsBranch reports whether the operand of an expression with this code
// names branch targets.
func (c Code) IsBranch() bool {
	return c == Goto || c.IsConditionalControlFlow()
}

// IsThreeWayCompare reports whether the code is a long or floating point
// compare pushing -1, 0 or 1.
func (c Code) IsThreeWayCompare() bool {
	switch c {
	case LCmp, FCmpL, FCmpG, DCmpL, DCmpG:
		return true
	}
	return false
}

// IsZeroTest reports whether the code is a conditional jump comparing a
// single operand against zero.
func (c Code) IsZeroTest() bool {
	switch c {
	case IfEq, IfNe, IfLt, IfGe, IfGt, IfLe:
		return true
	}
	return false
}
