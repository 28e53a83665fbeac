package ast

// Match reports whether n is an expression with the given code.
func Match(n Node, code Code) bool {
	e, ok := n.(*Expression)
	return ok && e.Code == code
}

// MatchOperand returns the operand of n when n is an expression with the
// given code and an operand of type T.
func MatchOperand[T any](n Node, code Code) (T, bool) {
	var zero T
	e, ok := n.(*Expression)
	if !ok || e.Code != code {
		return zero, false
	}
	op, ok := e.Operand.(T)
	if !ok {
		return zero, false
	}
	return op, true
}

// MatchArgument returns the only argument of n when n is an expression with
// the given code and exactly one argument.
func MatchArgument(n Node, code Code) (*Expression, bool) {
	e, ok := n.(*Expression)
	if !ok || e.Code != code || len(e.Arguments) != 1 {
		return nil, false
	}
	return e.Arguments[0], true
}

// MatchOperandArgument combines MatchOperand and MatchArgument, e.g. to
// take apart a Store.
func MatchOperandArgument[T any](n Node, code Code) (T, *Expression, bool) {
	var zero T
	op, ok := MatchOperand[T](n, code)
	if !ok {
		return zero, nil, false
	}
	arg, ok := MatchArgument(n, code)
	if !ok {
		return zero, nil, false
	}
	return op, arg, true
}

// MatchLoadOf reports whether n loads exactly the variable v.
func MatchLoadOf(n Node, v *Variable) bool {
	lv, ok := MatchOperand[*Variable](n, Load)
	return ok && lv == v
}
