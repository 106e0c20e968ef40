package ast

// Literal and reference helpers.

func Int(value int32) *IntLiteral {
	return NewIntLiteral(value)
}

func Str(value string) *StrLiteral {
	return NewStrLiteral(value)
}

func Bool(value bool) *BoolLiteral {
	return NewBoolLiteral(value)
}

func ID(name string) *Var {
	return NewVar(name)
}

// Expression helpers.

func Bin(op BinaryOperator, lhs, rhs Term) *Binary {
	return NewBinary(op, lhs, rhs)
}

func CallExpr(callee Term, args ...Term) *Call {
	if args == nil {
		args = []Term{}
	}
	return NewCall(callee, args)
}

func Fn(params []string, body Term) *Function {
	return NewFunction(params, body)
}

func LetIn(name string, value, next Term) *Let {
	return NewLet(name, value, next)
}

func IfElse(condition, then, otherwise Term) *If {
	return NewIf(condition, then, otherwise)
}

func Println(value Term) *Print {
	return NewPrint(value)
}

func Fst(value Term) *First {
	return NewFirst(value)
}

func Snd(value Term) *Second {
	return NewSecond(value)
}

func Tup(first, second Term) *Tuple {
	return NewTuple(first, second)
}

// WithLocation stamps loc onto term and returns it, for inline use in builders.
func WithLocation[T Term](term T, loc Location) T {
	SetLocation(term, loc)
	return term
}

// Loc is shorthand for a Location literal.
func Loc(filename string, start, end int) Location {
	return Location{Start: start, End: end, Filename: filename}
}
