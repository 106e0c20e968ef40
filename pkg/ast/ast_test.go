package ast

import "testing"

func TestLocationString(t *testing.T) {
	cases := []struct {
		loc  Location
		want string
	}{
		{Loc("fib.rinha", 3, 9), "fib.rinha:3-9"},
		{Loc("fib.rinha", 0, 0), "fib.rinha"},
		{Loc("", 4, 7), "offset 4-7"},
		{Location{}, ""},
	}
	for _, tc := range cases {
		if got := tc.loc.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
	if !(Location{}).IsZero() || Loc("a", 0, 0).IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}

func TestWithLocationStampsTerm(t *testing.T) {
	term := WithLocation(Bin(OpAdd, Int(1), Int(2)), Loc("main.rinha", 0, 5))
	if term.NodeType() != NodeBinary {
		t.Fatalf("expected Binary node, got %s", term.NodeType())
	}
	if got := term.Location(); got != Loc("main.rinha", 0, 5) {
		t.Fatalf("unexpected location %#v", got)
	}
	if !term.Lhs.Location().IsZero() {
		t.Fatalf("children keep their own location, got %#v", term.Lhs.Location())
	}
}

func TestBinaryOperatorValid(t *testing.T) {
	for _, op := range []BinaryOperator{OpAdd, OpSub, OpMul, OpDiv, OpRem, OpEq, OpNeq, OpLt, OpGt, OpLte, OpGte, OpAnd, OpOr} {
		if !op.Valid() {
			t.Fatalf("expected %s to be valid", op)
		}
	}
	for _, op := range []BinaryOperator{"", "add", "Pow"} {
		if op.Valid() {
			t.Fatalf("expected %q to be invalid", op)
		}
	}
}

func TestDSLBuildsExpectedNodes(t *testing.T) {
	call := CallExpr(ID("f"), Int(1), Str("a"))
	if call.NodeType() != NodeCall || len(call.Arguments) != 2 {
		t.Fatalf("unexpected call %#v", call)
	}
	fn := Fn([]string{"x", "y"}, ID("x"))
	if fn.NodeType() != NodeFunction || len(fn.Parameters) != 2 {
		t.Fatalf("unexpected function %#v", fn)
	}
	let := LetIn("x", Bool(true), Println(Fst(Tup(ID("x"), Snd(Tup(Int(1), Int(2)))))))
	if let.NodeType() != NodeLet || let.Next.NodeType() != NodePrint {
		t.Fatalf("unexpected let %#v", let)
	}
	cond := IfElse(Bool(false), Int(1), Int(2))
	if cond.NodeType() != NodeIf {
		t.Fatalf("unexpected if %#v", cond)
	}
	file := NewFile("main.rinha", cond, Location{})
	if file.Expression != Term(cond) {
		t.Fatalf("file should wrap the root expression")
	}
}
