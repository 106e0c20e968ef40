package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rodrigocam/rinha/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindBool
	KindTuple
	KindNil
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindNil:
		return "nil"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type IntValue struct {
	Val int32
}

func (v IntValue) Kind() Kind { return KindInt }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// TupleValue owns both of its elements; neither is ever nil.
type TupleValue struct {
	First  Value
	Second Value
}

func (v TupleValue) Kind() Kind { return KindTuple }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

func IsInt(v Value) bool {
	_, ok := v.(IntValue)
	return ok
}

func IsString(v Value) bool {
	_, ok := v.(StringValue)
	return ok
}

// ToInt extracts the integer payload of v. operation names the consumer for the fault message.
func ToInt(v Value, operation string) (int32, error) {
	if iv, ok := v.(IntValue); ok {
		return iv.Val, nil
	}
	return 0, NewTypeFault(operation, KindInt.String(), kindName(v))
}

// Truthy converts any value to a condition result.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case IntValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case BoolValue:
		return val.Val
	default:
		return false
	}
}

// Format renders the canonical text form used by Print and by string concatenation.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case IntValue:
		b.WriteString(strconv.FormatInt(int64(val.Val), 10))
	case StringValue:
		b.WriteString(val.Val)
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case TupleValue:
		b.WriteByte('(')
		writeValue(b, val.First)
		b.WriteString(", ")
		writeValue(b, val.Second)
		b.WriteByte(')')
	case NilValue:
		b.WriteString("nil")
	default:
		fmt.Fprintf(b, "[%s]", kindName(v))
	}
}

// Equal compares values structurally. Values of different kinds are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		if bv, ok := b.(IntValue); ok {
			return av.Val == bv.Val
		}
	case StringValue:
		if bv, ok := b.(StringValue); ok {
			return av.Val == bv.Val
		}
	case BoolValue:
		if bv, ok := b.(BoolValue); ok {
			return av.Val == bv.Val
		}
	case TupleValue:
		if bv, ok := b.(TupleValue); ok {
			return Equal(av.First, bv.First) && Equal(av.Second, bv.Second)
		}
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	}
	return false
}

// Compare orders two values of the same orderable kind, returning -1, 0 or 1.
// Tuples, nil and mixed kinds have no ordering.
func Compare(a, b Value, operation string) (int, error) {
	switch av := a.(type) {
	case IntValue:
		if bv, ok := b.(IntValue); ok {
			return compareOrdered(av.Val, bv.Val), nil
		}
	case StringValue:
		if bv, ok := b.(StringValue); ok {
			return strings.Compare(av.Val, bv.Val), nil
		}
	case BoolValue:
		if bv, ok := b.(BoolValue); ok {
			return compareOrdered(boolRank(av.Val), boolRank(bv.Val)), nil
		}
	default:
		return 0, NewTypeFault(operation, "int, string or bool", kindName(a))
	}
	return 0, NewTypeFault(operation, kindName(a), kindName(b))
}

func compareOrdered[T int32 | int](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Reify turns a scalar value back into the literal term that evaluates to it,
// so it can travel on an argument stack. loc is attached to the new term.
func Reify(v Value, loc ast.Location) (ast.Term, error) {
	var term ast.Term
	switch val := v.(type) {
	case IntValue:
		term = ast.NewIntLiteral(val.Val)
	case StringValue:
		term = ast.NewStrLiteral(val.Val)
	case BoolValue:
		term = ast.NewBoolLiteral(val.Val)
	default:
		return nil, NewUnsupportedReification(kindName(v))
	}
	ast.SetLocation(term, loc)
	return term, nil
}

func kindName(v Value) string {
	if v == nil {
		return "<missing>"
	}
	return v.Kind().String()
}
