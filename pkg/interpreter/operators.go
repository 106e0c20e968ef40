package interpreter

import (
	"fmt"
	"strings"

	"github.com/rodrigocam/rinha/pkg/ast"
	"github.com/rodrigocam/rinha/pkg/runtime"
)

// evaluateBinary evaluates both operands, left first, for every operator.
// And/Or do not short-circuit.
func (e *evaluation) evaluateBinary(expr *ast.Binary, ctx *runtime.Context, stack runtime.Arguments) (runtime.Value, error) {
	leftVal, err := e.evaluate(expr.Lhs, ctx, stack)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.evaluate(expr.Rhs, ctx, stack)
	if err != nil {
		return nil, err
	}
	return applyBinary(expr.Op, leftVal, rightVal)
}

func applyBinary(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		return evaluateAdd(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		return evaluateArithmetic(op, left, right)
	case ast.OpEq:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OpNeq:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		cmp, err := runtime.Compare(left, right, operationName(op))
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: comparisonOp(op, cmp)}, nil
	case ast.OpAnd:
		return runtime.BoolValue{Val: runtime.Truthy(left) && runtime.Truthy(right)}, nil
	case ast.OpOr:
		return runtime.BoolValue{Val: runtime.Truthy(left) || runtime.Truthy(right)}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", op)
	}
}

func evaluateAdd(left, right runtime.Value) (runtime.Value, error) {
	if runtime.IsString(left) || runtime.IsString(right) {
		var b strings.Builder
		b.WriteString(runtime.Format(left))
		b.WriteString(runtime.Format(right))
		return runtime.StringValue{Val: b.String()}, nil
	}
	lv, err := runtime.ToInt(left, "add")
	if err != nil {
		return nil, err
	}
	rv, err := runtime.ToInt(right, "add")
	if err != nil {
		return nil, err
	}
	return runtime.IntValue{Val: lv + rv}, nil
}

// evaluateArithmetic works on 32-bit two's complement integers; overflow wraps.
func evaluateArithmetic(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	name := operationName(op)
	lv, err := runtime.ToInt(left, name)
	if err != nil {
		return nil, err
	}
	rv, err := runtime.ToInt(right, name)
	if err != nil {
		return nil, err
	}
	var result int32
	switch op {
	case ast.OpSub:
		result = lv - rv
	case ast.OpMul:
		result = lv * rv
	case ast.OpDiv:
		if rv == 0 {
			return nil, runtime.NewArithmeticFault(name)
		}
		result = lv / rv
	case ast.OpRem:
		if rv == 0 {
			return nil, runtime.NewArithmeticFault(name)
		}
		result = lv % rv
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator %s", op)
	}
	return runtime.IntValue{Val: result}, nil
}

func comparisonOp(op ast.BinaryOperator, cmp int) bool {
	switch op {
	case ast.OpLt:
		return cmp < 0
	case ast.OpLte:
		return cmp <= 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpGte:
		return cmp >= 0
	default:
		return false
	}
}

func operationName(op ast.BinaryOperator) string {
	return strings.ToLower(string(op))
}
