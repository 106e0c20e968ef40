package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rodrigocam/rinha/pkg/ast"
	"github.com/rodrigocam/rinha/pkg/runtime"
)

func (e *evaluation) evaluate(term ast.Term, ctx *runtime.Context, stack runtime.Arguments) (runtime.Value, error) {
	if e.depth >= e.interp.maxDepth {
		return nil, locate(runtime.NewStackExhausted(e.interp.maxDepth), term)
	}
	e.depth++
	val, err := e.evaluateTerm(term, ctx, stack)
	e.depth--
	if err != nil {
		return nil, locate(err, term)
	}
	return val, nil
}

func (e *evaluation) evaluateTerm(term ast.Term, ctx *runtime.Context, stack runtime.Arguments) (runtime.Value, error) {
	switch n := term.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.StrLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Var:
		bound, ok := ctx.Get(n.Name)
		if !ok {
			return nil, runtime.NewUndefinedVariable(n.Name)
		}
		// Bindings hold terms, re-evaluated at every reference under the caller's state.
		return e.evaluate(bound, ctx, stack)
	case *ast.Let:
		return e.evaluate(n.Next, ctx.Bind(n.Name, n.Value), stack)
	case *ast.Function:
		return e.evaluateFunction(n, ctx, stack)
	case *ast.Call:
		return e.evaluateCall(n, ctx)
	case *ast.If:
		cond, err := e.evaluate(n.Condition, ctx, stack)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return e.evaluate(n.Then, ctx, stack)
		}
		return e.evaluate(n.Otherwise, ctx, stack)
	case *ast.Print:
		return e.evaluatePrint(n, ctx, stack)
	case *ast.First:
		tuple, err := e.evaluateTuple(n.Value, ctx, stack, "first")
		if err != nil {
			return nil, err
		}
		return tuple.First, nil
	case *ast.Second:
		tuple, err := e.evaluateTuple(n.Value, ctx, stack, "second")
		if err != nil {
			return nil, err
		}
		return tuple.Second, nil
	case *ast.Tuple:
		first, err := e.evaluate(n.First, ctx, stack)
		if err != nil {
			return nil, err
		}
		second, err := e.evaluate(n.Second, ctx, stack)
		if err != nil {
			return nil, err
		}
		return runtime.TupleValue{First: first, Second: second}, nil
	case *ast.Binary:
		return e.evaluateBinary(n, ctx, stack)
	case nil:
		return nil, fmt.Errorf("missing term")
	default:
		return nil, fmt.Errorf("unsupported term type: %s", n.NodeType())
	}
}

// evaluateFunction binds parameters positionally from the active stack. Extra
// parameters stay unbound and extra arguments are ignored; the stack itself is
// passed on unchanged.
func (e *evaluation) evaluateFunction(fn *ast.Function, ctx *runtime.Context, stack runtime.Arguments) (runtime.Value, error) {
	local := ctx
	for idx, param := range fn.Parameters {
		if idx >= len(stack) {
			break
		}
		local = local.Bind(param, stack[idx])
	}
	return e.evaluate(fn.Body, local, stack)
}

func (e *evaluation) evaluateCall(call *ast.Call, ctx *runtime.Context) (runtime.Value, error) {
	args := make(runtime.Arguments, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := e.evaluate(argExpr, ctx, nil)
		if err != nil {
			return nil, err
		}
		reified, err := runtime.Reify(val, argExpr.Location())
		if err != nil {
			return nil, locate(err, argExpr)
		}
		args = append(args, reified)
	}
	if e.interp.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.interp.logger.Debug("call",
			slog.String("callee", describeCallee(call.Callee)),
			slog.Int("argument-count", len(args)),
			slog.Int("depth", e.depth))
	}
	return e.evaluate(call.Callee, ctx, args)
}

func (e *evaluation) evaluatePrint(p *ast.Print, ctx *runtime.Context, stack runtime.Arguments) (runtime.Value, error) {
	val, err := e.evaluate(p.Value, ctx, stack)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(e.interp.stdout, runtime.Format(val)+"\n"); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return runtime.NilValue{}, nil
}

func (e *evaluation) evaluateTuple(term ast.Term, ctx *runtime.Context, stack runtime.Arguments, operation string) (runtime.TupleValue, error) {
	val, err := e.evaluate(term, ctx, stack)
	if err != nil {
		return runtime.TupleValue{}, err
	}
	tuple, ok := val.(runtime.TupleValue)
	if !ok {
		return runtime.TupleValue{}, runtime.NewTypeFault(operation, runtime.KindTuple.String(), val.Kind().String())
	}
	return tuple, nil
}

func describeCallee(term ast.Term) string {
	if v, ok := term.(*ast.Var); ok {
		return v.Name
	}
	if term == nil {
		return "<missing>"
	}
	return "<" + string(term.NodeType()) + ">"
}

// locate stamps the term's location on a fault that does not carry one yet.
func locate(err error, term ast.Term) error {
	if term == nil {
		return err
	}
	if fault, ok := runtime.AsFault(err); ok && !fault.Located() {
		fault.Locate(term.Location())
	}
	return err
}
