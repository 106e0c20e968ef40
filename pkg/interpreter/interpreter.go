package interpreter

import (
	"io"
	"log/slog"

	"github.com/rodrigocam/rinha/pkg/ast"
	"github.com/rodrigocam/rinha/pkg/runtime"
)

// DefaultMaxDepth bounds evaluation nesting when no limit is configured.
const DefaultMaxDepth = 100000

// Interpreter evaluates rinha documents. It only holds configuration, so one
// Interpreter may serve several runs; each run carries its own depth state.
type Interpreter struct {
	stdout   io.Writer
	logger   *slog.Logger
	maxDepth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs Print output to w.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.stdout = w
		}
	}
}

// WithLogger installs a logger for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxDepth sets the nesting limit past which evaluation fails with StackExhausted.
func WithMaxDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxDepth = depth
		}
	}
}

// New returns an interpreter that discards output unless configured otherwise.
func New(opts ...Option) *Interpreter {
	interp := &Interpreter{
		stdout:   io.Discard,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(interp)
	}
	return interp
}

// MaxDepth reports the configured nesting limit.
func (i *Interpreter) MaxDepth() int {
	return i.maxDepth
}

// Run evaluates the document's root expression with an empty context and an
// empty argument stack.
func (i *Interpreter) Run(file *ast.File) (runtime.Value, error) {
	i.logger.Debug("run document", slog.String("name", file.Name))
	return i.Evaluate(file.Expression, runtime.EmptyContext(), nil)
}

// Evaluate evaluates term under ctx with stack as the pending call arguments.
func (i *Interpreter) Evaluate(term ast.Term, ctx *runtime.Context, stack runtime.Arguments) (runtime.Value, error) {
	if ctx == nil {
		ctx = runtime.EmptyContext()
	}
	ev := &evaluation{interp: i}
	val, err := ev.evaluate(term, ctx, stack)
	if err != nil {
		if fault, ok := runtime.AsFault(err); ok {
			i.logger.Debug("evaluation aborted",
				slog.String("fault", string(fault.Kind)),
				slog.String("location", fault.Location.String()))
		}
		return nil, err
	}
	return val, nil
}

// evaluation is the per-run mutable state.
type evaluation struct {
	interp *Interpreter
	depth  int
}
