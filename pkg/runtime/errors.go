package runtime

import (
	"errors"
	"fmt"

	"github.com/rodrigocam/rinha/pkg/ast"
)

// FaultKind classifies an unrecoverable evaluation error.
type FaultKind string

const (
	FaultUndefinedVariable      FaultKind = "UndefinedVariable"
	FaultType                   FaultKind = "TypeFault"
	FaultArithmetic             FaultKind = "ArithmeticFault"
	FaultUnsupportedReification FaultKind = "UnsupportedReification"
	FaultStackExhausted         FaultKind = "StackExhausted"
)

var (
	ErrUndefinedVariable      = errors.New("undefined variable")
	ErrTypeFault              = errors.New("type fault")
	ErrArithmetic             = errors.New("arithmetic fault")
	ErrUnsupportedReification = errors.New("unsupported reification")
	ErrStackExhausted         = errors.New("stack exhausted")
)

// Fault aborts the current run. Location is filled in by the evaluator with
// the innermost node whose evaluation failed.
type Fault struct {
	Kind      FaultKind
	Message   string
	Name      string
	Operation string
	Expected  string
	Actual    string
	Location  ast.Location
	located   bool
}

func (f *Fault) Error() string {
	return f.Message
}

func (f *Fault) Unwrap() error {
	switch f.Kind {
	case FaultUndefinedVariable:
		return ErrUndefinedVariable
	case FaultType:
		return ErrTypeFault
	case FaultArithmetic:
		return ErrArithmetic
	case FaultUnsupportedReification:
		return ErrUnsupportedReification
	case FaultStackExhausted:
		return ErrStackExhausted
	default:
		return nil
	}
}

// Located reports whether a location has already been attached.
func (f *Fault) Located() bool {
	return f.located
}

// Locate attaches loc unless an inner node already did.
func (f *Fault) Locate(loc ast.Location) {
	if f.located {
		return
	}
	f.Location = loc
	f.located = true
}

func NewUndefinedVariable(name string) *Fault {
	return &Fault{
		Kind:    FaultUndefinedVariable,
		Name:    name,
		Message: fmt.Sprintf("undefined variable '%s'", name),
	}
}

func NewTypeFault(operation, expected, actual string) *Fault {
	return &Fault{
		Kind:      FaultType,
		Operation: operation,
		Expected:  expected,
		Actual:    actual,
		Message:   fmt.Sprintf("%s: expected %s, got %s", operation, expected, actual),
	}
}

func NewArithmeticFault(operation string) *Fault {
	return &Fault{
		Kind:      FaultArithmetic,
		Operation: operation,
		Message:   fmt.Sprintf("%s: division by zero", operation),
	}
}

func NewUnsupportedReification(actual string) *Fault {
	return &Fault{
		Kind:    FaultUnsupportedReification,
		Actual:  actual,
		Message: fmt.Sprintf("cannot pass %s value as a call argument", actual),
	}
}

func NewStackExhausted(limit int) *Fault {
	return &Fault{
		Kind:    FaultStackExhausted,
		Message: fmt.Sprintf("evaluation depth exceeded %d", limit),
	}
}

// AsFault returns the Fault carried by err, if any.
func AsFault(err error) (*Fault, bool) {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}
