package ast

import "fmt"

type NodeType string

const (
	NodeInt      NodeType = "Int"
	NodeStr      NodeType = "Str"
	NodeBool     NodeType = "Bool"
	NodeVar      NodeType = "Var"
	NodeBinary   NodeType = "Binary"
	NodeCall     NodeType = "Call"
	NodeFunction NodeType = "Function"
	NodeLet      NodeType = "Let"
	NodeIf       NodeType = "If"
	NodePrint    NodeType = "Print"
	NodeFirst    NodeType = "First"
	NodeSecond   NodeType = "Second"
	NodeTuple    NodeType = "Tuple"
)

// Location points back into the source file a node was parsed from.
// Offsets are byte offsets as reported by the upstream parser.
type Location struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Filename string `json:"filename"`
}

func (l Location) IsZero() bool {
	return l.Start == 0 && l.End == 0 && l.Filename == ""
}

func (l Location) String() string {
	switch {
	case l.Filename != "" && (l.Start != 0 || l.End != 0):
		return fmt.Sprintf("%s:%d-%d", l.Filename, l.Start, l.End)
	case l.Filename != "":
		return l.Filename
	case l.Start != 0 || l.End != 0:
		return fmt.Sprintf("offset %d-%d", l.Start, l.End)
	default:
		return ""
	}
}

// Term is an immutable program fragment. The variant set is closed.
type Term interface {
	NodeType() NodeType
	Location() Location
	isTerm()
}

type nodeImpl struct {
	Type NodeType `json:"kind"`
	loc  Location
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType        { return n.Type }
func (n nodeImpl) Location() Location        { return n.loc }
func (nodeImpl) isTerm()                     {}
func (n *nodeImpl) setLocation(loc Location) { n.loc = loc }

type locatable interface {
	setLocation(Location)
}

// SetLocation attaches loc to term. It is meant for builders and decoders,
// before the tree is handed to the evaluator.
func SetLocation(term Term, loc Location) {
	if l, ok := term.(locatable); ok {
		l.setLocation(loc)
	}
}

// File is the root of a serialized document.
type File struct {
	Name       string   `json:"name"`
	Expression Term     `json:"expression"`
	Location   Location `json:"location"`
}

func NewFile(name string, expression Term, loc Location) *File {
	return &File{Name: name, Expression: expression, Location: loc}
}

// Literals

type IntLiteral struct {
	nodeImpl

	Value int32 `json:"value"`
}

func NewIntLiteral(value int32) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeInt), Value: value}
}

type StrLiteral struct {
	nodeImpl

	Value string `json:"value"`
}

func NewStrLiteral(value string) *StrLiteral {
	return &StrLiteral{nodeImpl: newNodeImpl(NodeStr), Value: value}
}

type BoolLiteral struct {
	nodeImpl

	Value bool `json:"value"`
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBool), Value: value}
}

// Var references a name bound by Let or by a function parameter.
type Var struct {
	nodeImpl

	Name string `json:"text"`
}

func NewVar(name string) *Var {
	return &Var{nodeImpl: newNodeImpl(NodeVar), Name: name}
}

// Expressions

type BinaryOperator string

const (
	OpAdd BinaryOperator = "Add"
	OpSub BinaryOperator = "Sub"
	OpMul BinaryOperator = "Mul"
	OpDiv BinaryOperator = "Div"
	OpRem BinaryOperator = "Rem"
	OpEq  BinaryOperator = "Eq"
	OpNeq BinaryOperator = "Neq"
	OpLt  BinaryOperator = "Lt"
	OpGt  BinaryOperator = "Gt"
	OpLte BinaryOperator = "Lte"
	OpGte BinaryOperator = "Gte"
	OpAnd BinaryOperator = "And"
	OpOr  BinaryOperator = "Or"
)

// Valid reports whether op is one of the known operators.
func (op BinaryOperator) Valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpRem,
		OpEq, OpNeq, OpLt, OpGt, OpLte, OpGte,
		OpAnd, OpOr:
		return true
	default:
		return false
	}
}

type Binary struct {
	nodeImpl

	Op  BinaryOperator `json:"op"`
	Lhs Term           `json:"lhs"`
	Rhs Term           `json:"rhs"`
}

func NewBinary(op BinaryOperator, lhs, rhs Term) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Op: op, Lhs: lhs, Rhs: rhs}
}

type Call struct {
	nodeImpl

	Callee    Term   `json:"callee"`
	Arguments []Term `json:"arguments"`
}

func NewCall(callee Term, arguments []Term) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: arguments}
}

// Function binds its parameters from the argument stack that is active
// when it is evaluated, then evaluates Body.
type Function struct {
	nodeImpl

	Parameters []string `json:"parameters"`
	Body       Term     `json:"value"`
}

func NewFunction(parameters []string, body Term) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Parameters: parameters, Body: body}
}

type Let struct {
	nodeImpl

	Name  string `json:"name"`
	Value Term   `json:"value"`
	Next  Term   `json:"next"`
}

func NewLet(name string, value, next Term) *Let {
	return &Let{nodeImpl: newNodeImpl(NodeLet), Name: name, Value: value, Next: next}
}

type If struct {
	nodeImpl

	Condition Term `json:"condition"`
	Then      Term `json:"then"`
	Otherwise Term `json:"otherwise"`
}

func NewIf(condition, then, otherwise Term) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Otherwise: otherwise}
}

type Print struct {
	nodeImpl

	Value Term `json:"value"`
}

func NewPrint(value Term) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

type First struct {
	nodeImpl

	Value Term `json:"value"`
}

func NewFirst(value Term) *First {
	return &First{nodeImpl: newNodeImpl(NodeFirst), Value: value}
}

type Second struct {
	nodeImpl

	Value Term `json:"value"`
}

func NewSecond(value Term) *Second {
	return &Second{nodeImpl: newNodeImpl(NodeSecond), Value: value}
}

type Tuple struct {
	nodeImpl

	First  Term `json:"first"`
	Second Term `json:"second"`
}

func NewTuple(first, second Term) *Tuple {
	return &Tuple{nodeImpl: newNodeImpl(NodeTuple), First: first, Second: second}
}
