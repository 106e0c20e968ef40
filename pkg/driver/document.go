package driver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rodrigocam/rinha/pkg/ast"
)

// ErrMalformedDocument matches every document decoding failure.
var ErrMalformedDocument = errors.New("malformed document")

// DocumentError reports why a serialized document could not be turned into terms.
type DocumentError struct {
	Path    string
	Pointer string
	Message string
}

func (e *DocumentError) Error() string {
	var b bytes.Buffer
	b.WriteString("document")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Pointer != "" {
		fmt.Fprintf(&b, " at %s", e.Pointer)
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	return b.String()
}

func (e *DocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// Diagnostic converts the error into a CLI diagnostic.
func (e *DocumentError) Diagnostic() Diagnostic {
	message := e.Message
	if e.Pointer != "" {
		message = fmt.Sprintf("%s (at %s)", e.Message, e.Pointer)
	}
	return Diagnostic{
		Stage:    StageDocument,
		Severity: SeverityError,
		Kind:     "MalformedDocument",
		Message:  message,
		Location: ast.Location{Filename: e.Path},
	}
}

// LoadDocument reads and decodes the document stored at path.
func LoadDocument(path string) (*ast.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return DecodeDocument(data, path)
}

// DecodeDocument decodes a JSON document of the form
// {"name": ..., "expression": <term>, "location": ...}.
func DecodeDocument(data []byte, path string) (*ast.File, error) {
	d := &documentDecoder{path: path}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, d.fail("", "document is empty")
		}
		return nil, d.fail("", "invalid JSON: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, d.fail("", "unexpected data after document")
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, d.fail("", "document must be an object, got %s", jsonKind(raw))
	}
	name, err := d.optionalString(root, "name", "")
	if err != nil {
		return nil, err
	}
	expression, err := d.term(root, "expression", "")
	if err != nil {
		return nil, err
	}
	loc, err := d.location(root, "")
	if err != nil {
		return nil, err
	}
	return ast.NewFile(name, expression, loc), nil
}

type documentDecoder struct {
	path string
}

func (d *documentDecoder) fail(pointer string, format string, args ...any) error {
	return &DocumentError{Path: d.path, Pointer: pointer, Message: fmt.Sprintf(format, args...)}
}

func (d *documentDecoder) decodeTerm(node map[string]any, ptr string) (ast.Term, error) {
	kind, ok := node["kind"].(string)
	if !ok {
		return nil, d.fail(ptr, "node is missing a string \"kind\"")
	}
	var term ast.Term
	switch ast.NodeType(kind) {
	case ast.NodeInt:
		val, err := d.intValue(node, "value", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewIntLiteral(val)
	case ast.NodeStr:
		val, err := d.str(node, "value", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewStrLiteral(val)
	case ast.NodeBool:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, d.fail(ptr+"/value", "expected bool, got %s", jsonKind(node["value"]))
		}
		term = ast.NewBoolLiteral(val)
	case ast.NodeVar:
		name, err := d.str(node, "text", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewVar(name)
	case ast.NodeBinary:
		op, err := d.str(node, "op", ptr)
		if err != nil {
			return nil, err
		}
		if !ast.BinaryOperator(op).Valid() {
			return nil, d.fail(ptr+"/op", "unknown binary operator %q", op)
		}
		lhs, err := d.term(node, "lhs", ptr)
		if err != nil {
			return nil, err
		}
		rhs, err := d.term(node, "rhs", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewBinary(ast.BinaryOperator(op), lhs, rhs)
	case ast.NodeCall:
		callee, err := d.term(node, "callee", ptr)
		if err != nil {
			return nil, err
		}
		args, err := d.terms(node, "arguments", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewCall(callee, args)
	case ast.NodeFunction:
		params, err := d.parameters(node, ptr)
		if err != nil {
			return nil, err
		}
		body, err := d.term(node, "value", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewFunction(params, body)
	case ast.NodeLet:
		nameNode, err := d.object(node, "name", ptr)
		if err != nil {
			return nil, err
		}
		name, err := d.str(nameNode, "text", ptr+"/name")
		if err != nil {
			return nil, err
		}
		value, err := d.term(node, "value", ptr)
		if err != nil {
			return nil, err
		}
		next, err := d.term(node, "next", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewLet(name, value, next)
	case ast.NodeIf:
		cond, err := d.term(node, "condition", ptr)
		if err != nil {
			return nil, err
		}
		then, err := d.term(node, "then", ptr)
		if err != nil {
			return nil, err
		}
		otherwise, err := d.term(node, "otherwise", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewIf(cond, then, otherwise)
	case ast.NodePrint, ast.NodeFirst, ast.NodeSecond:
		value, err := d.term(node, "value", ptr)
		if err != nil {
			return nil, err
		}
		switch ast.NodeType(kind) {
		case ast.NodePrint:
			term = ast.NewPrint(value)
		case ast.NodeFirst:
			term = ast.NewFirst(value)
		default:
			term = ast.NewSecond(value)
		}
	case ast.NodeTuple:
		first, err := d.term(node, "first", ptr)
		if err != nil {
			return nil, err
		}
		second, err := d.term(node, "second", ptr)
		if err != nil {
			return nil, err
		}
		term = ast.NewTuple(first, second)
	default:
		return nil, d.fail(ptr+"/kind", "unknown node kind %q", kind)
	}
	loc, err := d.location(node, ptr)
	if err != nil {
		return nil, err
	}
	ast.SetLocation(term, loc)
	return term, nil
}

func (d *documentDecoder) term(node map[string]any, key, ptr string) (ast.Term, error) {
	child, err := d.object(node, key, ptr)
	if err != nil {
		return nil, err
	}
	return d.decodeTerm(child, ptr+"/"+key)
}

func (d *documentDecoder) terms(node map[string]any, key, ptr string) ([]ast.Term, error) {
	raw, ok := node[key].([]any)
	if !ok {
		return nil, d.fail(ptr+"/"+key, "expected array, got %s", jsonKind(node[key]))
	}
	out := make([]ast.Term, 0, len(raw))
	for idx, entry := range raw {
		itemPtr := fmt.Sprintf("%s/%s/%d", ptr, key, idx)
		child, ok := entry.(map[string]any)
		if !ok {
			return nil, d.fail(itemPtr, "expected object, got %s", jsonKind(entry))
		}
		term, err := d.decodeTerm(child, itemPtr)
		if err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, nil
}

func (d *documentDecoder) parameters(node map[string]any, ptr string) ([]string, error) {
	raw, ok := node["parameters"].([]any)
	if !ok {
		return nil, d.fail(ptr+"/parameters", "expected array, got %s", jsonKind(node["parameters"]))
	}
	params := make([]string, 0, len(raw))
	for idx, entry := range raw {
		itemPtr := fmt.Sprintf("%s/parameters/%d", ptr, idx)
		param, ok := entry.(map[string]any)
		if !ok {
			return nil, d.fail(itemPtr, "expected parameter object, got %s", jsonKind(entry))
		}
		name, err := d.str(param, "text", itemPtr)
		if err != nil {
			return nil, err
		}
		params = append(params, name)
	}
	return params, nil
}

func (d *documentDecoder) object(node map[string]any, key, ptr string) (map[string]any, error) {
	child, ok := node[key].(map[string]any)
	if !ok {
		return nil, d.fail(ptr+"/"+key, "expected object, got %s", jsonKind(node[key]))
	}
	return child, nil
}

func (d *documentDecoder) str(node map[string]any, key, ptr string) (string, error) {
	val, ok := node[key].(string)
	if !ok {
		return "", d.fail(ptr+"/"+key, "expected string, got %s", jsonKind(node[key]))
	}
	return val, nil
}

func (d *documentDecoder) optionalString(node map[string]any, key, ptr string) (string, error) {
	if _, present := node[key]; !present {
		return "", nil
	}
	return d.str(node, key, ptr)
}

func (d *documentDecoder) intValue(node map[string]any, key, ptr string) (int32, error) {
	num, ok := node[key].(json.Number)
	if !ok {
		return 0, d.fail(ptr+"/"+key, "expected integer, got %s", jsonKind(node[key]))
	}
	val, err := num.Int64()
	if err != nil {
		return 0, d.fail(ptr+"/"+key, "invalid integer %s", num.String())
	}
	if val < math.MinInt32 || val > math.MaxInt32 {
		return 0, d.fail(ptr+"/"+key, "integer %d does not fit in 32 bits", val)
	}
	return int32(val), nil
}

func (d *documentDecoder) offset(node map[string]any, key, ptr string) (int, error) {
	if _, present := node[key]; !present {
		return 0, nil
	}
	num, ok := node[key].(json.Number)
	if !ok {
		return 0, d.fail(ptr+"/"+key, "expected integer offset, got %s", jsonKind(node[key]))
	}
	val, err := num.Int64()
	if err != nil || val < 0 {
		return 0, d.fail(ptr+"/"+key, "invalid offset %s", num.String())
	}
	return int(val), nil
}

// location decodes the optional "location" object. A missing location is the
// zero Location; a malformed one is rejected.
func (d *documentDecoder) location(node map[string]any, ptr string) (ast.Location, error) {
	raw, present := node["location"]
	if !present || raw == nil {
		return ast.Location{}, nil
	}
	locPtr := ptr + "/location"
	obj, ok := raw.(map[string]any)
	if !ok {
		return ast.Location{}, d.fail(locPtr, "expected object, got %s", jsonKind(raw))
	}
	start, err := d.offset(obj, "start", locPtr)
	if err != nil {
		return ast.Location{}, err
	}
	end, err := d.offset(obj, "end", locPtr)
	if err != nil {
		return ast.Location{}, err
	}
	filename, err := d.optionalString(obj, "filename", locPtr)
	if err != nil {
		return ast.Location{}, err
	}
	return ast.Location{Start: start, End: end, Filename: filename}, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
