package runtime

import (
	"sort"

	"github.com/benbjohnson/immutable"

	"github.com/rodrigocam/rinha/pkg/ast"
)

// Context maps names to unevaluated terms. A Context is never modified once
// built; Bind returns a child that shares structure with its parent.
type Context struct {
	bindings *immutable.Map[string, ast.Term]
}

// EmptyContext returns a context with no bindings.
func EmptyContext() *Context {
	return &Context{bindings: immutable.NewMap[string, ast.Term](nil)}
}

// Bind returns a new context with name bound to term, shadowing any earlier binding.
func (c *Context) Bind(name string, term ast.Term) *Context {
	return &Context{bindings: c.bindings.Set(name, term)}
}

// Get retrieves the term bound to name.
func (c *Context) Get(name string) (ast.Term, bool) {
	return c.bindings.Get(name)
}

// Len returns the number of visible names.
func (c *Context) Len() int {
	return c.bindings.Len()
}

// Names returns the bound names in sorted order.
func (c *Context) Names() []string {
	names := make([]string, 0, c.bindings.Len())
	itr := c.bindings.Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Arguments is the argument stack handed from a Call to the Function it resolves to.
type Arguments []ast.Term
