package expr

import (
	"maps"
	"math"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// LoopVariable is the reserved name bound to the index being rendered.
const LoopVariable = "x"

// Context holds the variables visible to expressions. It is not safe for
// concurrent use; clone it per goroutine.
type Context struct {
	vars map[string]cty.Value
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{vars: make(map[string]cty.Value)}
}

// Set binds name to v. A NaN value removes the binding, since cty numbers
// cannot represent NaN.
func (c *Context) Set(name string, v float64) {
	if math.IsNaN(v) {
		delete(c.vars, name)
		return
	}
	c.vars[name] = cty.NumberFloatVal(v)
}

// Get returns the value bound to name.
func (c *Context) Get(name string) (float64, bool) {
	val, ok := c.vars[name]
	if !ok {
		return 0, false
	}
	f, _ := val.AsBigFloat().Float64()
	return f, true
}

func (c *Context) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

func (c *Context) Delete(name string) {
	delete(c.vars, name)
}

// Names returns the bound variable names, sorted.
func (c *Context) Names() []string {
	return slices.Sorted(maps.Keys(c.vars))
}

// Clone returns an independent copy. cty values are immutable so a shallow
// map copy is enough.
func (c *Context) Clone() *Context {
	return &Context{vars: maps.Clone(c.vars)}
}

func (c *Context) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: c.vars,
		Functions: functions,
	}
}
