package expr

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Expression is a parsed expression, ready for repeated evaluation.
type Expression struct {
	source     string
	syntax     hclsyntax.Expression
	references []string
	functions  []string
}

// Parse parses text as a single expression. Variables must be plain names;
// attribute or index access on a variable is rejected.
func Parse(text string) (*Expression, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Source: text, Reason: "empty expression"}
	}

	syntax, diags := hclsyntax.ParseExpression([]byte(text), "expression", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, &ParseError{Source: text, Diags: diags}
	}

	refs := make(map[string]struct{})
	for _, traversal := range syntax.Variables() {
		if len(traversal) > 1 {
			return nil, &ParseError{
				Source: text,
				Reason: fmt.Sprintf("%q: variables are plain names, attribute and index access is not supported", TraversalKey(traversal)),
			}
		}
		refs[traversal.RootName()] = struct{}{}
	}

	return &Expression{
		source:     text,
		syntax:     syntax,
		references: sortedKeys(refs),
		functions:  calledFunctions(syntax),
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level literals.
func MustParse(text string) *Expression {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the original text.
func (e *Expression) Source() string { return e.source }

// References returns the unique variable names the expression reads, sorted.
func (e *Expression) References() []string { return e.references }

// Functions returns the unique function names the expression calls, sorted.
func (e *Expression) Functions() []string { return e.functions }

// IsConstant reports whether the expression reads no variables.
func (e *Expression) IsConstant() bool { return len(e.references) == 0 }

// Evaluate computes the expression against ctx. The result must be a known,
// finite number.
func (e *Expression) Evaluate(ctx *Context) (float64, error) {
	if ctx == nil {
		ctx = NewContext()
	}

	val, diags := e.syntax.Value(ctx.evalContext())
	if diags.HasErrors() {
		return 0, &EvaluationError{Source: e.source, Diags: diags}
	}

	switch {
	case val.IsNull():
		return 0, &EvaluationError{Source: e.source, Reason: "result is null"}
	case !val.IsWhollyKnown():
		return 0, &EvaluationError{Source: e.source, Reason: "result is unknown"}
	case !val.Type().Equals(cty.Number):
		return 0, &EvaluationError{Source: e.source, Reason: fmt.Sprintf("result must be a number, got %s", val.Type().FriendlyName())}
	}

	if val.AsBigFloat().IsInf() {
		return 0, &EvaluationError{Source: e.source, Reason: "result is not finite (division by zero?)"}
	}

	out, _ := val.AsBigFloat().Float64()
	if math.IsInf(out, 0) {
		return 0, &EvaluationError{Source: e.source, Reason: "result overflows float64"}
	}
	return out, nil
}

// keywords parse as literals, so a variable with one of these names could
// never be referenced.
var keywords = map[string]struct{}{"true": {}, "false": {}, "null": {}}

// ValidIdentifier reports whether name can be used as a variable name.
func ValidIdentifier(name string) bool {
	if _, ok := keywords[name]; ok {
		return false
	}
	return hclsyntax.ValidIdentifier(name)
}

// TraversalKey renders a traversal in canonical form, e.g. a.b[0].
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

func calledFunctions(syntax hclsyntax.Expression) []string {
	names := make(map[string]struct{})
	hclsyntax.VisitAll(syntax, func(node hclsyntax.Node) hcl.Diagnostics {
		if call, ok := node.(*hclsyntax.FunctionCallExpr); ok {
			names[call.Name] = struct{}{}
		}
		return nil
	})
	return sortedKeys(names)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
