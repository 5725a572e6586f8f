package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ParseError reports expression text that does not form a valid expression.
type ParseError struct {
	Source string
	Reason string
	Diags  hcl.Diagnostics
}

func (e *ParseError) Error() string {
	if e.Diags.HasErrors() {
		return fmt.Sprintf("parse %q: %s", e.Source, e.Diags.Error())
	}
	return fmt.Sprintf("parse %q: %s", e.Source, e.Reason)
}

// Unwrap exposes the HCL diagnostics to errors.As.
func (e *ParseError) Unwrap() error {
	if e.Diags.HasErrors() {
		return e.Diags
	}
	return nil
}

// EvaluationError reports a well-formed expression that could not produce a
// finite number: undefined variables, unknown functions, non-numeric
// results, division by zero.
type EvaluationError struct {
	Source string
	Reason string
	Diags  hcl.Diagnostics
}

func (e *EvaluationError) Error() string {
	if e.Diags.HasErrors() {
		return fmt.Sprintf("evaluate %q: %s", e.Source, e.Diags.Error())
	}
	return fmt.Sprintf("evaluate %q: %s", e.Source, e.Reason)
}

// Unwrap exposes the HCL diagnostics to errors.As.
func (e *EvaluationError) Unwrap() error {
	if e.Diags.HasErrors() {
		return e.Diags
	}
	return nil
}
