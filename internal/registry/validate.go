package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/specialistvlad/rampcon/internal/expr"
)

// Validate checks that every registered model can be bound by a table: a
// non-empty name, at least one input, unique input names that are valid
// identifiers, and none shadowing the loop variable.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Names() {
		m := r.models[name]
		if name == "" {
			errs = append(errs, "model with empty name")
		}

		inputs := m.Inputs()
		if len(inputs) == 0 {
			errs = append(errs, fmt.Sprintf("model '%s': declares no inputs", name))
			continue
		}

		seen := make(map[string]struct{}, len(inputs))
		for _, in := range inputs {
			switch {
			case !expr.ValidIdentifier(in.Name):
				errs = append(errs, fmt.Sprintf("model '%s': input '%s' is not a valid identifier", name, in.Name))
			case in.Name == expr.LoopVariable:
				errs = append(errs, fmt.Sprintf("model '%s': input '%s' shadows the loop variable", name, in.Name))
			}
			if _, dup := seen[in.Name]; dup {
				errs = append(errs, fmt.Sprintf("model '%s': input '%s' declared more than once", name, in.Name))
			}
			seen[in.Name] = struct{}{}

			if in.Min > in.Max {
				errs = append(errs, fmt.Sprintf("model '%s', input '%s': min %g is greater than max %g", name, in.Name, in.Min, in.Max))
			}
		}
		logger.Debug("Validated color model.", "name", name, "inputs", len(inputs))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
