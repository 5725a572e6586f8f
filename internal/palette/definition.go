// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models a palette as declared in a file and builds its binding
// table.

package palette

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/rampcon/internal/binding"
	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/registry"
)

// DefaultCount is used when a palette omits count.
const DefaultCount uint32 = 16

// Binding is one name = expression pair with its exact source text.
type Binding struct {
	Name   string
	Source string
	Range  hcl.Range
}

// Definition is a palette as declared in a file.
type Definition struct {
	Name        string
	Model       string
	Count       uint32
	Description string
	Inputs      []Binding
	Aux         []Binding
	File        string
}

// Table resolves the palette's model and builds its binding table. Model
// inputs the palette does not set are left empty and fall back to their
// defaults at render time.
func (d *Definition) Table(reg *registry.Registry) (*binding.Table, colormodel.ColorModel, error) {
	model, ok := reg.Lookup(d.Model)
	if !ok {
		return nil, nil, d.errorf(Binding{}, "unknown color model '%s', available: %v", d.Model, reg.Names())
	}

	table := binding.SeedFromModel(model)
	for _, aux := range d.Aux {
		if err := table.AddAux(aux.Name, aux.Source); err != nil {
			return nil, nil, d.errorf(aux, "aux '%s': %w", aux.Name, err)
		}
	}
	for _, in := range d.Inputs {
		row, ok := table.Row(in.Name)
		if !ok || row.Kind != binding.ModelRow {
			return nil, nil, d.errorf(in, "'%s' is not an input of color model '%s', expected one of %v", in.Name, model.Name(), model.InputNames())
		}
		if err := table.SetExpression(in.Name, in.Source); err != nil {
			return nil, nil, d.errorf(in, "input '%s': %w", in.Name, err)
		}
	}
	return table, model, nil
}

// where locates a binding for error messages. It is empty for palettes
// that were not read from a file.
func (d *Definition) where(b Binding) string {
	if b.Range.Filename != "" {
		return b.Range.String()
	}
	return d.File
}

// errorf prefixes a message with the palette name and, when known, its location.
func (d *Definition) errorf(b Binding, format string, args ...any) error {
	prefix := fmt.Sprintf("palette '%s'", d.Name)
	if loc := d.where(b); loc != "" {
		prefix += " (" + loc + ")"
	}
	return fmt.Errorf("%s: "+format, append([]any{prefix}, args...)...)
}

// Unset returns the model inputs the palette leaves without an expression.
func (d *Definition) Unset(model colormodel.ColorModel) []string {
	set := make(map[string]struct{}, len(d.Inputs))
	for _, in := range d.Inputs {
		set[in.Name] = struct{}{}
	}
	var out []string
	for _, name := range model.InputNames() {
		if _, ok := set[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
