// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines ColorModel and the typed model built on a Space.

package colormodel

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Input describes one scalar input of a color model. Values outside
// [Min, Max] are clamped, or wrapped when Cyclic is set (hue angles).
// Default is substituted when no usable value is available.
type Input struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	Cyclic  bool
}

// normalize maps any float onto the input's domain.
func (in Input) normalize(v float64) float64 {
	if math.IsNaN(v) {
		return in.Default
	}
	if in.Cyclic {
		if math.IsInf(v, 0) {
			return in.Default
		}
		span := in.Max - in.Min
		v = math.Mod(v-in.Min, span)
		if v < 0 {
			v += span
		}
		return v + in.Min
	}
	return min(max(v, in.Min), in.Max)
}

// ColorModel is the capability every color model exposes.
type ColorModel interface {
	// Name is the user-facing identifier.
	Name() string
	// Inputs returns the inputs in the order ConvertOne expects them.
	Inputs() []Input
	// InputNames returns the names of Inputs, same order.
	InputNames() []string
	// ConvertOne converts a positional value vector.
	ConvertOne(values []float64) (RGBA, error)
	// Convert converts a map whose keys are exactly InputNames.
	Convert(values map[string]float64) (RGBA, error)
	// ConvertMany converts each map in order.
	ConvertMany(values []map[string]float64) ([]RGBA, error)
}

// Model is the concrete ColorModel for one Space. It is immutable.
type Model struct {
	space  Space
	name   string
	inputs []Input
}

var _ ColorModel = (*Model)(nil)

// New builds the model for a space, named after the space.
func New(space Space) *Model {
	return NewNamed(space.String(), space)
}

// NewNamed builds the model for a space under a custom name.
func NewNamed(name string, space Space) *Model {
	return &Model{
		space:  space,
		name:   name,
		inputs: space.inputs(),
	}
}

func HSV() *Model   { return New(SpaceHSV) }
func HSL() *Model   { return New(SpaceHSL) }
func HCL() *Model   { return New(SpaceHCL) }
func OkLab() *Model { return New(SpaceOkLab) }
func OkLch() *Model { return New(SpaceOkLch) }
func RGB() *Model   { return New(SpaceRGB) }

func (m *Model) Name() string { return m.name }

func (m *Model) Space() Space { return m.space }

func (m *Model) Inputs() []Input {
	return slices.Clone(m.inputs)
}

func (m *Model) InputNames() []string {
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = in.Name
	}
	return names
}

// ConvertOne clamps each value into its input's domain, converts to RGB,
// clamps the result into gamut and packs it with an opaque alpha.
func (m *Model) ConvertOne(values []float64) (RGBA, error) {
	if len(values) != len(m.inputs) {
		return 0, &ArityError{Model: m.name, Want: len(m.inputs), Got: len(values)}
	}

	norm := make([]float64, len(values))
	for i, in := range m.inputs {
		norm[i] = in.normalize(values[i])
	}

	r, g, b := m.space.toRGB(norm).Clamped().RGB255()
	return Pack(r, g, b), nil
}

// Convert reorders a named value map into input order and converts it.
func (m *Model) Convert(values map[string]float64) (RGBA, error) {
	vec := make([]float64, len(m.inputs))
	for i, in := range m.inputs {
		v, ok := values[in.Name]
		if !ok {
			return 0, &MissingInputError{Model: m.name, Input: in.Name}
		}
		vec[i] = v
	}

	if len(values) != len(m.inputs) {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !slices.Contains(m.InputNames(), k) {
				return 0, &UnknownInputError{Model: m.name, Input: k}
			}
		}
	}

	return m.ConvertOne(vec)
}

// ConvertMany converts every map in order. It stops at the first map that
// violates the input contract.
func (m *Model) ConvertMany(values []map[string]float64) ([]RGBA, error) {
	out := make([]RGBA, 0, len(values))
	for i, vals := range values {
		c, err := m.Convert(vals)
		if err != nil {
			return nil, fmt.Errorf("value set %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
