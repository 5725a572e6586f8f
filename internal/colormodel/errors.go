// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the errors returned when color model inputs do not match
// the model.

package colormodel

import "fmt"

// MissingInputError is returned by Convert when an input the model requires
// is absent from the value map.
type MissingInputError struct {
	Model string
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("color model %q: missing input %q", e.Model, e.Input)
}

// UnknownInputError is returned by Convert when the value map carries a key
// that is not one of the model's inputs.
type UnknownInputError struct {
	Model string
	Input string
}

func (e *UnknownInputError) Error() string {
	return fmt.Sprintf("color model %q: unknown input %q", e.Model, e.Input)
}

// ArityError is returned by ConvertOne when the value vector does not match
// the number of model inputs.
type ArityError struct {
	Model string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("color model %q: expected %d values, got %d", e.Model, e.Want, e.Got)
}
