// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package colormodel is the color-space conversion layer. A color model is a
// named, ordered list of scalar inputs together with a conversion from those
// inputs to a packed RGBA value.
//
// Models form a closed set of tagged variants (see Space). Every variant is
// exposed through the same ColorModel interface, so callers such as the
// binding table and the renderer never carry variant-specific logic.
//
// Conversion is positional: the values passed to ConvertOne must follow the
// order returned by Inputs. The map-based Convert entry point is strict about
// its keys; they must be exactly the model's input names.
package colormodel
