// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the packed RGBA value every model converts into.

package colormodel

import (
	"fmt"
	"image/color"
)

// RGBA is a color packed as R<<24 | G<<16 | B<<8 | A. Alpha is always 0xFF
// for colors produced by a model.
type RGBA uint32

// Pack builds an RGBA from 8-bit channels with an opaque alpha.
func Pack(r, g, b uint8) RGBA {
	return RGBA(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xFF)
}

func (c RGBA) R() uint8 { return uint8(c >> 24) }
func (c RGBA) G() uint8 { return uint8(c >> 16) }
func (c RGBA) B() uint8 { return uint8(c >> 8) }
func (c RGBA) A() uint8 { return uint8(c) }

// Hex renders the color as #rrggbbaa.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// Color converts to the standard library representation.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

func (c RGBA) String() string {
	return c.Hex()
}
