// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the supported color spaces, their inputs and their
// conversions to RGBA.

package colormodel

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Space tags the color space a model is built on.
type Space int

const (
	SpaceHSV Space = iota
	SpaceHSL
	SpaceHCL
	SpaceOkLab
	SpaceOkLch
	SpaceRGB
)

// Spaces lists every supported space in declaration order.
var Spaces = []Space{SpaceHSV, SpaceHSL, SpaceHCL, SpaceOkLab, SpaceOkLch, SpaceRGB}

func (s Space) String() string {
	switch s {
	case SpaceHSV:
		return "hsv"
	case SpaceHSL:
		return "hsl"
	case SpaceHCL:
		return "hcl"
	case SpaceOkLab:
		return "oklab"
	case SpaceOkLch:
		return "oklch"
	case SpaceRGB:
		return "rgb"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

func hue(name string) Input {
	return Input{Name: name, Min: 0, Max: 360, Default: 0, Cyclic: true}
}

func unit(name string) Input {
	return Input{Name: name, Min: 0, Max: 1, Default: 0}
}

// inputs returns the native component order of the space.
func (s Space) inputs() []Input {
	switch s {
	case SpaceHSV:
		return []Input{hue("h"), unit("s"), unit("v")}
	case SpaceHSL:
		return []Input{hue("h"), unit("s"), unit("l")}
	case SpaceHCL:
		return []Input{hue("h"), unit("c"), unit("l")}
	case SpaceOkLab:
		return []Input{
			unit("l"),
			{Name: "a", Min: -0.5, Max: 0.5, Default: 0},
			{Name: "b", Min: -0.5, Max: 0.5, Default: 0},
		}
	case SpaceOkLch:
		return []Input{unit("l"), {Name: "c", Min: 0, Max: 0.5, Default: 0}, hue("h")}
	case SpaceRGB:
		return []Input{unit("r"), unit("g"), unit("b")}
	default:
		panic(fmt.Sprintf("colormodel: unsupported space %d", int(s)))
	}
}

// toRGB converts normalized components, already in native order, to an sRGB
// color. The result may be out of gamut; callers clamp.
func (s Space) toRGB(v []float64) colorful.Color {
	switch s {
	case SpaceHSV:
		return colorful.Hsv(v[0], v[1], v[2])
	case SpaceHSL:
		return colorful.Hsl(v[0], v[1], v[2])
	case SpaceHCL:
		return colorful.Hcl(v[0], v[1], v[2])
	case SpaceOkLab:
		return colorful.OkLab(v[0], v[1], v[2])
	case SpaceOkLch:
		return colorful.OkLch(v[0], v[1], v[2])
	case SpaceRGB:
		return colorful.Color{R: v[0], G: v[1], B: v[2]}
	default:
		panic(fmt.Sprintf("colormodel: unsupported space %d", int(s)))
	}
}
