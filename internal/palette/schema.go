// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the HCL schema a palette file is decoded with.

package palette

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all top-level blocks from any file.
type fileRoot struct {
	Palettes []*paletteBlock `hcl:"palette,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type paletteBlock struct {
	Name        string         `hcl:"name,label"`
	Model       string         `hcl:"model"`
	Count       hcl.Expression `hcl:"count,optional"`
	Description string         `hcl:"description,optional"`
	Aux         *rowsBlock     `hcl:"aux,block"`
	Inputs      *rowsBlock     `hcl:"inputs,block"`
}

// rowsBlock holds name = expression pairs that are kept as text.
type rowsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
