package palette

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/specialistvlad/rampcon/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader reads palette files.
type Loader struct{}

// NewLoader creates a new palette loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every palette in the given files and directories. Palettes are
// returned in file order, then declaration order. A palette name may only
// be declared once across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Palette loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered palette files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*Definition
	declared := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Palettes {
			if prev, dup := declared[block.Name]; dup {
				return nil, fmt.Errorf("palette '%s' declared in %s is already declared in %s", block.Name, file, prev)
			}
			declared[block.Name] = file

			def, err := l.translatePalette(ctx, block, hclFile.Bytes, file)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	}

	logger.Debug("Palette loading complete.", "palettes", len(defs))
	return defs, nil
}

// translatePalette converts the decoded block into a Definition.
func (l *Loader) translatePalette(ctx context.Context, b *paletteBlock, src []byte, file string) (*Definition, error) {
	logger := ctxlog.FromContext(ctx).With("palette", b.Name)

	count := DefaultCount
	if isExprDefined(b.Count) {
		c, err := decodeCount(b.Count)
		if err != nil {
			return nil, fmt.Errorf("palette '%s' in %s: %w", b.Name, file, err)
		}
		count = c
	} else {
		logger.Debug("`count` attribute is not defined, using default.", "count", DefaultCount)
	}

	aux, err := extractBindings(b.Aux, src)
	if err != nil {
		return nil, fmt.Errorf("palette '%s' in %s: aux: %w", b.Name, file, err)
	}
	inputs, err := extractBindings(b.Inputs, src)
	if err != nil {
		return nil, fmt.Errorf("palette '%s' in %s: inputs: %w", b.Name, file, err)
	}

	logger.Debug("Translated palette.", "model", b.Model, "count", count, "aux", len(aux), "inputs", len(inputs))
	return &Definition{
		Name:        b.Name,
		Model:       b.Model,
		Count:       count,
		Description: b.Description,
		Inputs:      inputs,
		Aux:         aux,
		File:        file,
	}, nil
}

// isExprDefined reports whether an optional attribute was present in the
// source. Omitted optional attributes decode to a zero-width expression.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

func decodeCount(expr hcl.Expression) (uint32, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid count: %w", diags)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("invalid count: %w", err)
	}
	if num.IsNull() {
		return 0, fmt.Errorf("invalid count: must not be null")
	}

	var n int64
	if err := gocty.FromCtyValue(num, &n); err != nil {
		return 0, fmt.Errorf("invalid count: %w", err)
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("invalid count %d: must be between 0 and %d", n, uint32(math.MaxUint32))
	}
	return uint32(n), nil
}

// extractBindings keeps each attribute's exact source text, in declaration
// order.
func extractBindings(block *rowsBlock, src []byte) ([]Binding, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make([]Binding, 0, len(attrs))
	for name, attr := range attrs {
		out = append(out, Binding{
			Name:   name,
			Source: string(attr.Expr.Range().SliceBytes(src)),
			Range:  attr.Range,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start.Byte < out[j].Range.Start.Byte
	})
	return out, nil
}
