package render

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/rampcon/internal/binding"
	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/expr"
)

// ErrModelMismatch is returned when the table was seeded from a model whose
// inputs differ from the model asked to render it.
var ErrModelMismatch = errors.New("table does not match color model")

// RenderRange renders count colors sequentially.
func RenderRange(model colormodel.ColorModel, table *binding.Table, count uint32) (*Result, error) {
	prog, err := prepare(model, table)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Model:  model.Name(),
		Colors: make([]colormodel.RGBA, count),
	}
	base := expr.NewContext()
	for n := uint32(0); n < count; n++ {
		c, fallbacks, err := renderIndex(model, prog, base, n)
		if err != nil {
			return nil, err
		}
		res.Colors[n] = c
		res.Fallbacks = append(res.Fallbacks, fallbacks...)
	}
	return res, nil
}

func prepare(model colormodel.ColorModel, table *binding.Table) (*binding.Program, error) {
	if err := checkModel(model, table); err != nil {
		return nil, err
	}
	prog, err := table.Clone().Compile()
	if err != nil {
		return nil, fmt.Errorf("compile binding table: %w", err)
	}
	return prog, nil
}

func checkModel(model colormodel.ColorModel, table *binding.Table) error {
	want := model.InputNames()
	rows := table.ModelRows()
	if len(want) != len(rows) {
		return fmt.Errorf("%w: model %q has %d inputs, table has %d rows", ErrModelMismatch, model.Name(), len(want), len(rows))
	}
	for i, row := range rows {
		if row.Name != want[i] {
			return fmt.Errorf("%w: model %q input %d is %q, table row is %q", ErrModelMismatch, model.Name(), i, want[i], row.Name)
		}
	}
	return nil
}

// renderIndex evaluates one index on a fresh clone of base, so no value
// leaks between indices.
func renderIndex(model colormodel.ColorModel, prog *binding.Program, base *expr.Context, n uint32) (colormodel.RGBA, []Fallback, error) {
	ctx := base.Clone()
	ctx.Set(expr.LoopVariable, float64(n))

	ev := prog.EvaluateAll(ctx)

	var fallbacks []Fallback
	values := make(map[string]float64, len(model.Inputs()))
	for _, in := range model.Inputs() {
		if v, ok := ev.Values[in.Name]; ok {
			values[in.Name] = v
			continue
		}
		values[in.Name] = in.Default
	}
	for row, err := range ev.Errors {
		fallbacks = append(fallbacks, Fallback{Index: n, Row: row, Err: err})
	}
	sortFallbacks(fallbacks)

	c, err := model.Convert(values)
	if err != nil {
		return 0, nil, fmt.Errorf("index %d: %w", n, err)
	}
	return c, fallbacks, nil
}
