package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/specialistvlad/rampcon/internal/colormodel"
)

// ModelInput describes one model input.
type ModelInput struct {
	Name    string  `cty:"name" json:"name"`
	Min     float64 `cty:"min" json:"min"`
	Max     float64 `cty:"max" json:"max"`
	Default float64 `cty:"default" json:"default"`
	Cyclic  bool    `cty:"cyclic" json:"cyclic"`
}

// Model describes one color model.
type Model struct {
	Name   string       `cty:"name" json:"name"`
	Inputs []ModelInput `cty:"inputs" json:"inputs"`
}

// DescribeModels converts models into their serializable form.
func DescribeModels(models []colormodel.ColorModel) []Model {
	return lo.Map(models, func(m colormodel.ColorModel, _ int) Model {
		return Model{
			Name: m.Name(),
			Inputs: lo.Map(m.Inputs(), func(in colormodel.Input, _ int) ModelInput {
				return ModelInput{Name: in.Name, Min: in.Min, Max: in.Max, Default: in.Default, Cyclic: in.Cyclic}
			}),
		}
	})
}

// WriteModels lists models and their inputs. Only text and json layouts
// exist; hex falls back to text.
func WriteModels(w io.Writer, format Format, models []colormodel.ColorModel) error {
	described := DescribeModels(models)
	if format == FormatJSON {
		return writeJSON(w, described)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tINPUT\tRANGE\tDEFAULT")
	for _, m := range described {
		for _, in := range m.Inputs {
			rng := fmt.Sprintf("[%g, %g]", in.Min, in.Max)
			if in.Cyclic {
				rng += " cyclic"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%g\n", m.Name, in.Name, rng, in.Default)
		}
	}
	return tw.Flush()
}
