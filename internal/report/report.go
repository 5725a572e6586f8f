package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/render"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Format selects a report layout.
type Format string

const (
	FormatHex  Format = "hex"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatHex, FormatText, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Formats, f) {
		return "", fmt.Errorf("unknown report format '%s', expected one of %v", s, Formats)
	}
	return f, nil
}

// Color is one rendered color in a Report.
type Color struct {
	Index uint32 `cty:"index" json:"index"`
	Hex   string `cty:"hex" json:"hex"`
	R     uint8  `cty:"r" json:"r"`
	G     uint8  `cty:"g" json:"g"`
	B     uint8  `cty:"b" json:"b"`
	A     uint8  `cty:"a" json:"a"`
}

// Fallback is one substituted row in a Report.
type Fallback struct {
	Index uint32 `cty:"index" json:"index"`
	Row   string `cty:"row" json:"row"`
	Error string `cty:"error" json:"error"`
}

// Report is the serializable form of a rendered palette.
type Report struct {
	Palette   string     `cty:"palette" json:"palette"`
	Model     string     `cty:"model" json:"model"`
	Colors    []Color    `cty:"colors" json:"colors"`
	Fallbacks []Fallback `cty:"fallbacks" json:"fallbacks"`
}

// Build converts a render result into a Report. Slices are never nil.
func Build(name string, res *render.Result) Report {
	return Report{
		Palette: name,
		Model:   res.Model,
		Colors: lo.Map(res.Colors, func(c colormodel.RGBA, i int) Color {
			return Color{Index: uint32(i), Hex: c.Hex(), R: c.R(), G: c.G(), B: c.B(), A: c.A()}
		}),
		Fallbacks: lo.Map(res.Fallbacks, func(f render.Fallback, _ int) Fallback {
			return Fallback{Index: f.Index, Row: f.Row, Error: f.Err.Error()}
		}),
	}
}

// Write renders res to w in the given format.
func Write(w io.Writer, format Format, name string, res *render.Result) error {
	switch format {
	case FormatHex:
		return writeHex(w, res)
	case FormatText:
		return writeText(w, name, res)
	case FormatJSON:
		return writeJSON(w, Build(name, res))
	default:
		return fmt.Errorf("unknown report format '%s'", format)
	}
}

func writeHex(w io.Writer, res *render.Result) error {
	for _, c := range res.Colors {
		if _, err := fmt.Fprintln(w, c.Hex()); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, name string, res *render.Result) error {
	if _, err := fmt.Fprintf(w, "palette %s (%s, %d colors)\n", name, res.Model, len(res.Colors)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tHEX\tR\tG\tB\tNOTES")
	for i, c := range res.Colors {
		notes := lo.Map(res.FallbacksAt(uint32(i)), func(f render.Fallback, _ int) string {
			return f.Row + ": " + f.Err.Error()
		})
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n", i, c.Hex(), c.R(), c.G(), c.B(), strings.Join(notes, "; "))
	}
	return tw.Flush()
}

// writeJSON encodes v through cty so the output matches the HCL type system.
func writeJSON(w io.Writer, v any) error {
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return fmt.Errorf("report type: %w", err)
	}
	val, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return fmt.Errorf("report value: %w", err)
	}
	buf, err := ctyjson.Marshal(val, ty)
	if err != nil {
		return fmt.Errorf("report json: %w", err)
	}
	if _, err := w.Write(append(buf, '\n')); err != nil {
		return err
	}
	return nil
}
