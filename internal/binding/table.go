package binding

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/dag"
	"github.com/specialistvlad/rampcon/internal/expr"
)

// Kind distinguishes model-bound rows from auxiliary rows.
type Kind int

const (
	ModelRow Kind = iota
	AuxRow
)

func (k Kind) String() string {
	if k == AuxRow {
		return "aux"
	}
	return "model"
}

// Row associates a variable name with expression source text.
type Row struct {
	Name   string
	Source string
	Kind   Kind
}

// Table holds the rows for one color model. It is single-writer: edits must
// not run concurrently with each other or with a render that reads the
// table. Renderers take a Clone before evaluating.
type Table struct {
	model     colormodel.ColorModel
	modelRows []Row
	auxRows   []Row
}

// SeedFromModel creates a table with one empty row per model input, in model
// order.
func SeedFromModel(model colormodel.ColorModel) *Table {
	names := model.InputNames()
	rows := make([]Row, len(names))
	for i, name := range names {
		rows[i] = Row{Name: name, Kind: ModelRow}
	}
	return &Table{model: model, modelRows: rows}
}

// Model returns the color model the table was seeded from.
func (t *Table) Model() colormodel.ColorModel { return t.model }

// ModelRows returns a copy of the model-bound rows in model input order.
func (t *Table) ModelRows() []Row { return slices.Clone(t.modelRows) }

// AuxRows returns a copy of the auxiliary rows in insertion order.
func (t *Table) AuxRows() []Row { return slices.Clone(t.auxRows) }

// Rows returns auxiliary rows followed by model rows.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.auxRows)+len(t.modelRows))
	out = append(out, t.auxRows...)
	return append(out, t.modelRows...)
}

// Row looks up a row by name.
func (t *Table) Row(name string) (Row, bool) {
	if i := indexOf(t.modelRows, name); i >= 0 {
		return t.modelRows[i], true
	}
	if i := indexOf(t.auxRows, name); i >= 0 {
		return t.auxRows[i], true
	}
	return Row{}, false
}

// SetExpression replaces the source text of an existing row. Nothing is
// evaluated. An auxiliary row edit that would create a reference cycle is
// rejected with a *dag.CycleError and the table is left unchanged.
func (t *Table) SetExpression(name, text string) error {
	if i := indexOf(t.modelRows, name); i >= 0 {
		t.modelRows[i].Source = text
		return nil
	}

	i := indexOf(t.auxRows, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownRow, name)
	}

	candidate := slices.Clone(t.auxRows)
	candidate[i].Source = text
	if err := checkCycles(candidate); err != nil {
		return fmt.Errorf("row %q: %w", name, err)
	}
	t.auxRows = candidate
	return nil
}

// AddAux appends an auxiliary row. The name must be a valid identifier and
// must not shadow the loop variable, a model input or an existing auxiliary
// row. On error the table is unchanged.
func (t *Table) AddAux(name, text string) error {
	if err := t.checkName(name); err != nil {
		return err
	}

	candidate := append(slices.Clone(t.auxRows), Row{Name: name, Source: text, Kind: AuxRow})
	if err := checkCycles(candidate); err != nil {
		return fmt.Errorf("row %q: %w", name, err)
	}
	t.auxRows = candidate
	return nil
}

// RemoveAux deletes an auxiliary row. Rows that referenced it will fail to
// evaluate until the reference is removed.
func (t *Table) RemoveAux(name string) error {
	i := indexOf(t.auxRows, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownRow, name)
	}
	t.auxRows = slices.Delete(slices.Clone(t.auxRows), i, i+1)
	return nil
}

// Clone returns an independent snapshot of the table.
func (t *Table) Clone() *Table {
	return &Table{
		model:     t.model,
		modelRows: slices.Clone(t.modelRows),
		auxRows:   slices.Clone(t.auxRows),
	}
}

// EvaluateAll compiles the table and evaluates it once against ctx.
func (t *Table) EvaluateAll(ctx *expr.Context) (Evaluation, error) {
	prog, err := t.Compile()
	if err != nil {
		return Evaluation{}, err
	}
	return prog.EvaluateAll(ctx), nil
}

func (t *Table) checkName(name string) error {
	if !expr.ValidIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if name == expr.LoopVariable {
		return &NameCollisionError{Name: name, Reason: "reserved loop variable"}
	}
	if indexOf(t.modelRows, name) >= 0 {
		return &NameCollisionError{Name: name, Reason: fmt.Sprintf("input of color model %q", t.model.Name())}
	}
	if indexOf(t.auxRows, name) >= 0 {
		return &NameCollisionError{Name: name, Reason: "auxiliary row already exists"}
	}
	return nil
}

// auxGraph builds the reference graph between auxiliary rows. Rows whose
// text does not parse contribute no edges; their parse error is kept.
func auxGraph(rows []Row) (*dag.Graph, map[string]*expr.Expression, map[string]error, error) {
	g := dag.New()
	parsed := make(map[string]*expr.Expression, len(rows))
	parseErrs := make(map[string]error)

	for _, row := range rows {
		g.AddNode(row.Name)
		e, err := expr.Parse(row.Source)
		if err != nil {
			parseErrs[row.Name] = err
			continue
		}
		parsed[row.Name] = e
	}

	for _, row := range rows {
		e, ok := parsed[row.Name]
		if !ok {
			continue
		}
		for _, ref := range e.References() {
			if indexOf(rows, ref) < 0 {
				continue
			}
			if err := g.AddEdge(ref, row.Name); err != nil {
				return nil, nil, nil, err
			}
		}
	}
	return g, parsed, parseErrs, nil
}

func checkCycles(rows []Row) error {
	g, _, _, err := auxGraph(rows)
	if err != nil {
		return err
	}
	return g.DetectCycles()
}

func indexOf(rows []Row, name string) int {
	return slices.IndexFunc(rows, func(r Row) bool { return r.Name == name })
}
