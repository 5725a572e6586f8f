package binding

import (
	"github.com/specialistvlad/rampcon/internal/expr"
)

// Evaluation is the outcome of evaluating a program for one index. Values
// holds every model input that produced a number. Errors holds the failure
// of every row, auxiliary or model, that did not.
type Evaluation struct {
	Values map[string]float64
	Errors map[string]error
}

type compiledRow struct {
	row  Row
	expr *expr.Expression
	err  error
}

// Program is a compiled, immutable view of a table: every row parsed once,
// auxiliary rows in dependency order. It is safe for concurrent use as long
// as each goroutine passes its own expr.Context.
type Program struct {
	aux   []compiledRow
	model []compiledRow
}

// Compile parses every row and orders auxiliary rows topologically. Parse
// failures are kept per row and reported at evaluation time; only a
// reference cycle fails compilation.
func (t *Table) Compile() (*Program, error) {
	g, parsed, parseErrs, err := auxGraph(t.auxRows)
	if err != nil {
		return nil, err
	}
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	prog := &Program{
		aux:   make([]compiledRow, 0, len(order)),
		model: make([]compiledRow, 0, len(t.modelRows)),
	}
	for _, name := range order {
		row := t.auxRows[indexOf(t.auxRows, name)]
		prog.aux = append(prog.aux, compiledRow{row: row, expr: parsed[name], err: parseErrs[name]})
	}
	for _, row := range t.modelRows {
		e, err := expr.Parse(row.Source)
		prog.model = append(prog.model, compiledRow{row: row, expr: e, err: err})
	}
	return prog, nil
}

// AuxOrder returns the auxiliary row names in evaluation order.
func (p *Program) AuxOrder() []string {
	names := make([]string, len(p.aux))
	for i, r := range p.aux {
		names[i] = r.row.Name
	}
	return names
}

// EvaluateAll evaluates auxiliary rows into ctx, then every model row. A
// failing auxiliary row is left unbound, so rows that reference it fail too.
// Model row results are not written into ctx.
func (p *Program) EvaluateAll(ctx *expr.Context) Evaluation {
	ev := Evaluation{
		Values: make(map[string]float64, len(p.model)),
		Errors: make(map[string]error),
	}

	for _, r := range p.aux {
		ctx.Delete(r.row.Name)
		v, err := r.evaluate(ctx)
		if err != nil {
			ev.Errors[r.row.Name] = err
			continue
		}
		ctx.Set(r.row.Name, v)
	}

	for _, r := range p.model {
		v, err := r.evaluate(ctx)
		if err != nil {
			ev.Errors[r.row.Name] = err
			continue
		}
		ev.Values[r.row.Name] = v
	}
	return ev
}

func (r compiledRow) evaluate(ctx *expr.Context) (float64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.expr.Evaluate(ctx)
}
