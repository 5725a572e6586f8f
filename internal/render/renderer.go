package render

import (
	"context"
	"runtime"
	"sync"

	"github.com/specialistvlad/rampcon/internal/binding"
	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/specialistvlad/rampcon/internal/expr"
)

// Renderer renders indices concurrently over a fixed pool of workers. Its
// output is identical to RenderRange.
type Renderer struct {
	numWorkers int
}

// New creates a renderer. A non-positive worker count uses GOMAXPROCS.
func New(numWorkers int) *Renderer {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &Renderer{numWorkers: numWorkers}
}

// Workers returns the size of the pool.
func (r *Renderer) Workers() int { return r.numWorkers }

type slot struct {
	color     colormodel.RGBA
	fallbacks []Fallback
	err       error
}

// Render snapshots the table and renders count colors. Cancellation is
// checked between indices; a cancelled render returns ctx.Err().
func (r *Renderer) Render(ctx context.Context, model colormodel.ColorModel, table *binding.Table, count uint32) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	prog, err := prepare(model, table)
	if err != nil {
		return nil, err
	}

	workers := r.numWorkers
	if uint32(workers) > count {
		workers = int(count)
	}
	logger.Debug("Starting render.", "model", model.Name(), "count", count, "workers", workers)

	slots := make([]slot, count)
	indices := make(chan uint32)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker(runCtx, model, prog, indices, slots, &wg)
	}

feed:
	for n := uint32(0); n < count; n++ {
		select {
		case <-runCtx.Done():
			break feed
		case indices <- n:
		}
	}
	close(indices)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Debug("Render cancelled.", "model", model.Name(), "error", err)
		return nil, err
	}

	res := &Result{
		Model:  model.Name(),
		Colors: make([]colormodel.RGBA, count),
	}
	for n, s := range slots {
		if s.err != nil {
			return nil, s.err
		}
		res.Colors[n] = s.color
		res.Fallbacks = append(res.Fallbacks, s.fallbacks...)
	}
	if len(res.Fallbacks) > 0 {
		logger.Warn("Render used fallback values.", "model", model.Name(), "fallbacks", len(res.Fallbacks))
	}
	logger.Debug("Render finished.", "model", model.Name(), "count", count)
	return res, nil
}

// worker evaluates indices with its own context until the channel closes.
func (r *Renderer) worker(ctx context.Context, model colormodel.ColorModel, prog *binding.Program, indices <-chan uint32, slots []slot, wg *sync.WaitGroup) {
	defer wg.Done()

	base := expr.NewContext()
	for n := range indices {
		if ctx.Err() != nil {
			continue
		}
		c, fallbacks, err := renderIndex(model, prog, base, n)
		slots[n] = slot{color: c, fallbacks: fallbacks, err: err}
	}
}
