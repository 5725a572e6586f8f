package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/specialistvlad/rampcon/internal/publish"
	"github.com/specialistvlad/rampcon/internal/render"
	"github.com/specialistvlad/rampcon/internal/report"
)

// Run renders every prepared palette to the output writer, publishing each
// one when a publisher is configured. With an HTTP port set, it then serves
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ListModels {
		if err := report.WriteModels(a.outW, a.config.Format, a.registry.Models()); err != nil {
			return fmt.Errorf("failed to write models: %w", err)
		}
	}

	if len(a.palettes) > 0 {
		a.logger.Info("Rendering palettes.", "count", len(a.palettes), "workers", a.renderer.Workers())
	}
	for _, e := range a.palettes {
		res, err := a.render(ctx, e, e.def.Count)
		if err != nil {
			return err
		}
		if err := report.Write(a.outW, a.config.Format, e.def.Name, res); err != nil {
			return fmt.Errorf("failed to write palette '%s': %w", e.def.Name, err)
		}
		if a.config.Publish.URL != "" {
			if err := a.publish(ctx, e.def.Name, res); err != nil {
				return err
			}
		}
	}

	if a.config.HTTPPort > 0 {
		return a.serve(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) render(ctx context.Context, e *entry, count uint32) (*render.Result, error) {
	logger := ctxlog.FromContext(ctx).With("palette", e.def.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	res, err := a.renderer.Render(ctx, e.model, e.table, count)
	if err != nil {
		return nil, fmt.Errorf("failed to render palette '%s': %w", e.def.Name, err)
	}
	for _, f := range res.Fallbacks {
		logger.Debug("Fallback used.", "index", f.Index, "row", f.Row, "error", f.Err)
	}
	logger.Info("Palette rendered.", "model", e.model.Name(), "colors", len(res.Colors), "fallbacks", len(res.Fallbacks))
	return res, nil
}

func (a *App) publish(ctx context.Context, name string, res *render.Result) error {
	opts := a.config.Publish.Options()
	ack, err := publish.Publish(ctx, opts, report.Build(name, res))
	if err != nil {
		return fmt.Errorf("failed to publish palette '%s': %w", name, err)
	}
	a.logger.Info("Palette published.", "palette", name, "url", opts.URL, "ack", ack)
	return nil
}
