package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/rampcon/internal/binding"
	"github.com/specialistvlad/rampcon/internal/colormodel"
	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/specialistvlad/rampcon/internal/palette"
	"github.com/specialistvlad/rampcon/internal/registry"
	"github.com/specialistvlad/rampcon/internal/render"
)

// Loader reads palette definitions from paths.
type Loader interface {
	Load(ctx context.Context, paths ...string) ([]*palette.Definition, error)
}

// entry is a palette ready to render.
type entry struct {
	def   *palette.Definition
	table *binding.Table
	model colormodel.ColorModel
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	renderer   *render.Renderer
	palettes   []*entry
	byName     map[string]*entry
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Reports go to outW, logs to logW. Extra color models are registered next
// to the core ones.
func NewApp(outW, logW io.Writer, cfg *Config, loader Loader, models ...colormodel.ColorModel) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.Default(models...)
	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error (a model that cannot be bound), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.", "models", reg.Names())

	var defs []*palette.Definition
	if len(cfg.PalettePaths) > 0 {
		loaded, err := loader.Load(ctx, cfg.PalettePaths...)
		if err != nil {
			// A failure to load palettes is a fatal startup error.
			panic(fmt.Errorf("failed to load palettes: %w", err))
		}
		defs = loaded
	}
	if cfg.Model != "" {
		defs = append(defs, adHocDefinition(cfg))
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		renderer: render.New(cfg.WorkerCount),
		byName:   make(map[string]*entry, len(defs)),
	}
	for _, def := range defs {
		table, model, err := def.Table(reg)
		if err != nil {
			panic(fmt.Errorf("failed to prepare palette: %w", err))
		}
		if unset := def.Unset(model); len(unset) > 0 {
			logger.Warn("Palette leaves inputs unset, defaults will be used.", "palette", def.Name, "inputs", unset)
		}
		e := &entry{def: def, table: table, model: model}
		a.palettes = append(a.palettes, e)
		a.byName[def.Name] = e
	}
	logger.Debug("Palettes prepared.", "count", len(a.palettes))

	return a
}

func adHocDefinition(cfg *Config) *palette.Definition {
	def := &palette.Definition{
		Name:  AdHocPaletteName,
		Model: cfg.Model,
		Count: cfg.Count,
		File:  "<command line>",
	}
	for _, a := range cfg.Aux {
		def.Aux = append(def.Aux, palette.Binding{Name: a.Name, Source: a.Source})
	}
	for _, s := range cfg.Set {
		def.Inputs = append(def.Inputs, palette.Binding{Name: s.Name, Source: s.Source})
	}
	return def
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// PaletteNames returns the prepared palettes in load order.
func (a *App) PaletteNames() []string {
	names := make([]string, len(a.palettes))
	for i, e := range a.palettes {
		names[i] = e.def.Name
	}
	return names
}
