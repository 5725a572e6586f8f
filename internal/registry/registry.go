package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"
	"github.com/specialistvlad/rampcon/internal/colormodel"
)

// Registry holds every color model known to one application instance.
type Registry struct {
	models map[string]colormodel.ColorModel
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{models: make(map[string]colormodel.ColorModel)}
}

// Register adds a model under its name. Registering the same name twice is a
// programmer error and panics.
func (r *Registry) Register(m colormodel.ColorModel) {
	if _, exists := r.models[m.Name()]; exists {
		panic(fmt.Sprintf("color model with name '%s' already registered", m.Name()))
	}
	slog.Debug("Registering color model.", "name", m.Name(), "inputs", m.InputNames())
	r.models[m.Name()] = m
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (colormodel.ColorModel, bool) {
	m, ok := r.models[name]
	return m, ok
}

// MustLookup is like Lookup but panics when the model is missing.
func (r *Registry) MustLookup(name string) colormodel.ColorModel {
	m, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("color model '%s' is not registered", name))
	}
	return m
}

// Names returns the registered model names, sorted.
func (r *Registry) Names() []string {
	names := lo.Keys(r.models)
	sort.Strings(names)
	return names
}

// Models returns the registered models ordered by name.
func (r *Registry) Models() []colormodel.ColorModel {
	return lo.Map(r.Names(), func(name string, _ int) colormodel.ColorModel {
		return r.models[name]
	})
}

// Len returns the number of registered models.
func (r *Registry) Len() int { return len(r.models) }
