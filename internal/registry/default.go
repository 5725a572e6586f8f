package registry

import "github.com/specialistvlad/rampcon/internal/colormodel"

// coreModels are the models every application registers.
var coreModels = []func() *colormodel.Model{
	colormodel.HSV,
	colormodel.HSL,
	colormodel.HCL,
	colormodel.OkLab,
	colormodel.OkLch,
	colormodel.RGB,
}

// Default returns a registry populated with the core models plus any extra
// models supplied by the caller.
func Default(extra ...colormodel.ColorModel) *Registry {
	r := New()
	for _, newModel := range coreModels {
		r.Register(newModel())
	}
	for _, m := range extra {
		r.Register(m)
	}
	return r
}
