// Package palette loads palette definitions from HCL files.
//
// A file holds one or more palette blocks:
//
//	palette "sunset" {
//	  model       = "hsv"
//	  count       = 12
//	  description = "warm ramp"
//
//	  aux {
//	    step = 360 / 12
//	  }
//
//	  inputs {
//	    h = x * step
//	    s = 0.9
//	    v = 1 - x / 24
//	  }
//	}
//
// Attributes inside aux and inputs are not evaluated by the loader. Their
// exact source text is kept and handed to a binding table, which evaluates
// it once per render index.
package palette
