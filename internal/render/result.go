package render

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/rampcon/internal/colormodel"
)

// Fallback records one row that failed at one index. For model rows the
// input's default was used in its place.
type Fallback struct {
	Index uint32
	Row   string
	Err   error
}

func (f Fallback) String() string {
	return fmt.Sprintf("index %d, row %q: %v", f.Index, f.Row, f.Err)
}

// Result is the outcome of a render: exactly count colors in ascending index
// order plus every fallback taken along the way.
type Result struct {
	Model     string
	Colors    []colormodel.RGBA
	Fallbacks []Fallback
}

// Hexes returns the colors formatted as #rrggbbaa.
func (r *Result) Hexes() []string {
	out := make([]string, len(r.Colors))
	for i, c := range r.Colors {
		out[i] = c.Hex()
	}
	return out
}

// FallbacksAt returns the fallbacks recorded for a single index.
func (r *Result) FallbacksAt(index uint32) []Fallback {
	var out []Fallback
	for _, f := range r.Fallbacks {
		if f.Index == index {
			out = append(out, f)
		}
	}
	return out
}

func sortFallbacks(fallbacks []Fallback) {
	sort.SliceStable(fallbacks, func(i, j int) bool {
		if fallbacks[i].Index != fallbacks[j].Index {
			return fallbacks[i].Index < fallbacks[j].Index
		}
		return fallbacks[i].Row < fallbacks[j].Row
	})
}
