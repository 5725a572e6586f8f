package cli

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/rampcon/internal/app"
)

// assignmentsFlag collects repeated name=expression flags.
type assignmentsFlag []app.Assignment

func (f *assignmentsFlag) String() string {
	parts := make([]string, len(*f))
	for i, a := range *f {
		parts[i] = a.Name + "=" + a.Source
	}
	return strings.Join(parts, ",")
}

// Set splits on the first '=' so expressions may contain comparisons.
func (f *assignmentsFlag) Set(value string) error {
	name, source, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=expression, got '%s'", value)
	}
	*f = append(*f, app.Assignment{Name: name, Source: source})
	return nil
}
