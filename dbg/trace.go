package dbg

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/roofmesh/internal"
)

// One line describing a skeleton event, colored for a terminal.
func FormatEvent(ev internal.TraceEvent) string {
	names := make([]string, len(ev.Vertices))
	for i, id := range ev.Vertices {
		names[i] = Vertex(id)
	}

	var label aurora.Value
	switch {
	case ev.Stale:
		label = aurora.Gray(12, "stale "+ev.Kind)
	case ev.Kind == "split":
		label = aurora.Magenta(ev.Kind)
	default:
		label = aurora.Cyan(ev.Kind)
	}
	return fmt.Sprintf("%s t=%s at %v edge %d [%s]",
		label,
		aurora.Bold(fmt.Sprintf("%.6g", ev.Time)),
		ev.Point,
		ev.Edge,
		strings.Join(names, " "),
	)
}

// Adapt a printf-style logger into a skeleton trace callback.
func Tracer(printf func(format string, args ...interface{})) func(internal.TraceEvent) {
	return func(ev internal.TraceEvent) {
		printf("%s", FormatEvent(ev))
	}
}
