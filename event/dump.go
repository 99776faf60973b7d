package event

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Dump writes events one per line, indented by two spaces per open rule.
// Stops at the first error and returns it.
func Dump(w io.Writer, seq iter.Seq2[Event, error]) error {
	level := 0
	for ev, e := range seq {
		if e != nil {
			return e
		}

		if ev.Kind == EndRule && level > 0 {
			level--
		}
		if _, e = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", level), ev); e != nil {
			return e
		}
		if ev.Kind == EnterRule {
			level++
		}
	}
	return nil
}
