package dfq

import "fmt"

// Logbook is an append-only, human-readable parse log. It is part of the
// HTTP response payload shown to the user, separate from the server's
// structured logging, and never affects control flow.
//
// A nil *Logbook is valid and discards everything, so library callers can
// parse without wiring a sink.
type Logbook struct {
	lines []string
}

// Printf appends one formatted line.
func (l *Logbook) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Lines returns the accumulated log lines in append order.
func (l *Logbook) Lines() []string {
	if l == nil {
		return nil
	}
	return l.lines
}
