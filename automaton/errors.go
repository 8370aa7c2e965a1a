package automaton

import "fmt"

// ClientError reports that a caller passed automaton a value it cannot
// accept (e.g. an out-of-range rank to NthString). It is returned, never
// panicked, so callers can distinguish misuse from a genuine bug.
type ClientError struct {
	Op      string
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("automaton: %s: %s", e.Op, e.Message)
}

func clientError(op, format string, a ...any) *ClientError {
	return &ClientError{Op: op, Message: fmt.Sprintf(format, a...)}
}

// LogicError reports that Compile exceeded its configured state budget. It
// signals a bug (a runaway expression, or a budget set too low for the
// caller's alphabet) rather than caller misuse of a single call.
type LogicError struct {
	MaxStates int
	Offending string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("automaton: compile: exceeded MaxStates=%d while expanding %s", e.MaxStates, e.Offending)
}
