package seqexpr

import "fmt"

// ClientError reports an invariant violation at the construction API:
// malformed smart-constructor arguments (out-of-range enumeration ranks are
// reported by automaton.ClientError instead). It is always returned as a
// normal error value, never a panic, since callers routinely need to
// recover from bad input without a recover().
type ClientError struct {
	Op      string
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("seqexpr: %s: %s", e.Op, e.Message)
}

func clientError(op, format string, a ...any) *ClientError {
	return &ClientError{Op: op, Message: fmt.Sprintf(format, a...)}
}
