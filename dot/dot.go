// Package dot renders a compiled automaton.DFA as Graphviz DOT source, for
// visual inspection of compiled expressions during development:
//
//	dot -Tps compiled.dot -o compiled.ps
//
// Generalized from a rune-only NFA/DFA node graph renderer to
// automaton.DFA's generic transition table.
package dot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wjt/hypothesis/automaton"
)

// SymbolLabel formats a transition symbol for display in an edge label. The
// default used by Write, for any T, is fmt.Sprintf("%v", sym); callers with
// a non-printable alphabet (raw bytes, control characters) should pass a
// custom formatter to WriteWithLabeler.
func SymbolLabel[T comparable](sym T) string {
	return fmt.Sprintf("%v", sym)
}

// Dump renders d as a standalone DOT document and returns it as a []byte,
// using id as the graph's name.
func Dump[T comparable](d *automaton.DFA[T], id string) []byte {
	var buf bytes.Buffer
	Write(&buf, d, id)
	return buf.Bytes()
}

// Write renders d as a standalone DOT document to out, using id as the
// graph's name and fmt.Sprintf("%v", ...) to label transitions.
func Write[T comparable](out io.Writer, d *automaton.DFA[T], id string) {
	WriteWithLabeler(out, d, id, SymbolLabel[T])
}

// WriteWithLabeler is Write with a caller-supplied symbol formatter, for
// alphabets whose default %v rendering is not suitable for a DOT label
// (e.g. raw bytes that should show as hex).
func WriteWithLabeler[T comparable](out io.Writer, d *automaton.DFA[T], id string, label func(T) string) {
	_, _ = fmt.Fprintf(out, "digraph %s {\n  rankdir=LR;\n  0[shape=box];\n", id)
	for state := 0; state < d.NumStates(); state++ {
		if d.IsTerminal(state) {
			_, _ = fmt.Fprintf(out, "  %d[style=filled,color=green];\n", state)
		}
	}
	for state := 0; state < d.NumStates(); state++ {
		for _, t := range d.Transitions(state) {
			_, _ = fmt.Fprintf(out, "  %d -> %d[label=%q];\n", state, t.Target, label(t.Symbol))
		}
	}
	_, _ = fmt.Fprintln(out, "}")
}
