// Package automaton compiles seqexpr.Expression values into deterministic
// finite automata by a worklist fixpoint over Brzozowski derivatives, and
// exposes membership, enumeration and generation queries over the compiled
// DFA. The compiler's worklist/discovery-order-id/frozen-row shape mirrors
// the classic NFA->DFA subset-construction pattern, adapted to walk
// expression derivatives instead of NFA epsilon-closures.
package automaton

import "github.com/wjt/hypothesis/seqexpr"

// DFA is a frozen deterministic finite automaton over alphabet T. States are
// numbered from 0 (always the start state) in the order the compiler
// discovered them. Every state other than 0 is either terminal or has at
// least one outgoing transition: the compiler never materializes a dead
// state. State 0 is the one exception: for an unsatisfiable root it is
// neither terminal nor has any transitions.
type DFA[T comparable] struct {
	transitions [][]edge[T]
	terminal    []bool
}

type edge[T comparable] struct {
	symbol T
	target int
}

// NumStates returns the number of states in the compiled automaton.
func (d *DFA[T]) NumStates() int { return len(d.terminal) }

// IsTerminal reports whether state is an accepting state.
func (d *DFA[T]) IsTerminal(state int) bool { return d.terminal[state] }

// Transitions returns the outgoing (symbol, target) pairs of state, in
// symbol-sorted order (per the Less function the DFA was compiled with).
func (d *DFA[T]) Transitions(state int) []struct {
	Symbol T
	Target int
} {
	row := d.transitions[state]
	out := make([]struct {
		Symbol T
		Target int
	}, len(row))
	for i, e := range row {
		out[i] = struct {
			Symbol T
			Target int
		}{e.symbol, e.target}
	}
	return out
}

func (d *DFA[T]) step(state int, sym T) (int, bool) {
	for _, e := range d.transitions[state] {
		if e.symbol == sym {
			return e.target, true
		}
	}
	return 0, false
}

// Options configures Compile.
type Options[T comparable] struct {
	// Less must be a strict total order over T. It determines the order in
	// which outgoing transitions are recorded for each state, which in turn
	// determines the symbol-lexicographic order NthString enumerates in.
	// There is no sensible default for an arbitrary comparable alphabet, so
	// this field is required.
	Less func(a, b T) bool

	// MaxStates bounds the number of states the compiler will discover
	// before giving up with a LogicError. Zero selects DefaultMaxStates.
	MaxStates int
}

// DefaultMaxStates is the MaxStates used when Options.MaxStates is zero.
const DefaultMaxStates = 1 << 16

// Compile builds a DFA for root using ana to compute derivatives. It
// performs a worklist fixpoint construction: discover reachable derivative
// states via a worklist, assign ids in discovery order, and drop any
// transition to an unsatisfiable target before it is ever recorded (so no
// dead state is ever materialized beyond an unsatisfiable root itself).
func Compile[T comparable](ana *seqexpr.Analyzer[T], root seqexpr.Expression[T], opts Options[T]) (*DFA[T], error) {
	if opts.Less == nil {
		panic("automaton: Options.Less is required")
	}
	maxStates := opts.MaxStates
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	b := &builder[T]{
		ana:  ana,
		less: opts.Less,
		ids:  make(map[seqexpr.Expression[T]]int),
	}
	b.get(root)

	for len(b.todo) > 0 {
		x := b.todo[len(b.todo)-1]
		b.todo = b.todo[:len(b.todo)-1]
		id := b.ids[x]
		if b.rows[id] != nil || b.rowSet[id] {
			continue
		}

		starts := sortedSymbols(ana.StartingElements(x), b.less)
		var row []edge[T]
		for _, sym := range starts {
			y := ana.Differentiate(x, sym)
			if !ana.IsSatisfiable(y) {
				continue
			}
			row = append(row, edge[T]{symbol: sym, target: b.get(y)})
		}
		b.rows[id] = row
		b.rowSet[id] = true
		b.terminal[id] = ana.MatchesEmpty(x)

		if len(b.ids) > maxStates {
			return nil, &LogicError{MaxStates: maxStates, Offending: x.String()}
		}
	}

	return &DFA[T]{transitions: b.rows, terminal: b.terminal}, nil
}

type builder[T comparable] struct {
	ana  *seqexpr.Analyzer[T]
	less func(a, b T) bool

	ids      map[seqexpr.Expression[T]]int
	rows     [][]edge[T]
	rowSet   []bool
	terminal []bool
	todo     []seqexpr.Expression[T]
}

func (b *builder[T]) get(e seqexpr.Expression[T]) int {
	if id, ok := b.ids[e]; ok {
		return id
	}
	id := len(b.ids)
	b.ids[e] = id
	b.rows = append(b.rows, nil)
	b.rowSet = append(b.rowSet, false)
	b.terminal = append(b.terminal, false)
	b.todo = append(b.todo, e)
	return id
}

func sortedSymbols[T comparable](set seqexpr.Set[T], less func(a, b T) bool) []T {
	out := set.ToSlice()
	insertionSort(out, less)
	return out
}

// insertionSort avoids pulling in "sort" for what's almost always a
// handful of alphabet symbols per state; stable and allocation-free.
func insertionSort[T any](xs []T, less func(a, b T) bool) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && less(xs[j], xs[j-1]); j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
