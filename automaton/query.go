package automaton

import (
	"iter"
	"math/big"
	"math/rand"
)

// Matches reports whether seq is accepted by the automaton: it runs seq
// through the transition table from state 0 and asks whether the resulting
// state is terminal, failing fast (false) the moment a symbol has no
// transition from the current state.
func (d *DFA[T]) Matches(seq []T) bool {
	state := 0
	for _, sym := range seq {
		next, ok := d.step(state, sym)
		if !ok {
			return false
		}
		state = next
	}
	return d.IsTerminal(state)
}

// MatchingSubstrings yields every prefix of seq that the automaton accepts,
// shortest first, stopping as soon as a symbol has no transition (since no
// longer prefix can match past that point either). It is implemented as a
// range-over-func iterator (Go 1.23's iter.Seq) rather than a hand-rolled
// pull-based iterator, matching how this codebase expresses lazy sequences
// elsewhere (see StringsAtLength).
func (d *DFA[T]) MatchingSubstrings(seq []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		state := 0
		if d.IsTerminal(state) {
			if !yield(seq[:0]) {
				return
			}
		}
		for i, sym := range seq {
			next, ok := d.step(state, sym)
			if !ok {
				return
			}
			state = next
			if d.IsTerminal(state) {
				if !yield(seq[:i+1]) {
					return
				}
			}
		}
	}
}

// countCache memoizes cnt(state, length): the number of length-symbol
// strings accepted starting from state. It underlies LanguageSize,
// NthString and StringsAtLength, all of which need the same recurrence:
//
//	cnt(state, 0)     = 1 if state is terminal else 0
//	cnt(state, n > 0) = Σ cnt(target, n-1) over outgoing edges of state
type countCache[T comparable] struct {
	dfa  *DFA[T]
	rows [][]*big.Int // rows[length][state]
}

func newCountCache[T comparable](d *DFA[T]) *countCache[T] {
	return &countCache[T]{dfa: d}
}

func (c *countCache[T]) cnt(state, length int) *big.Int {
	for len(c.rows) <= length {
		c.rows = append(c.rows, nil)
	}
	row := c.rows[length]
	if row == nil {
		row = make([]*big.Int, c.dfa.NumStates())
		c.rows[length] = row
	}
	if row[state] != nil {
		return row[state]
	}
	var result *big.Int
	if length == 0 {
		if c.dfa.terminal[state] {
			result = big.NewInt(1)
		} else {
			result = big.NewInt(0)
		}
	} else {
		result = big.NewInt(0)
		for _, e := range c.dfa.transitions[state] {
			result.Add(result, c.cnt(e.target, length-1))
		}
	}
	row[state] = result
	return result
}

// IsLanguageInfinite reports whether the automaton accepts infinitely many
// strings: equivalently, whether any state reachable from a state that can
// still reach a terminal state lies on a cycle. It uses a standard
// three-color DFS (white/gray/black) from state 0 to detect back edges.
func (d *DFA[T]) IsLanguageInfinite() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, d.NumStates())
	var visit func(state int) bool
	visit = func(state int) bool {
		color[state] = gray
		for _, e := range d.transitions[state] {
			switch color[e.target] {
			case gray:
				return true
			case white:
				if visit(e.target) {
					return true
				}
			}
		}
		color[state] = black
		return false
	}
	return visit(0)
}

// LanguageSize returns the exact number of strings the automaton accepts,
// and true if that count is finite. If the language is infinite it returns
// (nil, false).
func (d *DFA[T]) LanguageSize() (size *big.Int, finite bool) {
	if d.IsLanguageInfinite() {
		return nil, false
	}
	c := newCountCache(d)
	total := big.NewInt(0)
	// An acyclic DFA's longest simple path visits at most NumStates states,
	// so no accepted string is longer than NumStates-1 symbols.
	for length := 0; length < d.NumStates(); length++ {
		total.Add(total, c.cnt(0, length))
	}
	return total, true
}

// NthString returns the n'th string (0-indexed) in the automaton's language
// under the lexicographic order induced by the alphabet's Less function:
// shorter strings sort before longer ones, and strings of equal length
// sort by their first differing symbol. It returns a ClientError if n is
// negative or the language is finite with fewer than n+1 strings.
func (d *DFA[T]) NthString(n *big.Int) ([]T, error) {
	if n.Sign() < 0 {
		return nil, clientError("NthString", "rank must be non-negative, got %s", n.String())
	}
	c := newCountCache(d)
	infinite := d.IsLanguageInfinite()

	remaining := new(big.Int).Set(n)
	length := 0
	for {
		if !infinite && length >= d.NumStates() {
			return nil, clientError("NthString", "rank %s is out of range for this finite language", n.String())
		}
		count := c.cnt(0, length)
		if remaining.Cmp(count) < 0 {
			break
		}
		remaining.Sub(remaining, count)
		length++
	}

	out := make([]T, 0, length)
	state := 0
	for step := 0; step < length; step++ {
		remainingLength := length - step - 1
		for _, e := range d.transitions[state] {
			subtree := c.cnt(e.target, remainingLength)
			if remaining.Cmp(subtree) < 0 {
				out = append(out, e.symbol)
				state = e.target
				break
			}
			remaining.Sub(remaining, subtree)
		}
	}
	return out, nil
}

// Generate produces a random string accepted by the automaton, by walking
// transitions from state 0 and, at each terminal state with outgoing
// transitions, flipping a biased coin (stoppingChance) to decide whether to
// stop there or continue. A state with no outgoing transitions always
// stops, since there is nowhere else to go; this covers both an ordinary
// terminal dead end and the unsatisfiable-root DFA Compile produces for a
// language like Intersection(Literal(1,2), Literal(1,3)), whose state 0 is
// neither terminal nor has any transitions.
func (d *DFA[T]) Generate(rng *rand.Rand, stoppingChance float64) []T {
	var out []T
	state := 0
	for {
		row := d.transitions[state]
		if len(row) == 0 {
			return out
		}
		if d.terminal[state] && rng.Float64() < stoppingChance {
			return out
		}
		e := row[rng.Intn(len(row))]
		out = append(out, e.symbol)
		state = e.target
	}
}

// StringsAtLength yields, for each length starting at 0, the exact count of
// accepted strings of that length. Iteration stops once the automaton is
// known to be acyclic and all lengths have been exhausted; for an infinite
// language it never stops on its own and the caller should break out of the
// range loop once satisfied.
func (d *DFA[T]) StringsAtLength() iter.Seq2[int, *big.Int] {
	return func(yield func(int, *big.Int) bool) {
		c := newCountCache(d)
		infinite := d.IsLanguageInfinite()
		for length := 0; ; length++ {
			if !infinite && length >= d.NumStates() {
				return
			}
			if !yield(length, c.cnt(0, length)) {
				return
			}
		}
	}
}
