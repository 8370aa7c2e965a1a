package seqexpr

// Analyzer is a container of memo tables for the pure semantic queries over
// an alphabet of type T: MatchesEmpty, StartingElements, IsSatisfiable and
// Differentiate. All operations are pure functions of an expression; the
// Analyzer exists only to avoid recomputing them. A zero Analyzer is ready
// to use. An Analyzer is not safe for concurrent use: callers that need
// parallelism should use one Analyzer per goroutine — expressions
// themselves are interned and safely shared across Analyzers.
type Analyzer[T comparable] struct {
	emptyTable      map[Expression[T]]bool
	startsTable     map[Expression[T]]Set[T]
	satisfiable     map[Expression[T]]bool
	derivativeTable map[derivativeKey[T]]Expression[T]
}

type derivativeKey[T comparable] struct {
	expr Expression[T]
	sym  T
}

func (a *Analyzer[T]) init() {
	if a.emptyTable == nil {
		a.emptyTable = make(map[Expression[T]]bool)
		a.startsTable = make(map[Expression[T]]Set[T])
		a.satisfiable = make(map[Expression[T]]bool)
		a.derivativeTable = make(map[derivativeKey[T]]Expression[T])
	}
}

// MatchesEmpty reports whether the empty sequence is in L(e).
func (a *Analyzer[T]) MatchesEmpty(e Expression[T]) bool {
	a.init()
	if v, ok := a.emptyTable[e]; ok {
		return v
	}
	result := matchesEmptyStruct(e)
	a.emptyTable[e] = result
	return result
}

// matchesEmptyStruct computes nullability with no memoization; MatchesEmpty
// memoizes its result for the top-level expression only.
func matchesEmptyStruct[T comparable](e Expression[T]) bool {
	switch v := e.(type) {
	case *emptyExpr[T]:
		return true
	case *nothingExpr[T]:
		return false
	case *literalExpr[T]:
		return false
	case *alternationExpr[T]:
		for _, c := range v.alternatives {
			if matchesEmptyStruct[T](c) {
				return true
			}
		}
		return false
	case *concatenationExpr[T]:
		for _, c := range v.children {
			if !matchesEmptyStruct[T](c) {
				return false
			}
		}
		return true
	case *intersectionExpr[T]:
		for _, c := range v.requirements {
			if !matchesEmptyStruct[T](c) {
				return false
			}
		}
		return true
	case *optionalExpr[T]:
		return true
	case *repetitionExpr[T]:
		return true
	default:
		panic("seqexpr: unreachable expression variant")
	}
}

// StartingElements returns { a : some word beginning with a is in L(e) }.
//
// For Concatenation(c1, ..., cn) this walks the nullable prefix of the
// children: it unions in the starts of each child in order, stopping
// after the first non-nullable child, so a nullable prefix of any length
// (not just a single leading child) is covered correctly.
func (a *Analyzer[T]) StartingElements(e Expression[T]) Set[T] {
	a.init()
	if v, ok := a.startsTable[e]; ok {
		return v
	}
	result := newSet[T]()
	switch v := e.(type) {
	case *emptyExpr[T], *nothingExpr[T]:
		// empty set
	case *literalExpr[T]:
		result.add(v.values[0])
	case *alternationExpr[T]:
		for _, c := range v.alternatives {
			result.addAll(a.StartingElements(c))
		}
	case *concatenationExpr[T]:
		for _, c := range v.children {
			result.addAll(a.StartingElements(c))
			if !a.MatchesEmpty(c) {
				break
			}
		}
	case *optionalExpr[T]:
		result.addAll(a.StartingElements(v.child))
	case *repetitionExpr[T]:
		result.addAll(a.StartingElements(v.child))
	case *intersectionExpr[T]:
		for i, c := range v.requirements {
			if i == 0 {
				result.addAll(a.StartingElements(c))
				continue
			}
			next := a.StartingElements(c)
			for sym := range result {
				if !next.Contains(sym) {
					delete(result, sym)
				}
			}
		}
	default:
		panic("seqexpr: unreachable expression variant")
	}
	a.startsTable[e] = result
	return result
}

// Differentiate returns the Brzozowski derivative of e by a: the expression
// whose language is { w : a·w ∈ L(e) }. If a is not in StartingElements(e)
// it returns Nothing without further recursion.
func (a *Analyzer[T]) Differentiate(e Expression[T], sym T) Expression[T] {
	a.init()
	if !a.StartingElements(e).Contains(sym) {
		return Nothing[T]()
	}
	key := derivativeKey[T]{expr: e, sym: sym}
	if v, ok := a.derivativeTable[key]; ok {
		return v
	}

	var result Expression[T]
	switch v := e.(type) {
	case *literalExpr[T]:
		result = literalDerivative(v.values)
	case *alternationExpr[T]:
		var terms []Expression[T]
		for _, c := range v.alternatives {
			if a.StartingElements(c).Contains(sym) {
				terms = append(terms, a.Differentiate(c, sym))
			}
		}
		result = Alternation(terms...)
	case *concatenationExpr[T]:
		var terms []Expression[T]
		for i, c := range v.children {
			if a.StartingElements(c).Contains(sym) {
				rest := append([]Expression[T]{a.Differentiate(c, sym)}, v.children[i+1:]...)
				terms = append(terms, Concatenation(rest...))
			}
			if !a.MatchesEmpty(c) {
				break
			}
		}
		result = Alternation(terms...)
	case *optionalExpr[T]:
		result = a.Differentiate(v.child, sym)
	case *repetitionExpr[T]:
		result = Concatenation(a.Differentiate(v.child, sym), e)
	case *intersectionExpr[T]:
		terms := make([]Expression[T], len(v.requirements))
		for i, r := range v.requirements {
			terms[i] = a.Differentiate(r, sym)
		}
		result = Intersection(terms...)
	default:
		panic("seqexpr: unreachable expression variant")
	}
	a.derivativeTable[key] = result
	return result
}

// IsSatisfiable reports whether L(e) is non-empty:
// MatchesEmpty(e) ∨ ∃ a ∈ StartingElements(e). IsSatisfiable(Differentiate(e, a)).
// The recursion terminates because it only ever visits derivatives of e,
// which form a finite set once the constructors have canonicalized them.
func (a *Analyzer[T]) IsSatisfiable(e Expression[T]) bool {
	a.init()
	if v, ok := a.satisfiable[e]; ok {
		return v
	}
	result := a.isSatisfiableUncached(e, make(map[Expression[T]]bool))
	a.satisfiable[e] = result
	return result
}

// isSatisfiableUncached searches the derivatives reachable from e for one
// that matches empty. seen guards against the derivative graph cycling back
// (e.g. through Repetition); only the caller's final answer is memoized.
func (a *Analyzer[T]) isSatisfiableUncached(e Expression[T], seen map[Expression[T]]bool) bool {
	if a.MatchesEmpty(e) {
		return true
	}
	seen[e] = true
	for sym := range a.StartingElements(e) {
		d := a.Differentiate(e, sym)
		if v, ok := a.satisfiable[d]; ok {
			if v {
				return true
			}
			continue
		}
		if !seen[d] && a.isSatisfiableUncached(d, seen) {
			return true
		}
	}
	return false
}

func literalDerivative[T comparable](values []T) Expression[T] {
	if len(values) <= 1 {
		return Empty[T]()
	}
	return MustLiteral(values[1:]...)
}
