package seqexpr

import (
	"testing"

	"pgregory.net/rapid"
)

// exprGen builds small expression trees over the alphabet {a, b, c}, the
// way rapid.Custom generators are composed elsewhere in property-based Go
// test suites: a depth-bounded recursive generator driven by
// rapid.SampledFrom for leaf choice and rapid.IntRange for branching.
func exprGen(maxDepth int) *rapid.Generator[Expression[rune]] {
	return rapid.Custom(func(t *rapid.T) Expression[rune] {
		return genExpr(t, maxDepth)
	})
}

func genExpr(t *rapid.T, depth int) Expression[rune] {
	if depth <= 0 {
		return genLeaf(t)
	}
	switch rapid.IntRange(0, 5).Draw(t, "kind") {
	case 0:
		return genLeaf(t)
	case 1:
		return Alternation(genExpr(t, depth-1), genExpr(t, depth-1))
	case 2:
		return Concatenation(genExpr(t, depth-1), genExpr(t, depth-1))
	case 3:
		return Intersection(genExpr(t, depth-1), genExpr(t, depth-1))
	case 4:
		return Optional(genExpr(t, depth-1))
	default:
		return Repetition(genExpr(t, depth-1))
	}
}

func genLeaf(t *rapid.T) Expression[rune] {
	switch rapid.IntRange(0, 2).Draw(t, "leaf") {
	case 0:
		return Empty[rune]()
	case 1:
		return Nothing[rune]()
	default:
		sym := rapid.SampledFrom([]rune{'a', 'b', 'c'}).Draw(t, "sym")
		return MustLiteral(sym)
	}
}

// TestAlternationIsCommutative checks that Alternation(x, y) and
// Alternation(y, x) agree on MatchesEmpty and StartingElements, the two
// observable properties the canonical form is supposed to make order
// independent.
func TestAlternationIsCommutative(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		x := exprGen(3).Draw(t, "x")
		y := exprGen(3).Draw(t, "y")
		a := &Analyzer[rune]{}

		xy := Alternation(x, y)
		yx := Alternation(y, x)
		if a.MatchesEmpty(xy) != a.MatchesEmpty(yx) {
			t.Fatalf("MatchesEmpty disagrees between x|y and y|x")
		}
		sxy, syx := a.StartingElements(xy), a.StartingElements(yx)
		if sxy.Len() != syx.Len() {
			t.Fatalf("StartingElements disagrees between x|y and y|x: %v vs %v", sxy.ToSlice(), syx.ToSlice())
		}
		for sym := range sxy {
			if !syx.Contains(sym) {
				t.Fatalf("StartingElements(x|y) has %q not in StartingElements(y|x)", sym)
			}
		}
	})
}

// TestDerivativeIsNothingOutsideStartingElements checks that differentiating
// e by a symbol that is not one of its starting elements yields Nothing.
func TestDerivativeIsNothingOutsideStartingElements(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		e := exprGen(3).Draw(t, "e")
		sym := rapid.SampledFrom([]rune{'a', 'b', 'c'}).Draw(t, "sym")
		a := &Analyzer[rune]{}

		d := a.Differentiate(e, sym)
		wasStart := a.StartingElements(e).Contains(sym)
		if !wasStart && !sameExpr(d, Nothing[rune]()) {
			t.Fatalf("Differentiate(%v, %q) should be Nothing when %q is not a starting element, got %v", e, sym, sym, d)
		}
	})
}

// TestIntersectionIsIdempotent checks e & e == e at the level of
// MatchesEmpty/StartingElements, since the smart constructor deduplicates
// identical requirements.
func TestIntersectionIsIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		e := exprGen(3).Draw(t, "e")
		a := &Analyzer[rune]{}
		ee := Intersection(e, e)
		if a.MatchesEmpty(e) != a.MatchesEmpty(ee) {
			t.Fatalf("MatchesEmpty(e) != MatchesEmpty(e & e)")
		}
		if a.StartingElements(e).Len() != a.StartingElements(ee).Len() {
			t.Fatalf("StartingElements(e) and StartingElements(e & e) differ in size")
		}
	})
}

// TestSatisfiableImpliesReachableAccept checks that whenever IsSatisfiable
// reports true, following starting elements whose derivatives are still
// satisfiable eventually reaches an expression matching empty, within a
// bound of 16 steps.
func TestSatisfiableImpliesReachableAccept(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		e := exprGen(3).Draw(t, "e")
		a := &Analyzer[rune]{}
		if !a.IsSatisfiable(e) {
			return
		}
		cur := e
		for i := 0; i < 16; i++ {
			if a.MatchesEmpty(cur) {
				return
			}
			var next Expression[rune]
			for sym := range a.StartingElements(cur) {
				if d := a.Differentiate(cur, sym); a.IsSatisfiable(d) {
					next = d
					break
				}
			}
			if next == nil {
				t.Fatalf("satisfiable expression %v ran out of starting elements before matching empty", e)
			}
			cur = next
		}
		t.Fatalf("satisfiable expression %v did not reach an accepting derivative within 16 steps", e)
	})
}
