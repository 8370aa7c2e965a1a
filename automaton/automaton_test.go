package automaton_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wjt/hypothesis/automaton"
	"github.com/wjt/hypothesis/seqexpr"
)

func runeLess(a, b rune) bool { return a < b }

func compile(t *testing.T, e seqexpr.Expression[rune]) *automaton.DFA[rune] {
	t.Helper()
	d, err := automaton.Compile(&seqexpr.Analyzer[rune]{}, e, automaton.Options[rune]{Less: runeLess})
	require.NoError(t, err)
	return d
}

func abcStar(t *testing.T) *automaton.DFA[rune] {
	// (a|b|c)*
	alt := seqexpr.Alternation(seqexpr.MustLiteral('a'), seqexpr.MustLiteral('b'), seqexpr.MustLiteral('c'))
	return compile(t, seqexpr.Repetition(alt))
}

func TestMatches(t *testing.T) {
	t.Parallel()
	e := seqexpr.Concatenation(seqexpr.MustLiteral('a'), seqexpr.Optional(seqexpr.MustLiteral('b')), seqexpr.MustLiteral('c'))
	d := compile(t, e)

	cases := []struct {
		in   string
		want bool
	}{
		{"ac", true},
		{"abc", true},
		{"a", false},
		{"abbc", false},
		{"", false},
		{"xyz", false},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, d.Matches([]rune(c.in)), "Matches(%q)", c.in)
	}
}

func TestMatchesEmptyLanguage(t *testing.T) {
	t.Parallel()
	d := compile(t, seqexpr.Nothing[rune]())
	require.False(t, d.Matches(nil), "Nothing's compiled DFA should reject every string")
	require.False(t, d.Matches([]rune("a")), "Nothing's compiled DFA should reject every string")
}

func TestMatchesEmptyString(t *testing.T) {
	t.Parallel()
	d := compile(t, seqexpr.Empty[rune]())
	require.True(t, d.Matches(nil), "Empty's compiled DFA should accept the empty string")
	require.False(t, d.Matches([]rune("a")), "Empty's compiled DFA should reject any non-empty string")
}

func TestMatchingSubstrings(t *testing.T) {
	t.Parallel()
	d := abcStar(t)
	var got []string
	for sub := range d.MatchingSubstrings([]rune("abcz")) {
		got = append(got, string(sub))
	}
	require.Equal(t, []string{"", "a", "ab", "abc"}, got)
}

func TestLanguageSizeFinite(t *testing.T) {
	t.Parallel()
	// (a|b)(c|d) has exactly 4 strings.
	e := seqexpr.Concatenation(
		seqexpr.Alternation(seqexpr.MustLiteral('a'), seqexpr.MustLiteral('b')),
		seqexpr.Alternation(seqexpr.MustLiteral('c'), seqexpr.MustLiteral('d')),
	)
	d := compile(t, e)
	size, finite := d.LanguageSize()
	require.True(t, finite, "expected a finite language")
	require.Zero(t, size.Cmp(big.NewInt(4)), "LanguageSize = %s, want 4", size)
}

func TestLanguageSizeInfinite(t *testing.T) {
	t.Parallel()
	d := abcStar(t)
	_, finite := d.LanguageSize()
	require.False(t, finite, "(a|b|c)* should be reported as an infinite language")
	require.True(t, d.IsLanguageInfinite(), "IsLanguageInfinite should be true for (a|b|c)*")
}

func TestNthStringEnumeratesInLexicographicOrder(t *testing.T) {
	t.Parallel()
	// (a|b)(a|b): aa, ab, ba, bb in that order.
	e := seqexpr.Concatenation(
		seqexpr.Alternation(seqexpr.MustLiteral('a'), seqexpr.MustLiteral('b')),
		seqexpr.Alternation(seqexpr.MustLiteral('a'), seqexpr.MustLiteral('b')),
	)
	d := compile(t, e)
	want := []string{"aa", "ab", "ba", "bb"}
	for i, w := range want {
		got, err := d.NthString(big.NewInt(int64(i)))
		require.NoErrorf(t, err, "NthString(%d)", i)
		require.Equal(t, w, string(got))
	}
	_, err := d.NthString(big.NewInt(4))
	require.Error(t, err, "NthString(4) should be out of range for a 4-string language")
	_, err = d.NthString(big.NewInt(-1))
	require.Error(t, err, "NthString(-1) should be rejected")
}

func TestNthStringOrdersShorterBeforeLonger(t *testing.T) {
	t.Parallel()
	// a? | aa : "", "a", "aa" in length order.
	e := seqexpr.Alternation(seqexpr.Optional(seqexpr.MustLiteral('a')), seqexpr.MustLiteral('a', 'a'))
	d := compile(t, e)
	for i, want := range []string{"", "a", "aa"} {
		got, err := d.NthString(big.NewInt(int64(i)))
		require.NoErrorf(t, err, "NthString(%d)", i)
		require.Equal(t, want, string(got))
	}
}

func TestGenerateAlwaysMatches(t *testing.T) {
	t.Parallel()
	d := abcStar(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		s := d.Generate(rng, 0.5)
		require.Truef(t, d.Matches(s), "Generate produced %q, which the same DFA rejects", string(s))
	}
}

func TestGenerateRespectsHighStoppingChance(t *testing.T) {
	t.Parallel()
	e := seqexpr.Repetition(seqexpr.MustLiteral('a'))
	d := compile(t, e)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		s := d.Generate(rng, 1.0)
		require.LessOrEqualf(t, len(s), 1, "Generate with stoppingChance=1.0 produced an overlong string %q", string(s))
	}
}

func TestGenerateOnUnsatisfiableRootDoesNotPanic(t *testing.T) {
	t.Parallel()
	// literal(1,2) & literal(1,3) is unsatisfiable: Compile produces a
	// single state that is neither terminal nor has any transitions.
	e := seqexpr.Intersection(seqexpr.MustLiteral('a', 'b'), seqexpr.MustLiteral('a', 'c'))
	d := compile(t, e)
	require.Equal(t, 1, d.NumStates())
	require.False(t, d.IsTerminal(0))
	require.Empty(t, d.Transitions(0))

	rng := rand.New(rand.NewSource(1))
	got := d.Generate(rng, 0.5)
	require.Empty(t, got, "Generate on an unsatisfiable-root DFA should produce an empty result")
}

func TestCompileRejectsRunawayExpression(t *testing.T) {
	t.Parallel()
	// Not a realistic canonicalized expression, but Options.MaxStates must
	// still be honored if a pathological alphabet blows up state discovery.
	var e seqexpr.Expression[rune] = seqexpr.Empty[rune]()
	for _, r := range "abcdefghijklmnopqrstuvwxyz" {
		e = seqexpr.Concatenation(e, seqexpr.Alternation(seqexpr.MustLiteral(r), seqexpr.Empty[rune]()))
	}
	_, err := automaton.Compile(&seqexpr.Analyzer[rune]{}, e, automaton.Options[rune]{Less: runeLess, MaxStates: 4})
	require.Error(t, err, "expected a LogicError when MaxStates is exceeded")
	_, ok := err.(*automaton.LogicError)
	require.Truef(t, ok, "expected *automaton.LogicError, got %T", err)
}
