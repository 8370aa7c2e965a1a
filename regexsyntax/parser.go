// Package regexsyntax is a small recursive-descent parser for a surface
// regex syntax that compiles into seqexpr.Expression[rune] values: literal
// runs of characters, `[abc]`/`[a-z]` character classes, `(…)` grouping,
// `e|e` alternation, `e*`/`e+`/`e?` repetition/optional, and backslash
// escapes for the metacharacters `| + * ? \ [ ] ( )`. It never builds a
// DFA itself — it only hands fully-constructed expressions to seqexpr.
//
// regexp/syntax is deliberately not used here: this grammar is a smaller,
// distinct token set from Go's regexp dialect, so it gets its own
// hand-rolled, rune-at-a-time parser rather than the standard library's
// regex engine.
package regexsyntax

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wjt/hypothesis/seqexpr"
)

// Sentinel errors wrapped with position information by reportError.
var (
	ErrUnexpectedEOF     = errors.New("unexpected end of pattern")
	ErrUnmatchedRParen   = errors.New("unmatched ')'")
	ErrUnmatchedLParen   = errors.New("unmatched '('")
	ErrEmptyClass        = errors.New("empty character class")
	ErrBadRange          = errors.New("character class range is backwards")
	ErrDanglingEscape    = errors.New("'\\' is not followed by a metacharacter")
	ErrDisallowedChar    = errors.New("character is outside the declared alphabet")
)

const metaChars = `|+*?\[]()`

// Parse compiles pattern into an Expression[rune] using the default
// alphabet (letters, digits and space); see ParseWithAlphabet to restrict
// or widen it.
func Parse(pattern string) (seqexpr.Expression[rune], error) {
	return ParseWithAlphabet(pattern, DefaultAlphabet)
}

// DefaultAlphabet accepts ASCII letters, digits and the space character.
func DefaultAlphabet(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ':
		return true
	default:
		return false
	}
}

// ParseWithAlphabet compiles pattern into an Expression[rune], rejecting
// any literal character (outside of an escape) for which allowed returns
// false.
func ParseWithAlphabet(pattern string, allowed func(rune) bool) (seqexpr.Expression[rune], error) {
	p := &parser{
		in:      bufio.NewReader(strings.NewReader(pattern)),
		allowed: allowed,
		col:     -1,
	}
	expr := p.parseAlternation()
	if p.err == nil && p.read() {
		p.reportError(fmt.Errorf("%w: %q", ErrUnmatchedRParen, p.r))
	}
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

type parser struct {
	in      *bufio.Reader
	allowed func(rune) bool

	col      int
	r        rune
	eof      bool
	err      error
	isUnread bool
}

func (p *parser) reportError(err error) {
	if p.err != nil {
		return
	}
	p.err = fmt.Errorf("regexsyntax: col %d: %w", p.col, err)
}

// read returns true if successful.
func (p *parser) read() bool {
	if p.err != nil || p.eof {
		return false
	}
	if p.isUnread {
		p.isUnread = false
		return true
	}
	r, _, err := p.in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			p.eof = true
		} else {
			p.reportError(err)
		}
		return false
	}
	p.col++
	p.r = r
	return true
}

func (p *parser) unread() {
	p.isUnread = true
}

func (p *parser) peekIs(want rune) bool {
	if !p.read() {
		return false
	}
	if p.r != want {
		p.unread()
		return false
	}
	return true
}

// parseAlternation parses the lowest-precedence level: e '|' e '|' ... .
func (p *parser) parseAlternation() seqexpr.Expression[rune] {
	terms := []seqexpr.Expression[rune]{p.parseConcatenation()}
	for p.err == nil && p.peekIs('|') {
		terms = append(terms, p.parseConcatenation())
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return seqexpr.Alternation(terms...)
}

// parseConcatenation parses a run of postfixed atoms until '|', ')' or EOF.
func (p *parser) parseConcatenation() seqexpr.Expression[rune] {
	var parts []seqexpr.Expression[rune]
	for p.err == nil {
		if !p.read() {
			break
		}
		if p.r == '|' || p.r == ')' {
			p.unread()
			break
		}
		p.unread()
		parts = append(parts, p.parsePostfix())
	}
	if p.err != nil {
		return nil
	}
	return seqexpr.Concatenation(parts...)
}

// parsePostfix parses one atom followed by an optional '*', '+' or '?'.
func (p *parser) parsePostfix() seqexpr.Expression[rune] {
	atom := p.parseAtom()
	if p.err != nil {
		return nil
	}
	if !p.read() {
		return atom
	}
	switch p.r {
	case '*':
		return seqexpr.Repetition(atom)
	case '+':
		return seqexpr.Concatenation(atom, seqexpr.Repetition(atom))
	case '?':
		return seqexpr.Optional(atom)
	default:
		p.unread()
		return atom
	}
}

func (p *parser) parseAtom() seqexpr.Expression[rune] {
	if !p.mustRead() {
		return nil
	}
	switch p.r {
	case '(':
		inner := p.parseAlternation()
		if p.err != nil {
			return nil
		}
		if !p.read() || p.r != ')' {
			p.reportError(ErrUnmatchedLParen)
			return nil
		}
		return inner
	case '[':
		return p.parseClass()
	case '\\':
		r := p.mustReadEscaped()
		if p.err != nil {
			return nil
		}
		return seqexpr.MustLiteral(r)
	case '|', ')', '*', '+', '?', ']':
		p.reportError(fmt.Errorf("%w: %q", ErrDisallowedChar, p.r))
		return nil
	default:
		if !p.checkAllowed(p.r) {
			return nil
		}
		return seqexpr.MustLiteral(p.r)
	}
}

// parseClass parses the contents of a `[...]` up to (and consuming) the
// closing bracket, returning an Alternation of single-rune Literals.
func (p *parser) parseClass() seqexpr.Expression[rune] {
	var members []rune
	seen := func(r rune) bool {
		for _, m := range members {
			if m == r {
				return true
			}
		}
		return false
	}
	for {
		if !p.mustRead() {
			return nil
		}
		if p.r == ']' {
			break
		}
		lo := p.r
		if lo == '\\' {
			lo = p.mustReadEscaped()
			if p.err != nil {
				return nil
			}
		} else if !p.checkAllowed(lo) {
			return nil
		}
		if p.peekIs('-') {
			if !p.mustRead() {
				return nil
			}
			hi := p.r
			if hi == '\\' {
				hi = p.mustReadEscaped()
				if p.err != nil {
					return nil
				}
			} else if !p.checkAllowed(hi) {
				return nil
			}
			if hi < lo {
				p.reportError(ErrBadRange)
				return nil
			}
			for r := lo; r <= hi; r++ {
				if !seen(r) {
					members = append(members, r)
				}
			}
			continue
		}
		if !seen(lo) {
			members = append(members, lo)
		}
	}
	if len(members) == 0 {
		p.reportError(ErrEmptyClass)
		return nil
	}
	terms := make([]seqexpr.Expression[rune], len(members))
	for i, r := range members {
		terms[i] = seqexpr.MustLiteral(r)
	}
	return seqexpr.Alternation(terms...)
}

func (p *parser) mustRead() bool {
	if p.read() {
		return true
	}
	if p.err == nil {
		p.reportError(ErrUnexpectedEOF)
	}
	return false
}

func (p *parser) mustReadEscaped() rune {
	if !p.mustRead() {
		return 0
	}
	if !strings.ContainsRune(metaChars, p.r) {
		p.reportError(fmt.Errorf("%w: '\\%c'", ErrDanglingEscape, p.r))
		return 0
	}
	return p.r
}

func (p *parser) checkAllowed(r rune) bool {
	if p.allowed != nil && !p.allowed(r) {
		p.reportError(fmt.Errorf("%w: %q", ErrDisallowedChar, r))
		return false
	}
	return true
}
