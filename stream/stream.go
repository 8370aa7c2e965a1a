// Package stream runs a compiled automaton.DFA over a live source of
// symbols as a background goroutine, emitting each longest accepted match
// over a channel: a goroutine+channel+context lexer runtime generalized
// from a single-purpose generated token scanner into a generic
// longest-match scanner driven by any automaton.DFA[T]. Unlike the
// synchronous seqexpr/automaton core,
// this package is explicitly concurrent: it exists to let a caller consume
// matches as they arrive from a Source that itself blocks (a network
// connection, a growing file), rather than requiring the whole input
// upfront.
package stream

import (
	"context"
	"fmt"

	"github.com/wjt/hypothesis/automaton"
)

// Source produces symbols one at a time. Next returns (symbol, true, nil)
// for each available symbol, (_, false, nil) at end of input, or (_, false,
// err) if reading failed.
type Source[T comparable] interface {
	Next() (T, bool, error)
}

// Match is one longest accepted run of symbols found by a Scanner, together with
// its offset in the symbol stream.
type Match[T comparable] struct {
	Value  []T
	Offset int
}

// Scanner drives a DFA over a Source in a background goroutine. Matches are
// delivered over Matches(); call Stop to cancel early.
type Scanner[T comparable] struct {
	dfa    *automaton.DFA[T]
	ch     chan Match[T]
	errCh  chan error
	cancel context.CancelFunc
}

// NewScanner starts scanning src with dfa in a background goroutine.
// Scanning stops when src is exhausted, ctx is canceled, or Stop is called.
func NewScanner[T comparable](ctx context.Context, dfa *automaton.DFA[T], src Source[T]) *Scanner[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Scanner[T]{
		dfa:    dfa,
		ch:     make(chan Match[T]),
		errCh:  make(chan error, 1),
		cancel: cancel,
	}
	go s.run(ctx, src)
	return s
}

// Matches returns the channel matches are delivered on. It is closed when
// scanning finishes, whether by exhausting src, by an error (check Err
// after the channel closes), or by Stop.
func (s *Scanner[T]) Matches() <-chan Match[T] {
	return s.ch
}

// Stop cancels the background scan.
func (s *Scanner[T]) Stop() {
	s.cancel()
}

// Err returns the error that ended scanning, if any. It is only meaningful
// after Matches has been drained (closed).
func (s *Scanner[T]) Err() error {
	select {
	case err := <-s.errCh:
		return err
	default:
		return nil
	}
}

func (s *Scanner[T]) run(ctx context.Context, src Source[T]) {
	defer close(s.ch)

	var buf []T
	offset := 0
	// emptyMatchedAt tracks the offset of the last zero-length match this
	// scan already emitted. A terminal start state (any nullable DFA, e.g.
	// "a?") makes matchLen == 0 a legitimate match, but once it has been
	// emitted once at a given offset without the automaton making any
	// further progress there, repeating it forever would never close
	// s.ch. The next time the same offset produces the same zero-length
	// result, treat it like no match at all and force a one-symbol
	// advance, the same anti-livelock guard a minCapture-style restart
	// gives a generated lexer.
	emptyMatchedAt := -1
	for {
		if ctx.Err() != nil {
			return
		}

		state := 0
		matchLen := -1
		pos := 0
		for {
			if state >= 0 && s.dfa.IsTerminal(state) {
				matchLen = pos
			}
			sym, ok, err := s.peek(src, &buf, pos)
			if err != nil {
				s.errCh <- fmt.Errorf("stream: %w", err)
				return
			}
			if !ok {
				break
			}
			next, ok := s.step(state, sym)
			if !ok {
				break
			}
			state = next
			pos++
		}

		if matchLen == 0 && offset == emptyMatchedAt {
			matchLen = -1
		}

		if matchLen < 0 {
			if len(buf) == 0 {
				return
			}
			// No match at this offset at all: skip one symbol and retry.
			buf = buf[1:]
			offset++
			continue
		}

		if matchLen == 0 {
			emptyMatchedAt = offset
		}

		match := Match[T]{Value: append([]T(nil), buf[:matchLen]...), Offset: offset}
		select {
		case s.ch <- match:
		case <-ctx.Done():
			return
		}
		buf = buf[matchLen:]
		offset += matchLen
	}
}

func (s *Scanner[T]) step(state int, sym T) (int, bool) {
	for _, t := range s.dfa.Transitions(state) {
		if t.Symbol == sym {
			return t.Target, true
		}
	}
	return 0, false
}

// peek returns the symbol at position pos in buf, pulling more input from
// src if necessary.
func (s *Scanner[T]) peek(src Source[T], buf *[]T, pos int) (T, bool, error) {
	for pos >= len(*buf) {
		sym, ok, err := src.Next()
		if err != nil {
			var zero T
			return zero, false, err
		}
		if !ok {
			var zero T
			return zero, false, nil
		}
		*buf = append(*buf, sym)
	}
	return (*buf)[pos], true, nil
}
