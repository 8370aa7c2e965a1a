package stream

import "io"

// RuneSource adapts an io.RuneReader (typically a bufio.Reader) into a
// Source[rune], the common case for scanning compiled character-alphabet
// DFAs over text.
type RuneSource struct {
	r io.RuneReader
}

// NewRuneSource wraps r as a Source[rune].
func NewRuneSource(r io.RuneReader) *RuneSource {
	return &RuneSource{r: r}
}

// Next implements Source[rune].
func (s *RuneSource) Next() (rune, bool, error) {
	r, _, err := s.r.ReadRune()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return r, true, nil
}
