package seqexpr

// Empty returns the expression matching only the empty sequence. It is a
// singleton per alphabet type: every call returns the same interned value.
func Empty[T comparable]() Expression[T] {
	return intern[T](&emptyExpr[T]{})
}

// Nothing returns the expression matching no sequence at all (the additive
// zero of the algebra).
func Nothing[T comparable]() Expression[T] {
	return intern[T](&nothingExpr[T]{})
}

// Literal returns the expression matching exactly the given sequence. It
// requires at least one value; pass Empty() for the zero-length sequence.
func Literal[T comparable](values ...T) (Expression[T], error) {
	if len(values) == 0 {
		return nil, clientError("Literal", "requires at least one value; use Empty() for the empty sequence")
	}
	cp := append([]T(nil), values...)
	return intern[T](&literalExpr[T]{values: cp, h: hashLiteral(cp)}), nil
}

// MustLiteral is like Literal but panics on error; it exists for
// constructing literals from constants where the argument count can never
// be zero by construction.
func MustLiteral[T comparable](values ...T) Expression[T] {
	e, err := Literal(values...)
	if err != nil {
		panic(err)
	}
	return e
}

// Concatenation returns the concatenation of the given expressions,
// flattening nested concatenations, dropping Empty children, and
// short-circuiting to Nothing if any child is Nothing.
func Concatenation[T comparable](expressions ...Expression[T]) Expression[T] {
	var parts []Expression[T]
	for _, x := range expressions {
		switch v := x.(type) {
		case *concatenationExpr[T]:
			parts = append(parts, v.children...)
		case *emptyExpr[T]:
			continue
		default:
			parts = append(parts, x)
		}
	}
	for _, p := range parts {
		if _, ok := p.(*nothingExpr[T]); ok {
			return Nothing[T]()
		}
	}
	switch len(parts) {
	case 0:
		return Empty[T]()
	case 1:
		return parts[0]
	default:
		return intern[T](&concatenationExpr[T]{children: parts, h: hashChildren(tagConcatenation, parts)})
	}
}

// Alternation returns the alternation of the given expressions, flattening
// nested alternations, dropping duplicate and Nothing alternatives, and
// splitting an Optional child into its inner expression plus Empty.
func Alternation[T comparable](expressions ...Expression[T]) Expression[T] {
	var parts []Expression[T]
	add := func(x Expression[T]) {
		for _, p := range parts {
			if sameExpr(p, x) {
				return
			}
		}
		parts = append(parts, x)
	}
	for _, x := range expressions {
		switch v := x.(type) {
		case *optionalExpr[T]:
			add(v.child)
			add(Empty[T]())
		case *alternationExpr[T]:
			for _, t := range v.alternatives {
				add(t)
			}
		case *nothingExpr[T]:
			continue
		default:
			add(x)
		}
	}
	switch len(parts) {
	case 0:
		return Nothing[T]()
	case 1:
		return parts[0]
	default:
		return intern[T](&alternationExpr[T]{alternatives: parts, h: hashChildren(tagAlternation, parts)})
	}
}

// Intersection returns the intersection of the given expressions,
// flattening nested intersections and dropping duplicate requirements.
// Empty is deliberately NOT absorbed to Empty: Empty ∩ Repetition(x) must
// be Empty, not Repetition(x), so Empty is treated as an ordinary
// requirement here, exactly like any other non-Nothing expression.
func Intersection[T comparable](expressions ...Expression[T]) Expression[T] {
	var parts []Expression[T]
	add := func(x Expression[T]) {
		for _, p := range parts {
			if sameExpr(p, x) {
				return
			}
		}
		parts = append(parts, x)
	}
	for _, x := range expressions {
		switch v := x.(type) {
		case *intersectionExpr[T]:
			for _, r := range v.requirements {
				add(r)
			}
		default:
			add(x)
		}
	}
	for _, p := range parts {
		if _, ok := p.(*nothingExpr[T]); ok {
			return Nothing[T]()
		}
	}
	switch len(parts) {
	case 0:
		return Nothing[T]()
	case 1:
		return parts[0]
	default:
		return intern[T](&intersectionExpr[T]{requirements: parts, h: hashChildren(tagIntersection, parts)})
	}
}

// Optional returns e? : e repeated zero or one times.
func Optional[T comparable](e Expression[T]) Expression[T] {
	switch v := e.(type) {
	case *emptyExpr[T]:
		return e
	case *nothingExpr[T]:
		return Empty[T]()
	case *optionalExpr[T]:
		return e
	case *repetitionExpr[T]:
		return e
	default:
		_ = v
		return intern[T](&optionalExpr[T]{child: e, h: hashChild(tagOptional, e)})
	}
}

// Repetition returns e* : e repeated zero or more times (Kleene star).
func Repetition[T comparable](e Expression[T]) Expression[T] {
	switch v := e.(type) {
	case *emptyExpr[T]:
		return e
	case *nothingExpr[T]:
		return Empty[T]()
	case *optionalExpr[T]:
		return Repetition[T](v.child)
	case *repetitionExpr[T]:
		return e
	default:
		return intern[T](&repetitionExpr[T]{child: e, h: hashChild(tagRepetition, e)})
	}
}

// Then is fluent sugar for Concatenation(e, other), standing in for the
// historical `+` operator overload (Go has no operator overloading).
func Then[T comparable](e, other Expression[T]) Expression[T] {
	return Concatenation(e, other)
}

// Or is fluent sugar for Alternation(e, other), standing in for `|`.
func Or[T comparable](e, other Expression[T]) Expression[T] {
	return Alternation(e, other)
}

// And is fluent sugar for Intersection(e, other), standing in for `&`.
func And[T comparable](e, other Expression[T]) Expression[T] {
	return Intersection(e, other)
}
