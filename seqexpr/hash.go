package seqexpr

import (
	"fmt"
	"strings"
)

// Hashing is content-based: a variant tag combined with the hashes (or, for
// Literal, the formatted values) of its children via FNV-1a folding. It
// never touches a pointer address or map iteration order, so it is stable
// across runs of the same build, per the canonicalization contract.
const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
	fnvSeed   uint64 = fnvOffset

	tagEmpty uint64 = iota + 1
	tagNothing
	tagLiteral
	tagAlternation
	tagConcatenation
	tagIntersection
	tagOptional
	tagRepetition
)

func foldHash(seed uint64, parts ...uint64) uint64 {
	h := seed
	for _, p := range parts {
		h ^= p
		h *= fnvPrime
	}
	return h
}

func hashSymbol[T comparable](v T) uint64 {
	h := fnvOffset
	for _, b := range []byte(fmt.Sprintf("%#v", v)) {
		h ^= uint64(b)
		h *= fnvPrime
	}
	return h
}

func hashLiteral[T comparable](values []T) uint64 {
	h := foldHash(fnvSeed, tagLiteral)
	for _, v := range values {
		h = foldHash(h, hashSymbol(v))
	}
	return h
}

func hashChildren[T comparable](tag uint64, children []Expression[T]) uint64 {
	h := foldHash(fnvSeed, tag)
	for _, c := range children {
		h = foldHash(h, c.hash())
	}
	return h
}

func hashChild[T comparable](tag uint64, child Expression[T]) uint64 {
	return foldHash(fnvSeed, tag, child.hash())
}

func argumentList[T comparable](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}

func argumentListExpr[T comparable](children []Expression[T]) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
