// Command seqexpr is a small demonstration CLI over the seqexpr/automaton
// engine: it compiles a surface regex pattern, then reports membership,
// language size, nth-string enumeration, random generation and/or a
// Graphviz DOT dump of the compiled DFA, depending on which flags are set.
package main

import (
	"log"
	"os"
)

func main() {
	if err := Execute(os.Args[0], os.Args[1:]...); err != nil {
		log.Fatalf("seqexpr: %v", err)
	}
}
