package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"os"

	"github.com/wjt/hypothesis/automaton"
	"github.com/wjt/hypothesis/codegen"
	"github.com/wjt/hypothesis/dot"
	"github.com/wjt/hypothesis/regexsyntax"
	"github.com/wjt/hypothesis/seqexpr"
)

// Params holds the parsed command-line configuration: a plain struct
// fillable either from os.Args or programmatically (e.g. from a test),
// with Stdin/Stdout/Stderr exposed for redirection.
type Params struct {
	Pattern        string
	MatchInput     string
	DotOutput      string
	GoOutput       string
	NthRank        string
	ReportSize     bool
	GenerateCount  int
	Seed           int64
	StoppingChance float64

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ParseParams parses args (excluding the program name) into a Params using
// the standard flag.NewFlagSet(name, flag.ExitOnError) idiom.
func ParseParams(name string, args ...string) (*Params, error) {
	f := flag.NewFlagSet(name, flag.ExitOnError)
	p := &Params{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	f.StringVar(&p.Pattern, "pattern", "", "surface regex pattern to compile (required)")
	f.StringVar(&p.MatchInput, "match", "", "if set, report whether this string matches the compiled pattern")
	f.StringVar(&p.DotOutput, "dot", "", "if set, write the compiled DFA as Graphviz DOT to this file")
	f.StringVar(&p.GoOutput, "o", "", "if set, write the compiled DFA as a standalone Go source file to this path")
	f.StringVar(&p.NthRank, "nth", "", "if set, print the nth string (0-indexed, decimal) in the pattern's language")
	f.BoolVar(&p.ReportSize, "size", false, "print the number of strings in the pattern's language, or \"infinite\"")
	f.IntVar(&p.GenerateCount, "gen", 0, "print this many randomly generated matching strings")
	f.Int64Var(&p.Seed, "seed", 1, "seed for -gen's random generator")
	f.Float64Var(&p.StoppingChance, "stop", 0.5, "probability of stopping at each accepting state during -gen")

	if err := f.Parse(args); err != nil {
		return nil, fmt.Errorf("parse-params: %w", err)
	}
	if p.Pattern == "" {
		return nil, fmt.Errorf("parse-params: -pattern is required")
	}
	return p, nil
}

// Execute parses args and runs the tool, a convenience wrapper around
// ParseParams + ExecuteWithParams.
func Execute(name string, args ...string) error {
	p, err := ParseParams(name, args...)
	if err != nil {
		return err
	}
	return ExecuteWithParams(p)
}

// ExecuteWithParams compiles Pattern and runs whichever queries the caller
// selected, in the order: -match, -dot, -o, -size, -nth, -gen.
func ExecuteWithParams(p *Params) error {
	expr, err := regexsyntax.Parse(p.Pattern)
	if err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}

	ana := &seqexpr.Analyzer[rune]{}
	d, err := automaton.Compile(ana, expr, automaton.Options[rune]{Less: runeLess})
	if err != nil {
		return fmt.Errorf("compile dfa: %w", err)
	}

	if p.MatchInput != "" {
		matched := d.Matches([]rune(p.MatchInput))
		fmt.Fprintf(p.Stdout, "%v\n", matched)
	}

	if p.DotOutput != "" {
		f, err := os.Create(p.DotOutput)
		if err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		defer closeFile(f)
		dot.Write(f, d, "seqexpr")
	}

	if p.GoOutput != "" {
		src, err := codegen.Dump(d, "main", "compiledDFA")
		if err != nil {
			return fmt.Errorf("dump go source: %w", err)
		}
		if err := os.WriteFile(p.GoOutput, src, 0666); err != nil {
			return fmt.Errorf("write go source: %w", err)
		}
	}

	if p.ReportSize {
		if size, finite := d.LanguageSize(); finite {
			fmt.Fprintf(p.Stdout, "%s\n", size.String())
		} else {
			fmt.Fprintln(p.Stdout, "infinite")
		}
	}

	if p.NthRank != "" {
		n, ok := new(big.Int).SetString(p.NthRank, 10)
		if !ok {
			return fmt.Errorf("parse -nth: %q is not a decimal integer", p.NthRank)
		}
		s, err := d.NthString(n)
		if err != nil {
			return fmt.Errorf("nth string: %w", err)
		}
		fmt.Fprintf(p.Stdout, "%s\n", string(s))
	}

	if p.GenerateCount > 0 {
		rng := rand.New(rand.NewSource(p.Seed))
		for i := 0; i < p.GenerateCount; i++ {
			fmt.Fprintf(p.Stdout, "%s\n", string(d.Generate(rng, p.StoppingChance)))
		}
	}

	return nil
}

func runeLess(a, b rune) bool { return a < b }

func closeFile(f *os.File) {
	_ = f.Close()
}
