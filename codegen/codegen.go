// Package codegen renders a compiled automaton.DFA[rune] as a standalone Go
// source file embedding its transition table as a data literal: build the
// source as text, then run it through format.Source and
// golang.org/x/tools/imports.Process so the emitted file is gofmt-clean
// and has its imports resolved, rather than handing the caller unformatted
// text.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/wjt/hypothesis/automaton"
)

var dfaTemplate = template.Must(template.New("dfa").Parse(`// Code generated by seqexpr's codegen package from a compiled DFA. DO NOT EDIT.

package {{.Package}}

var {{.VarName}} = struct {
	Terminal    []bool
	Transitions [][]struct {
		Symbol rune
		Target int
	}
}{
	Terminal: []bool{ {{range .Terminal}}{{.}}, {{end}} },
	Transitions: [][]struct {
		Symbol rune
		Target int
	}{
{{range .Rows}}		{ {{range .}}{Symbol: {{.Symbol | printf "%q"}}, Target: {{.Target}}}, {{end}} },
{{end}}	},
}
`))

type templateData struct {
	Package  string
	VarName  string
	Terminal []bool
	Rows     [][]templateEdge
}

type templateEdge struct {
	Symbol rune
	Target int
}

// Dump renders d as a formatted, import-resolved Go source file declaring a
// package-level variable named varName in package pkg.
func Dump(d *automaton.DFA[rune], pkg, varName string) ([]byte, error) {
	data := templateData{
		Package:  pkg,
		VarName:  varName,
		Terminal: make([]bool, d.NumStates()),
	}
	for state := 0; state < d.NumStates(); state++ {
		data.Terminal[state] = d.IsTerminal(state)
		row := d.Transitions(state)
		edges := make([]templateEdge, len(row))
		for i, t := range row {
			edges[i] = templateEdge{Symbol: t.Symbol, Target: t.Target}
		}
		data.Rows = append(data.Rows, edges)
	}

	var buf bytes.Buffer
	if err := dfaTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("codegen: render template: %w", err)
	}
	return formatCode(buf.Bytes())
}

func formatCode(src []byte) ([]byte, error) {
	src, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("codegen: format: %w", err)
	}
	out, err := imports.Process("dfa.go", src, &imports.Options{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
		Fragment:  true,
	})
	if err != nil {
		return src, fmt.Errorf("codegen: resolve imports: %w", err)
	}
	return out, nil
}
