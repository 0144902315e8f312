package automaton

import (
	"fmt"
	"strings"
)

// NFATableLaTeX renders n's transition table as a LaTeX tabular, one column
// per alphabet symbol plus an epsilon column. The start row is prefixed with
// → and final rows carry a * suffix; empty cells hold $\phi$.
func NFATableLaTeX(n *NFA, caption string) string {
	symbols := append(n.Alphabet(), Epsilon)

	var b strings.Builder
	writeTableHead(&b, symbols)
	for _, state := range n.States() {
		cells := make([]string, 0, len(symbols))
		for _, sym := range symbols {
			cells = append(cells, phiCell(strings.Join(n.TransitionsOf(state, sym), ",")))
		}
		writeRow(&b, rowLabel(state, state == n.StartState(), n.IsFinal(state)), cells)
	}
	writeTableFoot(&b, caption)
	return b.String()
}

// DFATableLaTeX renders d's transition table as a LaTeX tabular in discovery
// order. Trap sentinel entries render as $\phi$.
func DFATableLaTeX(d *DFA, caption string) string {
	var b strings.Builder
	writeTableHead(&b, d.Alphabet())
	for i, state := range d.States() {
		cells := make([]string, 0, len(d.Alphabet()))
		for _, sym := range d.Alphabet() {
			target := d.Next(i, sym)
			if target == Trap {
				cells = append(cells, phiCell(""))
			} else {
				cells = append(cells, d.State(target).Name)
			}
		}
		writeRow(&b, rowLabel(state.Name, i == 0, state.Final), cells)
	}
	writeTableFoot(&b, caption)
	return b.String()
}

func writeTableHead(b *strings.Builder, symbols []Symbol) {
	b.WriteString("\\begin{table}[h]\n")
	b.WriteString("    \\centering\n")
	b.WriteString("    \\begin{tabular}{|" + strings.Repeat("c|", len(symbols)+1) + "}\n")
	b.WriteString("    \\hline\n")

	headers := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym == Epsilon {
			sym = "$\\epsilon$"
		}
		headers = append(headers, sym)
	}
	b.WriteString("State & " + strings.Join(headers, " & ") + " \\\\ \\hline\n")
}

func writeRow(b *strings.Builder, label string, cells []string) {
	b.WriteString(label + " & " + strings.Join(cells, " & ") + " \\\\ \\hline\n")
}

func writeTableFoot(b *strings.Builder, caption string) {
	b.WriteString("    \\end{tabular}\n")
	fmt.Fprintf(b, "    \\caption{%s}\n", caption)
	b.WriteString("\\end{table}")
}

func rowLabel(name string, start, final bool) string {
	if start {
		name = "→" + name
	}
	if final {
		name += "*"
	}
	return name
}

func phiCell(s string) string {
	if s == "" {
		return "$\\phi$"
	}
	return s
}
