package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexflint/go-arg"

	automaton "github.com/shahparamh/nfa2dfa"
)

type Args struct {
	Input     string `arg:"positional,required" help:"automaton definition (.yaml, .yml or .csv)"`
	Total     bool   `arg:"--total" help:"materialize a shared trap state so the table is total"`
	DOT       bool   `arg:"--dot" help:"print the DFA diagram as Graphviz DOT"`
	Latex     bool   `arg:"--latex" help:"print the NFA and DFA tables as LaTeX"`
	WorkLimit int    `arg:"--work-limit" default:"10000" help:"construction work limit, 0 disables"`
}

var args Args

func main() {
	p := arg.MustParse(&args)

	nfa, err := automaton.LoadDefinition(args.Input)
	if err != nil {
		p.Fail(err.Error())
	}

	opts := []automaton.BuildOption{automaton.WithWorkLimit(args.WorkLimit)}
	if args.Total {
		opts = append(opts, automaton.WithTotalTable())
	}

	dfa, err := automaton.Determinize(nfa, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, state := range dfa.UnreachableNFAStates() {
		fmt.Fprintf(os.Stderr, "warning: state %s is unreachable\n", state)
	}

	printTable(dfa)

	if args.DOT {
		fmt.Println()
		if err := automaton.RenderDFADOT(dfa, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if args.Latex {
		fmt.Println()
		fmt.Println(automaton.NFATableLaTeX(nfa, "NFA Transition Table"))
		fmt.Println()
		fmt.Println(automaton.DFATableLaTeX(dfa, "DFA Transition Table"))
	}
}

func printTable(dfa *automaton.DFA) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)

	fmt.Fprintln(w, "State\t"+strings.Join(dfa.Alphabet(), "\t"))
	for i, state := range dfa.States() {
		label := state.Name
		if i == 0 {
			label = "→" + label
		}
		if state.Final {
			label += "*"
		}

		cells := make([]string, 0, len(dfa.Alphabet()))
		for _, sym := range dfa.Alphabet() {
			target := dfa.Next(i, sym)
			if target == automaton.Trap {
				cells = append(cells, "φ")
			} else {
				cells = append(cells, dfa.State(target).Name)
			}
		}
		fmt.Fprintln(w, label+"\t"+strings.Join(cells, "\t"))
	}
	w.Flush()
}
