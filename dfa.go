package automaton

import (
	"slices"
	"strings"
)

// Trap is the table sentinel recorded when no NFA state in a composition has
// an outgoing transition for a symbol. It only becomes a real state under
// WithTotalTable.
const Trap = -1

// TrapName is the display name of the materialized trap state.
const TrapName = "∅"

// DFAState is one state of the output automaton, identified by the set of
// NFA states it stands for. Composition is nil only for the trap state.
type DFAState struct {
	Name        string
	Composition []string // source labels, sorted lexicographically
	Final       bool
}

// DFA is the deterministic result of subset construction. States are listed
// in discovery order; state 0 is the start state. The value is immutable once
// Determinize returns.
type DFA struct {
	states   []DFAState
	alphabet []Symbol
	symIndex map[Symbol]int

	// table[state][symbol index] holds the target state index, or Trap.
	table [][]int

	trap        int // index of the materialized trap state, or Trap
	unreachable []string
}

// NumStates reports how many DFA states were discovered (the trap state
// included, if materialized).
func (d *DFA) NumStates() int {
	return len(d.states)
}

// States returns all states in discovery order.
func (d *DFA) States() []DFAState {
	return slices.Clone(d.states)
}

// State returns the state at the given discovery index.
func (d *DFA) State(i int) DFAState {
	return d.states[i]
}

// StartState returns the start state, the epsilon-closure of the source
// automaton's start state.
func (d *DFA) StartState() DFAState {
	return d.states[0]
}

// Alphabet returns the alphabet, identical to the source automaton's.
func (d *DFA) Alphabet() []Symbol {
	return slices.Clone(d.alphabet)
}

// Next returns the index of the state reached from state on sym, or Trap when
// the table has no real entry (unknown symbols included).
func (d *DFA) Next(state int, sym Symbol) int {
	ai, ok := d.symIndex[sym]
	if !ok {
		return Trap
	}
	return d.table[state][ai]
}

// TrapState returns the index of the materialized trap state, or Trap when
// the table was built without one.
func (d *DFA) TrapState() int {
	return d.trap
}

// IsTotal reports whether every (state, symbol) pair maps to a real state.
func (d *DFA) IsTotal() bool {
	for _, row := range d.table {
		for _, t := range row {
			if t == Trap {
				return false
			}
		}
	}
	return true
}

// UnreachableNFAStates lists source states that appear in no discovered
// composition, in declaration order. Informational only.
func (d *DFA) UnreachableNFAStates() []string {
	return slices.Clone(d.unreachable)
}

// compositionName derives the stable display name of a composition from its
// sorted labels, e.g. {q0,q1}. Equal compositions always get equal names.
func compositionName(labels []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, label := range labels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(label)
	}
	b.WriteByte('}')
	return b.String()
}
