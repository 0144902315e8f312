package automaton

import (
	"fmt"
	"slices"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Symbol is one atomic input token from an automaton's alphabet.
type Symbol = string

// Epsilon is the empty-input marker. It labels transitions that are taken
// without consuming a symbol and is never a member of the alphabet itself.
const Epsilon Symbol = "ε"

// Invariants an automaton definition is checked against on construction.
// MalformedAutomatonError.Invariant carries the first one violated.
const (
	InvariantStateSet        = "empty state set"
	InvariantStartState      = "missing start state"
	InvariantDeclaredState   = "undeclared state"
	InvariantDeclaredSymbol  = "undeclared symbol"
	InvariantUniqueDecl      = "duplicate declaration"
	InvariantEpsilonReserved = "epsilon in alphabet"
)

// MalformedAutomatonError reports a structural invariant violated by an
// automaton definition. It is returned before any conversion work begins.
type MalformedAutomatonError struct {
	Invariant string
	Detail    string
}

func (e *MalformedAutomatonError) Error() string {
	return fmt.Sprintf("malformed automaton: %s: %s", e.Invariant, e.Detail)
}

func malformed(invariant, format string, args ...any) *MalformedAutomatonError {
	return &MalformedAutomatonError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// NFA is a nondeterministic finite automaton, possibly with epsilon
// transitions. State labels and symbols are interned to dense ints on
// construction; the value is immutable afterwards and safe to share.
type NFA struct {
	labels   []string // id -> label, declaration order
	ids      map[string]int
	alphabet []Symbol // declared order, epsilon excluded
	symIndex map[Symbol]int

	start  int
	finals *bitset.BitSet

	// moves[state][symbol index] and eps[state] hold sorted, deduplicated
	// target ids.
	moves [][][]int
	eps   [][]int

	numEpsilon int
}

// NewNFA validates def and builds the immutable automaton value. The first
// violated invariant is reported as a *MalformedAutomatonError.
func NewNFA(def Definition) (*NFA, error) {
	if len(def.States) == 0 {
		return nil, malformed(InvariantStateSet, "an automaton needs at least one state")
	}

	n := &NFA{
		labels:   slices.Clone(def.States),
		ids:      make(map[string]int, len(def.States)),
		alphabet: slices.Clone(def.Alphabet),
		symIndex: make(map[Symbol]int, len(def.Alphabet)),
	}

	for i, label := range def.States {
		if _, ok := n.ids[label]; ok {
			return nil, malformed(InvariantUniqueDecl, "state %q declared twice", label)
		}
		n.ids[label] = i
	}
	for i, sym := range def.Alphabet {
		if sym == Epsilon {
			return nil, malformed(InvariantEpsilonReserved, "the alphabet must not contain %q", Epsilon)
		}
		if _, ok := n.symIndex[sym]; ok {
			return nil, malformed(InvariantUniqueDecl, "symbol %q declared twice", sym)
		}
		n.symIndex[sym] = i
	}

	if def.Start == "" {
		return nil, malformed(InvariantStartState, "no start state designated")
	}
	start, ok := n.ids[def.Start]
	if !ok {
		return nil, malformed(InvariantDeclaredState, "start state %q is not declared", def.Start)
	}
	n.start = start

	n.finals = bitset.New(uint(len(n.labels)))
	for _, label := range def.Final {
		id, ok := n.ids[label]
		if !ok {
			return nil, malformed(InvariantDeclaredState, "final state %q is not declared", label)
		}
		n.finals.Set(uint(id))
	}

	n.moves = make([][][]int, len(n.labels))
	n.eps = make([][]int, len(n.labels))
	for i := range n.moves {
		n.moves[i] = make([][]int, len(n.alphabet))
	}

	for _, e := range def.Transitions {
		from, ok := n.ids[e.From]
		if !ok {
			return nil, malformed(InvariantDeclaredState, "transition source %q is not declared", e.From)
		}
		targets := make([]int, 0, len(e.To))
		for _, label := range e.To {
			id, ok := n.ids[label]
			if !ok {
				return nil, malformed(InvariantDeclaredState, "transition target %q is not declared", label)
			}
			targets = append(targets, id)
		}
		if e.Input == Epsilon {
			n.eps[from] = append(n.eps[from], targets...)
		} else {
			ai, ok := n.symIndex[e.Input]
			if !ok {
				return nil, malformed(InvariantDeclaredSymbol, "transition symbol %q is not in the alphabet", e.Input)
			}
			n.moves[from][ai] = append(n.moves[from][ai], targets...)
		}
	}

	for s := range n.labels {
		n.eps[s] = sortedUnique(n.eps[s])
		n.numEpsilon += len(n.eps[s])
		for ai := range n.alphabet {
			n.moves[s][ai] = sortedUnique(n.moves[s][ai])
		}
	}

	return n, nil
}

func sortedUnique(ids []int) []int {
	if len(ids) < 2 {
		return ids
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// NumStates reports how many states this automaton has.
func (n *NFA) NumStates() int {
	return len(n.labels)
}

// States returns the state labels in declaration order.
func (n *NFA) States() []string {
	return slices.Clone(n.labels)
}

// Alphabet returns the declared alphabet, epsilon excluded, in declared order.
func (n *NFA) Alphabet() []Symbol {
	return slices.Clone(n.alphabet)
}

// StartState returns the label of the unique start state.
func (n *NFA) StartState() string {
	return n.labels[n.start]
}

// IsFinal reports whether the labeled state is an accepting state. Unknown
// labels are not final.
func (n *NFA) IsFinal(label string) bool {
	id, ok := n.ids[label]
	return ok && n.finals.Test(uint(id))
}

// TransitionsOf returns the targets reachable from state on sym in one step,
// sorted by label. Pass Epsilon for the epsilon targets. The result is empty
// when no transition is defined, including for unknown labels.
func (n *NFA) TransitionsOf(state string, sym Symbol) []string {
	id, ok := n.ids[state]
	if !ok {
		return nil
	}
	var targets []int
	if sym == Epsilon {
		targets = n.eps[id]
	} else if ai, ok := n.symIndex[sym]; ok {
		targets = n.moves[id][ai]
	}
	return n.sortedLabels(targets)
}

func (n *NFA) hasEpsilon() bool {
	return n.numEpsilon > 0
}

func (n *NFA) anyFinal(ids []int) bool {
	for _, id := range ids {
		if n.finals.Test(uint(id)) {
			return true
		}
	}
	return false
}

// sortedLabels maps ids to their labels, sorted lexicographically.
func (n *NFA) sortedLabels(ids []int) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, n.labels[id])
	}
	sort.Strings(labels)
	return labels
}
