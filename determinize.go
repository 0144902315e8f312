package automaton

import (
	"errors"
	"fmt"
	"maps"

	"github.com/bits-and-blooms/bitset"
)

// DefaultDeterminizeWorkLimit is a decent guard against pathological inputs;
// the powerset of the state set is exponential in the worst case.
const DefaultDeterminizeWorkLimit = 10000

// ErrTooComplex is returned when determinizing exceeds the work limit.
var ErrTooComplex = errors.New("determinizing requires too much work")

type buildOptions struct {
	total     bool
	workLimit int
}

type BuildOption func(*buildOptions)

// WithTotalTable materializes a single shared non-final trap state with
// self-loops on every symbol, so the table has a real entry for every
// (state, symbol) pair. Without it, missing moves keep the Trap sentinel.
func WithTotalTable() BuildOption {
	return func(o *buildOptions) {
		o.total = true
	}
}

// WithWorkLimit caps the construction effort, measured in table entries
// computed. Zero or negative disables the guard.
func WithWorkLimit(n int) BuildOption {
	return func(o *buildOptions) {
		o.workLimit = n
	}
}

// Determinize converts n into an equivalent DFA by subset construction.
//
// The start state is the epsilon-closure of n's start state. States are
// discovered over a FIFO worklist, deduplicated by composition, with the
// alphabet walked in declared order, so repeated runs over the same automaton
// discover and name states identically. n is never mutated.
func Determinize(n *NFA, opts ...BuildOption) (*DFA, error) {
	o := buildOptions{workLimit: DefaultDeterminizeWorkLimit}
	for _, opt := range opts {
		opt(&o)
	}

	d := &DFA{
		alphabet: n.Alphabet(),
		symIndex: maps.Clone(n.symIndex),
		trap:     Trap,
	}

	// Discovered states, keyed by composition.
	seen := NewHashMap[int](WithCapacity(4))
	comps := make([]*FrozenComposition, 0, 4)

	discover := func(comp *FrozenComposition) int {
		idx := len(d.states)
		labels := n.sortedLabels(comp.Members())
		d.states = append(d.states, DFAState{
			Name:        compositionName(labels),
			Composition: labels,
			Final:       n.anyFinal(comp.Members()),
		})
		row := make([]int, len(d.alphabet))
		for i := range row {
			row[i] = Trap
		}
		d.table = append(d.table, row)
		comps = append(comps, comp)
		seen.Set(comp, idx)
		return idx
	}

	set := NewStateSet()
	set.Add(n.start)
	n.closure(set)
	discover(set.Freeze())

	worklist := []int{0}
	work := 0

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		members := comps[cur].Members()

		work += len(d.alphabet)
		if o.workLimit > 0 && work > o.workLimit {
			return nil, fmt.Errorf("%w (limit %d)", ErrTooComplex, o.workLimit)
		}

		for ai := range d.alphabet {
			set.Clear()
			for _, s := range members {
				for _, t := range n.moves[s][ai] {
					set.Add(t)
				}
			}
			if set.Size() == 0 {
				// No move; the row keeps the Trap sentinel.
				continue
			}
			n.closure(set)
			next := set.Freeze()
			idx, ok := seen.Get(next)
			if !ok {
				idx = discover(next)
				worklist = append(worklist, idx)
			}
			d.table[cur][ai] = idx
		}
	}

	covered := bitset.New(uint(n.NumStates()))
	for _, comp := range comps {
		for _, s := range comp.Members() {
			covered.Set(uint(s))
		}
	}
	for id, label := range n.labels {
		if !covered.Test(uint(id)) {
			d.unreachable = append(d.unreachable, label)
		}
	}

	if o.total {
		totalize(d)
	}

	return d, nil
}

// totalize redirects every Trap sentinel to one shared non-final trap state
// with self-loops on every symbol. No state is added if the table is already
// total.
func totalize(d *DFA) {
	needed := false
	for _, row := range d.table {
		for _, t := range row {
			if t == Trap {
				needed = true
			}
		}
	}
	if !needed {
		return
	}

	trap := len(d.states)
	d.states = append(d.states, DFAState{Name: TrapName})
	row := make([]int, len(d.alphabet))
	for i := range row {
		row[i] = trap
	}
	d.table = append(d.table, row)

	for _, row := range d.table[:trap] {
		for i, t := range row {
			if t == Trap {
				row[i] = trap
			}
		}
	}
	d.trap = trap
}
