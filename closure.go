package automaton

import "fmt"

// Closure computes the epsilon-closure of the given states: the smallest
// superset closed under the epsilon-transition relation. The result is sorted
// by label. Unknown labels are rejected.
//
// The closure is idempotent and monotonic, and the result does not depend on
// the order of the input.
func (n *NFA) Closure(states []string) ([]string, error) {
	set := NewStateSet()
	for _, label := range states {
		id, ok := n.ids[label]
		if !ok {
			return nil, fmt.Errorf("closure: state %q is not declared", label)
		}
		set.Add(id)
	}
	n.closure(set)
	return n.sortedLabels(set.Members()), nil
}

// closure extends set in place with every state reachable over epsilon
// transitions. A depth-first worklist over the epsilon subgraph; each epsilon
// edge is looked at once, so the cost is linear in the edges touched.
func (n *NFA) closure(set *StateSet) {
	if !n.hasEpsilon() || set.Size() == 0 {
		return
	}
	stack := set.Members()
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.eps[s] {
			if !set.Has(t) {
				set.Add(t)
				stack = append(stack, t)
			}
		}
	}
}
