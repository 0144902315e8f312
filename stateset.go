package automaton

import "slices"

// StateSet is a mutable set of NFA state ids with an incrementally maintained
// order-independent hash. One instance is reused across the moves of a subset
// construction; Freeze snapshots it into an immutable lookup key.
type StateSet struct {
	members map[int]struct{}
	hashSum uint64
}

func NewStateSet() *StateSet {
	return &StateSet{members: make(map[int]struct{})}
}

func (s *StateSet) Add(state int) {
	if _, ok := s.members[state]; ok {
		return
	}
	s.members[state] = struct{}{}
	s.hashSum += uint64(mix(state))
}

func (s *StateSet) Has(state int) bool {
	_, ok := s.members[state]
	return ok
}

func (s *StateSet) Size() int {
	return len(s.members)
}

func (s *StateSet) Clear() {
	clear(s.members)
	s.hashSum = 0
}

// Members returns the states sorted ascending.
func (s *StateSet) Members() []int {
	ids := make([]int, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Freeze snapshots the set into an immutable composition key. Same members
// always hash the same, whatever order they were added in.
func (s *StateSet) Freeze() *FrozenComposition {
	return &FrozenComposition{
		members: s.Members(),
		hash:    uint64(len(s.members)) + s.hashSum,
	}
}

var _ Hashable = &FrozenComposition{}

// FrozenComposition is the immutable set of NFA states one DFA state stands
// for, usable as a HashMap key. Two compositions are equal iff they hold the
// same members; the hash is only a fast path.
type FrozenComposition struct {
	members []int // sorted ascending
	hash    uint64
}

func (f *FrozenComposition) Hash() uint64 {
	return f.hash
}

func (f *FrozenComposition) Equals(other Hashable) bool {
	o, ok := other.(*FrozenComposition)
	if !ok {
		return false
	}
	if f.hash != o.hash || len(f.members) != len(o.members) {
		return false
	}
	return slices.Equal(f.members, o.members)
}

// Members returns the composition's state ids, sorted ascending. The slice is
// shared; callers must not mutate it.
func (f *FrozenComposition) Members() []int {
	return f.members
}

func (f *FrozenComposition) Size() int {
	return len(f.members)
}
