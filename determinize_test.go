package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminizeScenarioA(t *testing.T) {
	n := mustNFA(t, scenarioA())

	d, err := Determinize(n)
	assert.Nil(t, err)

	assert.Equal(t, 2, d.NumStates())
	assert.Equal(t, "{q0}", d.StartState().Name)
	assert.False(t, d.StartState().Final)

	next := d.Next(0, "a")
	assert.Equal(t, 1, next)
	assert.Equal(t, "{q0,q1}", d.State(next).Name)
	assert.Equal(t, []string{"q0", "q1"}, d.State(next).Composition)
	assert.True(t, d.State(next).Final)

	// Self-loop, already discovered.
	assert.Equal(t, next, d.Next(next, "a"))
	assert.True(t, d.IsTotal())
}

func TestDeterminizeScenarioB(t *testing.T) {
	n := mustNFA(t, scenarioB())

	t.Run("partial", func(t *testing.T) {
		d, err := Determinize(n)
		assert.Nil(t, err)

		assert.Equal(t, 2, d.NumStates())
		assert.Equal(t, "{q0,q1}", d.StartState().Name)

		next := d.Next(0, "a")
		assert.Equal(t, "{q2}", d.State(next).Name)
		assert.True(t, d.State(next).Final)

		assert.Equal(t, Trap, d.Next(next, "a"))
		assert.False(t, d.IsTotal())
	})

	t.Run("total", func(t *testing.T) {
		d, err := Determinize(n, WithTotalTable())
		assert.Nil(t, err)

		assert.Equal(t, 3, d.NumStates())
		trap := d.Next(d.Next(0, "a"), "a")
		assert.NotEqual(t, Trap, trap)
		assert.Equal(t, trap, d.TrapState())
		assert.Equal(t, TrapName, d.State(trap).Name)
		assert.False(t, d.State(trap).Final)
		assert.Equal(t, trap, d.Next(trap, "a"))
		assert.True(t, d.IsTotal())
	})
}

func TestDeterminizeScenarioC(t *testing.T) {
	n := mustNFA(t, Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []Symbol{"a", "b"},
		Start:    "q0",
		Final:    []string{"q1"},
		Transitions: []Edge{
			{From: "q0", Input: "a", To: []string{"q1"}},
		},
	})

	d, err := Determinize(n)
	assert.Nil(t, err)
	assert.Equal(t, Trap, d.Next(0, "b"))
}

func TestDeterminizeDeterministicOutput(t *testing.T) {
	n := mustNFA(t, Definition{
		States:   []string{"s", "a1", "a2", "b1", "b2", "f"},
		Alphabet: []Symbol{"x", "y"},
		Start:    "s",
		Final:    []string{"f"},
		Transitions: []Edge{
			{From: "s", Input: Epsilon, To: []string{"a1", "b1"}},
			{From: "a1", Input: "x", To: []string{"a2", "b2"}},
			{From: "b1", Input: "y", To: []string{"b2", "a2"}},
			{From: "a2", Input: "x", To: []string{"f", "a1"}},
			{From: "b2", Input: "y", To: []string{"f"}},
			{From: "f", Input: Epsilon, To: []string{"s"}},
		},
	})

	first, err := Determinize(n)
	assert.Nil(t, err)
	second, err := Determinize(n)
	assert.Nil(t, err)

	assert.Equal(t, first.States(), second.States())
	for i := 0; i < first.NumStates(); i++ {
		for _, sym := range first.Alphabet() {
			assert.Equal(t, first.Next(i, sym), second.Next(i, sym))
		}
	}
}

func TestDeterminizeFinalStateCorrectness(t *testing.T) {
	n := mustNFA(t, scenarioB())
	d, err := Determinize(n)
	assert.Nil(t, err)

	for _, state := range d.States() {
		want := false
		for _, label := range state.Composition {
			if n.IsFinal(label) {
				want = true
			}
		}
		assert.Equal(t, want, state.Final, "state %s", state.Name)
	}
}

func TestDeterminizeStartWithNoTransitions(t *testing.T) {
	n := mustNFA(t, Definition{
		States:   []string{"q0"},
		Alphabet: []Symbol{"a", "b"},
		Start:    "q0",
		Final:    []string{"q0"},
	})

	d, err := Determinize(n)
	assert.Nil(t, err)

	assert.Equal(t, 1, d.NumStates())
	assert.True(t, d.StartState().Final)
	assert.Equal(t, Trap, d.Next(0, "a"))
	assert.Equal(t, Trap, d.Next(0, "b"))
}

func TestDeterminizeNoFinalStates(t *testing.T) {
	n := mustNFA(t, Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []Symbol{"a"},
		Start:    "q0",
		Transitions: []Edge{
			{From: "q0", Input: "a", To: []string{"q1"}},
		},
	})

	d, err := Determinize(n)
	assert.Nil(t, err)
	for _, state := range d.States() {
		assert.False(t, state.Final)
	}
}

func TestDeterminizeUnreachableStates(t *testing.T) {
	n := mustNFA(t, Definition{
		States:   []string{"q0", "q1", "orphan"},
		Alphabet: []Symbol{"a"},
		Start:    "q0",
		Final:    []string{"q1"},
		Transitions: []Edge{
			{From: "q0", Input: "a", To: []string{"q1"}},
			{From: "orphan", Input: "a", To: []string{"q1"}},
		},
	})

	d, err := Determinize(n)
	assert.Nil(t, err)
	assert.Equal(t, []string{"orphan"}, d.UnreachableNFAStates())
}

func TestDeterminizeWorkLimit(t *testing.T) {
	n := mustNFA(t, scenarioB())

	_, err := Determinize(n, WithWorkLimit(1))
	assert.ErrorIs(t, err, ErrTooComplex)

	_, err = Determinize(n, WithWorkLimit(0))
	assert.Nil(t, err)
}

func TestDeterminizeDoesNotMutateInput(t *testing.T) {
	n := mustNFA(t, scenarioB())
	before := NFATableLaTeX(n, "snapshot")

	_, err := Determinize(n, WithTotalTable())
	assert.Nil(t, err)

	assert.Equal(t, before, NFATableLaTeX(n, "snapshot"))
}

func TestDeterminizeUnknownSymbolLookup(t *testing.T) {
	d, err := Determinize(mustNFA(t, scenarioA()))
	assert.Nil(t, err)
	assert.Equal(t, Trap, d.Next(0, "z"))
}
