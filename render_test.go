package automaton

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNFADOT(t *testing.T) {
	n := mustNFA(t, scenarioB())

	var buf bytes.Buffer
	err := RenderNFADOT(n, &buf)
	assert.Nil(t, err)

	got := buf.String()
	assert.Contains(t, got, "digraph")
	assert.Contains(t, got, "rankdir")
	assert.Contains(t, got, `"q0"`)
	assert.Contains(t, got, "doublecircle") // q2 is final
	assert.Contains(t, got, Epsilon)        // the epsilon edge label
}

func TestRenderDFADOT(t *testing.T) {
	n := mustNFA(t, scenarioB())

	t.Run("sentinelEntriesGetNoEdge", func(t *testing.T) {
		d, err := Determinize(n)
		assert.Nil(t, err)

		var buf bytes.Buffer
		assert.Nil(t, RenderDFADOT(d, &buf))

		got := buf.String()
		assert.Contains(t, got, `"{q0,q1}"`)
		assert.Contains(t, got, `"{q2}"`)
		assert.Contains(t, got, "doublecircle")
		assert.NotContains(t, got, TrapName)
	})

	t.Run("materializedTrapIsDrawn", func(t *testing.T) {
		d, err := Determinize(n, WithTotalTable())
		assert.Nil(t, err)

		var buf bytes.Buffer
		assert.Nil(t, RenderDFADOT(d, &buf))
		assert.Contains(t, buf.String(), TrapName)
	})
}

func TestRenderMergesParallelEdgeLabels(t *testing.T) {
	// Two symbols on the same q0 -> q1 pair fold into one labeled edge.
	n := mustNFA(t, Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []Symbol{"a", "b"},
		Start:    "q0",
		Transitions: []Edge{
			{From: "q0", Input: "a", To: []string{"q1"}},
			{From: "q0", Input: "b", To: []string{"q1"}},
		},
	})

	var buf bytes.Buffer
	assert.Nil(t, RenderNFADOT(n, &buf))
	assert.Contains(t, buf.String(), "a,b")
	assert.Equal(t, 1, strings.Count(buf.String(), `-> "q1"`))
}
