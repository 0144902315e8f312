package automaton

import (
	"fmt"
	"io"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// startMarker is the invisible node the entry arrow hangs off.
const startMarker = "__start__"

// RenderNFADOT writes a Graphviz DOT diagram of n: one node per state
// (doublecircle for finals), one labeled edge per transition group, epsilon
// edges labeled ε.
func RenderNFADOT(n *NFA, w io.Writer) error {
	g := newDiagram()

	for _, state := range n.States() {
		if err := addStateNode(g, state, n.IsFinal(state)); err != nil {
			return err
		}
	}
	if err := g.AddEdge(startMarker, n.StartState()); err != nil {
		return fmt.Errorf("dot: entry edge: %w", err)
	}

	edges := newEdgeLabels()
	symbols := append(n.Alphabet(), Epsilon)
	for _, state := range n.States() {
		for _, sym := range symbols {
			for _, target := range n.TransitionsOf(state, sym) {
				edges.add(state, target, sym)
			}
		}
	}
	if err := edges.addTo(g); err != nil {
		return err
	}

	return draw.DOT(g, w, draw.GraphAttribute("rankdir", "LR"))
}

// RenderDFADOT writes a Graphviz DOT diagram of d. Trap sentinel entries are
// absent transitions and get no edge; a materialized trap state is drawn like
// any other state.
func RenderDFADOT(d *DFA, w io.Writer) error {
	g := newDiagram()

	for _, state := range d.States() {
		if err := addStateNode(g, state.Name, state.Final); err != nil {
			return err
		}
	}
	if err := g.AddEdge(startMarker, d.StartState().Name); err != nil {
		return fmt.Errorf("dot: entry edge: %w", err)
	}

	edges := newEdgeLabels()
	for i, state := range d.States() {
		for _, sym := range d.Alphabet() {
			target := d.Next(i, sym)
			if target == Trap {
				continue
			}
			edges.add(state.Name, d.State(target).Name, sym)
		}
	}
	if err := edges.addTo(g); err != nil {
		return err
	}

	return draw.DOT(g, w, draw.GraphAttribute("rankdir", "LR"))
}

func newDiagram() graph.Graph[string, string] {
	g := graph.New(graph.StringHash, graph.Directed())
	_ = g.AddVertex(startMarker,
		graph.VertexAttribute("shape", "none"),
		graph.VertexAttribute("label", ""))
	return g
}

func addStateNode(g graph.Graph[string, string], name string, final bool) error {
	shape := "circle"
	if final {
		shape = "doublecircle"
	}
	if err := g.AddVertex(name, graph.VertexAttribute("shape", shape)); err != nil {
		return fmt.Errorf("dot: node %s: %w", name, err)
	}
	return nil
}

// edgeLabels folds parallel transitions between the same pair of nodes into
// one edge with a comma-joined label, keeping first-seen order.
type edgeLabels struct {
	order [][2]string
	syms  map[[2]string][]Symbol
}

func newEdgeLabels() *edgeLabels {
	return &edgeLabels{syms: make(map[[2]string][]Symbol)}
}

func (e *edgeLabels) add(from, to string, sym Symbol) {
	key := [2]string{from, to}
	if _, ok := e.syms[key]; !ok {
		e.order = append(e.order, key)
	}
	e.syms[key] = append(e.syms[key], sym)
}

func (e *edgeLabels) addTo(g graph.Graph[string, string]) error {
	for _, key := range e.order {
		label := strings.Join(e.syms[key], ",")
		if err := g.AddEdge(key[0], key[1], graph.EdgeAttribute("label", label)); err != nil {
			return fmt.Errorf("dot: edge %s -> %s: %w", key[0], key[1], err)
		}
	}
	return nil
}
