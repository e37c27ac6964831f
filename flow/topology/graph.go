package topology

import (
	"errors"
	"slices"
	"sort"

	"github.com/sarchlab/flowsim/flow"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrCyclic is returned when components cannot be ordered because items can
// flow in a circle.
var ErrCyclic = errors.New("network has cycles")

// Graph is the component-level view of a network. There is an edge from A to
// B when an output port of A is connected to an input port of B.
type Graph struct {
	g         *simple.DirectedGraph
	nodeOf    map[string]graph.Node
	compOf    map[int64]flow.Component
	selfLoops []flow.Component
}

// NewGraph builds the graph of the given components. Connections to
// components outside of the list are ignored.
func NewGraph(components []flow.Component) *Graph {
	g := &Graph{
		g:      simple.NewDirectedGraph(),
		nodeOf: make(map[string]graph.Node),
		compOf: make(map[int64]flow.Component),
	}

	for i, c := range components {
		n := simple.Node(i)
		g.g.AddNode(n)
		g.nodeOf[c.ID()] = n
		g.compOf[n.ID()] = c
	}

	for _, c := range components {
		g.addEdgesFrom(c)
	}

	return g
}

func (g *Graph) addEdgesFrom(c flow.Component) {
	from := g.nodeOf[c.ID()]

	for _, p := range c.Ports() {
		if p.Direction() != flow.Output || !p.IsConnected() {
			continue
		}

		to, found := g.nodeOf[p.Peer().Owner().ID()]
		if !found {
			continue
		}

		if to.ID() == from.ID() {
			if !slices.Contains(g.selfLoops, c) {
				g.selfLoops = append(g.selfLoops, c)
			}

			continue
		}

		g.g.SetEdge(g.g.NewEdge(from, to))
	}
}

// Cycles returns the groups of components that items can circle through.
// Names in a group are sorted, and groups are sorted by their first name.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string

	for _, scc := range topo.TarjanSCC(g.g) {
		if len(scc) < 2 {
			continue
		}

		cycles = append(cycles, g.names(scc))
	}

	for _, c := range g.selfLoops {
		cycles = append(cycles, []string{c.Name()})
	}

	for _, cycle := range cycles {
		sort.Strings(cycle)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})

	return cycles
}

// Order returns the component names so that every component comes after all
// components that feed it. Ties keep the order in which the components were
// given.
func (g *Graph) Order() ([]string, error) {
	if len(g.selfLoops) > 0 {
		return nil, ErrCyclic
	}

	nodes, err := topo.SortStabilized(g.g, byID)
	if err != nil {
		return nil, ErrCyclic
	}

	return g.names(nodes), nil
}

// Route returns the names of the components along a shortest path from one
// component to another, both included. It returns nil if there is no path.
func (g *Graph) Route(from, to flow.Component) []string {
	src, found := g.nodeOf[from.ID()]
	if !found {
		return nil
	}

	dst, found := g.nodeOf[to.ID()]
	if !found {
		return nil
	}

	shortest := path.DijkstraFrom(src, g.g)

	nodes, _ := shortest.To(dst.ID())
	if len(nodes) == 0 {
		return nil
	}

	return g.names(nodes)
}

func (g *Graph) names(nodes []graph.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = g.compOf[n.ID()].Name()
	}

	return names
}

func byID(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID() < nodes[j].ID()
	})
}
