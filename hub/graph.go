package hub

import (
	"fmt"
	"sort"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// String formats the coordinate as "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Node is an author placed at a coordinate.
type Node struct {
	Author   string     `json:"author" yaml:"author"`
	Position Coordinate `json:"position" yaml:"position"`
}

// Edge connects two distinct authors that share at least one affiliation.
// Source sorts before Target.
type Edge struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Shared []string `json:"shared" yaml:"shared"`
}

// Graph is the co-affiliation network.
type Graph struct {
	// Nodes holds authors with at least one resolved coordinate.
	Nodes []Node `json:"nodes" yaml:"nodes"`

	// Edges holds one edge per unordered author pair with intersecting
	// affiliation sets. Endpoints may be missing from Nodes.
	Edges []Edge `json:"edges" yaml:"edges"`

	// Unplaced lists authors for which no coordinate resolved.
	Unplaced []string `json:"unplaced" yaml:"unplaced"`

	nodeIdx map[string]int
	edgeIdx map[[2]string]struct{}
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:    make([]Node, 0),
		Edges:    make([]Edge, 0),
		Unplaced: make([]string, 0),
		nodeIdx:  make(map[string]int),
		edgeIdx:  make(map[[2]string]struct{}),
	}
}

func (g *Graph) index() {
	if g.nodeIdx != nil && len(g.nodeIdx) == len(g.Nodes) && len(g.edgeIdx) == len(g.Edges) {
		return
	}
	g.nodeIdx = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.nodeIdx[n.Author] = i
	}
	g.edgeIdx = make(map[[2]string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		g.edgeIdx[[2]string{e.Source, e.Target}] = struct{}{}
	}
}

// AddNode places an author, replacing any earlier position.
func (g *Graph) AddNode(author string, pos Coordinate) {
	g.index()
	if i, ok := g.nodeIdx[author]; ok {
		g.Nodes[i].Position = pos
		return
	}
	g.nodeIdx[author] = len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{Author: author, Position: pos})
}

// AddEdge connects two authors. Self-edges and duplicates are ignored and
// reported as false.
func (g *Graph) AddEdge(a, b string, shared []string) bool {
	if a == b {
		return false
	}
	if a > b {
		a, b = b, a
	}
	if g.HasEdge(a, b) {
		return false
	}
	g.edgeIdx[[2]string{a, b}] = struct{}{}
	g.Edges = append(g.Edges, Edge{Source: a, Target: b, Shared: shared})
	return true
}

// HasEdge reports whether an edge between a and b exists, in either order.
func (g *Graph) HasEdge(a, b string) bool {
	if a > b {
		a, b = b, a
	}
	g.index()
	_, ok := g.edgeIdx[[2]string{a, b}]
	return ok
}

// Node returns the node for an author.
func (g *Graph) Node(author string) (Node, bool) {
	g.index()
	i, ok := g.nodeIdx[author]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Sort orders nodes, edges and unplaced authors deterministically.
func (g *Graph) Sort() {
	sort.Slice(g.Nodes, func(i, j int) bool {
		return g.Nodes[i].Author < g.Nodes[j].Author
	})
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
	sort.Strings(g.Unplaced)
	g.nodeIdx = nil
	g.index()
}

// Result is what the pipeline hands to a presenter.
type Result struct {
	Affiliations *AffiliationMap
	Graph        *Graph
}
