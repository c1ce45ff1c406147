package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] for an empty ID.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when the ID is taken.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Node is one object.
type Node struct {
	ID    string            // kind:fileID
	Kind  string            // "entity", "dataset", ...
	Label string            // short description, may be empty
	Meta  map[string]string // extra attributes, never nil after AddNode
}

// Edge is a reference from one object to another.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is a directed graph that keeps nodes and edges in insertion order.
// The zero value is not usable; use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes    []*Node
	byID     map[string]*Node
	edges    []Edge
	seen     map[Edge]bool
	outgoing map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:     make(map[string]*Node),
		seen:     make(map[Edge]bool),
		outgoing: make(map[string][]string),
	}
}

// AddNode adds a node. Meta is initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.byID[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = map[string]string{}
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.byID[n.ID] = node
	return nil
}

// AddEdge adds an edge between two existing nodes. Adding the same edge
// twice is a no-op.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.byID[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.byID[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if g.seen[e] {
		return nil
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = *n
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Children returns the targets of the edges leaving id.
func (g *Graph) Children(id string) []string { return slices.Clone(g.outgoing[id]) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Kinds returns the number of nodes of each kind.
func (g *Graph) Kinds() map[string]int {
	out := make(map[string]int)
	for _, n := range g.nodes {
		out[n.Kind]++
	}
	return out
}

// SortedKinds returns the node kinds in alphabetical order.
func (g *Graph) SortedKinds() []string {
	return slices.Sorted(maps.Keys(g.Kinds()))
}

// Reachable returns the IDs reachable from id, including id itself, in
// breadth-first order.
func (g *Graph) Reachable(id string) []string {
	if _, ok := g.byID[id]; !ok {
		return nil
	}
	seen := map[string]bool{id: true}
	queue := []string{id}
	for i := 0; i < len(queue); i++ {
		for _, c := range g.outgoing[queue[i]] {
			if !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
	return queue
}

// Subgraph returns the part of g reachable from root.
func (g *Graph) Subgraph(root string) *Graph {
	keep := make(map[string]bool)
	for _, id := range g.Reachable(root) {
		keep[id] = true
	}
	sub := New()
	for _, n := range g.nodes {
		if keep[n.ID] {
			_ = sub.AddNode(*n)
		}
	}
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			_ = sub.AddEdge(e)
		}
	}
	return sub
}
