package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID    string            `json:"id"`
	Kind  string            `json:"kind,omitempty"`
	Label string            `json:"label,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

type jsonEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// WriteJSON encodes g as indented node-link JSON. The output can be read
// back with [ReadJSON].
func WriteJSON(g *Graph, w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, 0, g.NodeCount()),
		Edges: make([]jsonEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		nd := jsonNode{ID: n.ID, Kind: n.Kind, Label: n.Label}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge(e))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a node-link graph. Errors name the node or edge that
// could not be added.
func ReadJSON(r io.Reader) (*Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	for _, n := range data.Nodes {
		if err := g.AddNode(Node{ID: n.ID, Kind: n.Kind, Label: n.Label, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(Edge(e)); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}
